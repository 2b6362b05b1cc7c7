// Package assets loads the images and sound references the game draws and plays.
//
// Assets are addressed by key. A Library is either loaded from a directory
// (every configured file must exist and decode) or generated in memory.
package assets

import (
	"errors"
	"fmt"
	"image"
	_ "image/png" // PNG decoder for image.Decode
	"os"
	"path/filepath"
	"sort"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/sprite"
)

// Image keys.
const (
	ImageBackground   = "background"
	ImagePipeEnd      = "pipe-end"
	ImagePipeBody     = "pipe-body"
	ImageBirdWingUp   = "bird-wing-up"
	ImageBirdWingDown = "bird-wing-down"
)

// Sound keys.
const (
	SoundJump  = "jump"
	SoundIntro = "intro"
	SoundPoint = "point"
	SoundDie   = "die"
	SoundHit   = "hit"
)

// ImageKeys lists every image the game needs.
var ImageKeys = []string{ImageBackground, ImagePipeEnd, ImagePipeBody, ImageBirdWingUp, ImageBirdWingDown}

// SoundKeys lists every sound the game needs.
var SoundKeys = []string{SoundJump, SoundIntro, SoundPoint, SoundDie, SoundHit}

// ErrMissingAsset is wrapped by load errors for absent keys or files.
var ErrMissingAsset = errors.New("assets: missing asset")

// Library holds decoded images, their collision masks and sound file paths.
// It is read-only after construction.
type Library struct {
	images map[string]image.Image
	masks  map[string]*sprite.Mask
	sounds map[string]string // Empty path means the sound is synthesized
}

// New builds a library from decoded images and sound paths.
// Every key in ImageKeys must be present.
func New(images map[string]image.Image, sounds map[string]string) (*Library, error) {
	lib := &Library{
		images: make(map[string]image.Image, len(images)),
		masks:  make(map[string]*sprite.Mask, len(images)),
		sounds: make(map[string]string, len(sounds)),
	}
	for _, key := range ImageKeys {
		img, ok := images[key]
		if !ok || img == nil {
			return nil, fmt.Errorf("%w: image %q", ErrMissingAsset, key)
		}
		lib.images[key] = img
		lib.masks[key] = sprite.FromImage(img)
	}
	for key, path := range sounds {
		lib.sounds[key] = path
	}
	return lib, nil
}

// Image returns the image for key, or nil if unknown.
func (l *Library) Image(key string) image.Image {
	return l.images[key]
}

// Mask returns the collision mask of the image for key, or nil if unknown.
func (l *Library) Mask(key string) *sprite.Mask {
	return l.masks[key]
}

// SoundPath returns the file for a sound key; "" means the sound is generated.
func (l *Library) SoundPath(key string) string {
	return l.sounds[key]
}

// Sounds returns the known sound keys in sorted order.
func (l *Library) Sounds() []string {
	keys := make([]string, 0, len(l.sounds))
	for k := range l.sounds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Load builds the library described by cfg. With an empty asset directory the
// generated set is returned; otherwise every configured file must exist.
func Load(cfg *config.Config) (*Library, error) {
	if cfg.Assets.Dir == "" {
		return Builtin(cfg)
	}

	root, err := config.ExpandHome(cfg.Assets.Dir)
	if err != nil {
		return nil, err
	}

	images := make(map[string]image.Image, len(ImageKeys))
	for _, key := range ImageKeys {
		name, ok := cfg.Assets.Images[key]
		if !ok {
			return nil, fmt.Errorf("%w: no file configured for image %q", ErrMissingAsset, key)
		}
		img, err := decodeImage(filepath.Join(root, cfg.Assets.ImagesDir, name))
		if err != nil {
			return nil, err
		}
		images[key] = img
	}

	sounds := make(map[string]string, len(SoundKeys))
	for _, key := range SoundKeys {
		name, ok := cfg.Assets.Sounds[key]
		if !ok {
			return nil, fmt.Errorf("%w: no file configured for sound %q", ErrMissingAsset, key)
		}
		path := filepath.Join(root, cfg.Assets.SoundsDir, name)
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%w: sound %q: %w", ErrMissingAsset, key, err)
		}
		sounds[key] = path
	}

	return New(images, sounds)
}

// decodeImage reads and decodes one image file.
func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingAsset, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("assets: cannot decode %s: %w", path, err)
	}
	return img, nil
}
