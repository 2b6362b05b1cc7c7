package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
// It mirrors defaults/flappy.yaml and is used if the embedded YAML cannot be parsed.
func DefaultConfig() Config {
	return Config{
		Window: Window{
			Title:  "Flappy Bird",
			Width:  480,
			Height: 512,
		},
		TickRate: 60,
		Seed:     0,
		Player: Player{
			Gravity:     0.5,
			JumpImpulse: 8,
			Width:       32,
			Height:      32,
		},
		Pipes: Pipes{
			SpawnIntervalMS: 5000,
			SegmentWidth:    80,
			SegmentHeight:   32,
			Margin:          40,
			Speed:           60,
			ScoreIncrement:  5,
		},
		Colors: Palette{
			Text:       "#ffffff",
			Background: "#156262",
		},
		Assets: Assets{
			Dir:       "",
			ImagesDir: "images",
			SoundsDir: "sounds",
			Images: map[string]string{
				"background":     "background.png",
				"pipe-end":       "pipe_end.png",
				"pipe-body":      "pipe_body.png",
				"bird-wing-up":   "bird_wing_up.png",
				"bird-wing-down": "bird_wing_down.png",
			},
			Sounds: map[string]string{
				"jump":  "wing.mp3",
				"intro": "intro.ogg",
				"point": "point.mp3",
				"die":   "die.mp3",
				"hit":   "hit.mp3",
			},
		},
		Audio: Audio{
			Enabled:    true,
			SampleRate: 44100,
			FadeOutMS:  500,
		},
		HighScore: HighScore{
			Backend: "file",
			Path:    "~/.flappy/highscore.txt",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
