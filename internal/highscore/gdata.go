package highscore

import (
	"fmt"
	"strconv"

	"github.com/quasilyte/gdata/v2"
)

// Storage keys inside the gdata application directory.
const (
	gdataObject   = "scores"
	gdataProperty = "high"
)

// GdataStore keeps the score in the per-user data directory managed by gdata.
type GdataStore struct {
	m *gdata.Manager
}

// OpenGdata opens the gdata storage for the given application name.
func OpenGdata(appName string) (*GdataStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("highscore: cannot open gdata storage %q: %w", appName, err)
	}
	return &GdataStore{m: m}, nil
}

// Load returns the stored score, or 0 if nothing was saved yet.
func (s *GdataStore) Load() (int, error) {
	if !s.m.ObjectPropExists(gdataObject, gdataProperty) {
		return 0, nil
	}
	data, err := s.m.LoadObjectProp(gdataObject, gdataProperty)
	if err != nil {
		return 0, fmt.Errorf("highscore: cannot load score: %w", err)
	}
	return parse(data)
}

// Save replaces the stored score.
func (s *GdataStore) Save(score int) error {
	if score < 0 {
		return fmt.Errorf("highscore: negative score %d", score)
	}
	if err := s.m.SaveObjectProp(gdataObject, gdataProperty, []byte(strconv.Itoa(score))); err != nil {
		return fmt.Errorf("highscore: cannot save score: %w", err)
	}
	return nil
}

// Close is a no-op.
func (s *GdataStore) Close() error { return nil }
