package storage

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
)

// progressObject groups every key this game saves
const progressObject = "progress"

// GdataStore saves values in the per-user application data directory
type GdataStore struct {
	m *gdata.Manager
}

// OpenGdata opens (creating if needed) the data directory for appName
func OpenGdata(appName string) (*GdataStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open app data %s: %w", appName, err)
	}
	return &GdataStore{m: m}, nil
}

// GetString returns the value for key or ErrNotFound
func (s *GdataStore) GetString(key string) (string, error) {
	if !s.m.ObjectPropExists(progressObject, key) {
		return "", ErrNotFound
	}
	data, err := s.m.LoadObjectProp(progressObject, key)
	if err != nil {
		return "", fmt.Errorf("storage: cannot load %s: %w", key, err)
	}
	return string(data), nil
}

// SetString stores value under key
func (s *GdataStore) SetString(key, value string) error {
	if err := s.m.SaveObjectProp(progressObject, key, []byte(value)); err != nil {
		return fmt.Errorf("storage: cannot save %s: %w", key, err)
	}
	return nil
}

// Close is a no-op; every save is flushed immediately
func (s *GdataStore) Close() error {
	return nil
}
