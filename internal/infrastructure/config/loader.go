package config

import (
	"fmt"
	"io/fs"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

// Loader loads game configuration and levels from YAML files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// BasePath returns the path the loader was created with
func (l *Loader) BasePath() string {
	return l.basePath
}

func (l *Loader) readYAML(name string, out any) error {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// LoadGame loads game.yaml
func (l *Loader) LoadGame() (*GameConfig, error) {
	var cfg GameConfig
	if err := l.readYAML("game.yaml", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadLevelIndex loads levels/index.yaml
func (l *Loader) LoadLevelIndex() ([]LevelDescriptor, error) {
	var idx LevelIndex
	if err := l.readYAML("levels/index.yaml", &idx); err != nil {
		return nil, err
	}
	return idx.Levels, nil
}

// LoadLevel loads and validates levels/<filename>
func (l *Loader) LoadLevel(filename string) (*LevelConfig, error) {
	var cfg LevelConfig
	if err := l.readYAML(path.Join("levels", filename), &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid level %s: %w", filename, err)
	}
	return &cfg, nil
}
