// Package config loads the cargolens.toml manifest that tells the
// builder what to run. The manifest is found by walking up from the
// start directory, same as cargo resolves its own manifest.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file the walk-up search looks for.
const ManifestName = "cargolens.toml"

// Config mirrors cargolens.toml.
type Config struct {
	Build BuildConfig `toml:"build"`
}

// BuildConfig is the [build] table.
type BuildConfig struct {
	// Command is the build program plus arguments, whitespace-separated.
	Command string `toml:"command"`
	// SaveAnalysis requests analysis artifacts and their ingestion.
	SaveAnalysis bool `toml:"save_analysis"`
	// Jobs bounds artifact decode parallelism. Zero means sequential.
	Jobs int `toml:"jobs"`
	// Cache enables the decoded-artifact disk cache.
	Cache bool `toml:"cache"`
}

// Manifest couples a decoded Config with where it came from.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Find walks up from startDir to locate the manifest file.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadManifest finds and decodes the manifest nearest to startDir.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

// Load decodes and validates one manifest file.
func Load(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("build") {
		return Config{}, fmt.Errorf("%s: missing [build]", path)
	}
	if !meta.IsDefined("build", "command") || strings.TrimSpace(cfg.Build.Command) == "" {
		return Config{}, fmt.Errorf("%s: missing [build].command", path)
	}
	if cfg.Build.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [build].jobs must not be negative", path)
	}
	return cfg, nil
}
