// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/catalogrc/pkg/registry"
	"gitlab.com/tozd/go/errors"
)

const (
	// DefaultDelay is the simulated latency used when none is configured
	DefaultDelay = "1500ms"
	// DefaultLogLevel is the zerolog level used when none is configured
	DefaultLogLevel = "info"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

// 🗺️ parsers holds the available parsers, first match wins
var parsers registry.Registry[Parser]

// 📝 Register registers a parser
func Register(p Parser) {
	parsers.Register(p)
}

// 🎯 GetParser returns a parser that can handle the given file, or nil
func GetParser(filename string) Parser {
	p, _ := parsers.Lookup(filename)
	return p
}

// 📦 SourceArgs selects where the catalog comes from. Leaving both Path and Dir
// empty selects the built-in products.
type SourceArgs struct {
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`       // single catalog file
	Dir     string `json:"dir,omitempty" yaml:"dir,omitempty"`         // directory of catalog files
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty"` // doublestar pattern inside Dir
}

// 📝 LogArgs configures logging
type LogArgs struct {
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Delay  string     `json:"delay,omitempty" yaml:"delay,omitempty"`
	Source SourceArgs `json:"source,omitempty" yaml:"source,omitempty"`
	Log    LogArgs    `json:"log,omitempty" yaml:"log,omitempty"`

	delay time.Duration
	level zerolog.Level
}

// 🏠 Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{}
	if err := cfg.Validate(); err != nil {
		panic(errors.Errorf("validating default config: %w", err))
	}
	return cfg
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	// Source paths are relative to the config file
	cfg.resolvePaths(filepath.Dir(path))

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🎯 LoadOptional is Load, except that a missing file yields Default
func LoadOptional(ctx context.Context, path string) (*Config, error) {
	cfg, err := Load(ctx, path)
	if errors.Is(err, fs.ErrNotExist) {
		zerolog.Ctx(ctx).Debug().Str("path", path).Msg("config file not found, using defaults")
		return Default(), nil
	}
	return cfg, err
}

func (cfg *Config) resolvePaths(base string) {
	if cfg.Source.Path != "" && !filepath.IsAbs(cfg.Source.Path) {
		cfg.Source.Path = filepath.Join(base, cfg.Source.Path)
	}
	if cfg.Source.Dir != "" && !filepath.IsAbs(cfg.Source.Dir) {
		cfg.Source.Dir = filepath.Join(base, cfg.Source.Dir)
	}
}

// 🔍 Validate checks if the configuration is valid and applies defaults
func (cfg *Config) Validate() error {
	// Set defaults
	if cfg.Delay == "" {
		cfg.Delay = DefaultDelay
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}

	delay, err := time.ParseDuration(cfg.Delay)
	if err != nil {
		return errors.Errorf("delay: %w", err)
	}
	if delay < 0 {
		return errors.Errorf("delay must not be negative, got %s", cfg.Delay)
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return errors.Errorf("log.level: %w", err)
	}

	// Check source selection
	if cfg.Source.Path != "" && cfg.Source.Dir != "" {
		return errors.Errorf("source.path and source.dir are mutually exclusive")
	}
	if cfg.Source.Pattern != "" && cfg.Source.Dir == "" {
		return errors.Errorf("source.pattern requires source.dir")
	}

	// Clean up paths
	if cfg.Source.Path != "" {
		cfg.Source.Path = filepath.Clean(cfg.Source.Path)
	}
	if cfg.Source.Dir != "" {
		cfg.Source.Dir = filepath.Clean(cfg.Source.Dir)
	}

	cfg.delay = delay
	cfg.level = level
	return nil
}

// DelayDuration returns the validated simulated latency
func (cfg *Config) DelayDuration() time.Duration {
	return cfg.delay
}

// SetDelay overrides the simulated latency
func (cfg *Config) SetDelay(d time.Duration) error {
	if d < 0 {
		return errors.Errorf("delay must not be negative, got %s", d)
	}
	cfg.Delay = d.String()
	cfg.delay = d
	return nil
}

// LogLevel returns the validated zerolog level
func (cfg *Config) LogLevel() zerolog.Level {
	return cfg.level
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	source := "builtin"
	switch {
	case cfg.Source.Path != "":
		source = "file:" + cfg.Source.Path
	case cfg.Source.Dir != "":
		source = "dir:" + cfg.Source.Dir
		if cfg.Source.Pattern != "" {
			source += "/" + cfg.Source.Pattern
		}
	}
	return fmt.Sprintf("delay=%s source=%s", cfg.Delay, source)
}
