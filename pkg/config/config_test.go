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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, dir string, cfg *Config)
	}{
		{
			name:     "valid_config",
			filename: ".catalogrc.yaml",
			config: `
delay: 300ms
source:
  path: data/products.yaml
log:
  level: debug
`,
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, 300*time.Millisecond, cfg.DelayDuration(), "delay should match")
				assert.Equal(t, filepath.Join(dir, "data", "products.yaml"), cfg.Source.Path, "path should be relative to the config file")
				assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel(), "level should match")
			},
		},
		{
			name:     "minimal_config",
			filename: ".catalogrc.yml",
			config:   "",
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, 1500*time.Millisecond, cfg.DelayDuration(), "delay should have default value")
				assert.Equal(t, "1500ms", cfg.Delay, "delay string should have default value")
				assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel(), "level should have default value")
				assert.Equal(t, SourceArgs{}, cfg.Source, "source should select builtin products")
			},
		},
		{
			name:     "zero_delay",
			filename: ".catalogrc.yaml",
			config:   "delay: 0s\n",
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, time.Duration(0), cfg.DelayDuration(), "zero delay should be allowed")
			},
		},
		{
			name:     "upper_case_extension",
			filename: ".catalogrc.YAML",
			config:   "delay: 2s\n",
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, 2*time.Second, cfg.DelayDuration(), "extension match should ignore case")
			},
		},
		{
			name:     "absolute_dir",
			filename: ".catalogrc.json",
			config:   `{"source":{"dir":"/srv/catalog/","pattern":"**/*.yaml"}}`,
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, "/srv/catalog", cfg.Source.Dir, "absolute dir should be cleaned")
				assert.Equal(t, "**/*.yaml", cfg.Source.Pattern, "pattern should match")
			},
		},
		{
			name:     "hcl_config",
			filename: ".catalogrc.hcl",
			config:   "delay = \"1s\"\nsource {\n  path = \"catalog.hcl\"\n}\n",
			check: func(t *testing.T, dir string, cfg *Config) {
				assert.Equal(t, time.Second, cfg.DelayDuration(), "delay should match")
				assert.Equal(t, filepath.Join(dir, "catalog.hcl"), cfg.Source.Path, "path should be resolved")
			},
		},
		{
			name:        "negative_delay",
			filename:    ".catalogrc.yaml",
			config:      "delay: -1s\n",
			wantErr:     true,
			errContains: "delay must not be negative",
		},
		{
			name:        "bad_delay",
			filename:    ".catalogrc.yaml",
			config:      "delay: soon\n",
			wantErr:     true,
			errContains: "delay:",
		},
		{
			name:        "bad_level",
			filename:    ".catalogrc.yaml",
			config:      "log:\n  level: loud\n",
			wantErr:     true,
			errContains: "log.level",
		},
		{
			name:        "path_and_dir",
			filename:    ".catalogrc.yaml",
			config:      "source:\n  path: a.yaml\n  dir: catalogs\n",
			wantErr:     true,
			errContains: "mutually exclusive",
		},
		{
			name:        "pattern_without_dir",
			filename:    ".catalogrc.yaml",
			config:      "source:\n  pattern: '*.yaml'\n",
			wantErr:     true,
			errContains: "source.pattern requires source.dir",
		},
		{
			name:        "unknown_field",
			filename:    ".catalogrc.yaml",
			config:      "retries: 3\n",
			wantErr:     true,
			errContains: "parsing YAML",
		},
		{
			name:        "unknown_extension",
			filename:    ".catalogrc.toml",
			config:      "delay = '1s'\n",
			wantErr:     true,
			errContains: "no parser found",
		},
	}

	ctx := zerolog.New(os.Stderr).WithContext(context.Background())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create temporary config file
			tmpDir := t.TempDir()
			configPath := filepath.Join(tmpDir, tt.filename)
			err := os.WriteFile(configPath, []byte(tt.config), 0644)
			require.NoError(t, err, "writing config file should succeed")

			// Load config
			cfg, err := Load(ctx, configPath)
			if tt.wantErr {
				require.Error(t, err, "Load should return error")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}

			require.NoError(t, err, "Load should succeed")
			if tt.check != nil {
				tt.check(t, tmpDir, cfg)
			}
		})
	}
}

func TestLoadOptional(t *testing.T) {
	ctx := zerolog.New(zerolog.TestWriter{T: t}).WithContext(context.Background())

	cfg, err := LoadOptional(ctx, filepath.Join(t.TempDir(), ".catalogrc.yaml"))
	require.NoError(t, err, "missing file should fall back to defaults")
	assert.Equal(t, Default(), cfg, "defaults should be returned")

	path := filepath.Join(t.TempDir(), ".catalogrc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("delay: soon\n"), 0644))
	_, err = LoadOptional(ctx, path)
	require.Error(t, err, "invalid file should still fail")
}

func TestSetDelay(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.SetDelay(250*time.Millisecond), "positive delay should be accepted")
	assert.Equal(t, 250*time.Millisecond, cfg.DelayDuration(), "delay should be overridden")
	require.NoError(t, cfg.Validate(), "overridden config should still validate")
	assert.Equal(t, 250*time.Millisecond, cfg.DelayDuration(), "delay should survive validation")

	require.Error(t, cfg.SetDelay(-time.Second), "negative delay should be rejected")
}

func TestConfigString(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
		want string
	}{
		{
			name: "builtin",
			cfg:  &Config{Delay: "1500ms"},
			want: "delay=1500ms source=builtin",
		},
		{
			name: "file",
			cfg:  &Config{Delay: "1s", Source: SourceArgs{Path: "/tmp/products.yaml"}},
			want: "delay=1s source=file:/tmp/products.yaml",
		},
		{
			name: "dir_with_pattern",
			cfg:  &Config{Delay: "1s", Source: SourceArgs{Dir: "/srv/catalog", Pattern: "*.hcl"}},
			want: "delay=1s source=dir:/srv/catalog/*.hcl",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cfg.String()
			assert.Equal(t, tt.want, got, "String() should match")
		})
	}
}
