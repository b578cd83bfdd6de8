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

package log

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_transition",
			op: func(t *testing.T, logger *Logger) {
				logger.LogTransition(context.Background(), Transition{
					Scope:  "0123456789abcdef",
					Status: "loaded",
					Items:  6,
				})
			},
			wantLogs: []string{
				"✓ 01234567   loaded     6 products",
			},
		},
		{
			name: "log_report",
			op: func(t *testing.T, logger *Logger) {
				logger.Report(context.Background(), errors.New("dial tcp 10.0.0.1:443: i/o timeout"))
			},
			wantLogs: []string{
				"❌ catalog source failed, see logs for details",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Warningf("warning %s", "test")
				logger.Errorf("error %s", "test")
				logger.Successf("success %s", "test")
			},
			wantLogs: []string{
				"ℹ️  info test",
				"⚠️  warning test",
				"❌ error test",
				"✅ success test",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("loading catalog")
			},
			wantLogs: []string{
				"catalogrc • loading catalog",
			},
		},
		{
			name: "log_newline",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("first")
				logger.LogNewline()
				logger.Info("second")
			},
			wantLogs: []string{
				"ℹ️  first",
				"",
				"ℹ️  second",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create buffer for console output
			buf := &bytes.Buffer{}
			logger := NewWithLogger(buf, zerolog.New(io.Discard))

			// Perform operation
			tt.op(t, logger)

			// Check output
			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerContext(t *testing.T) {
	// Create logger
	logger := New(io.Discard, zerolog.InfoLevel)

	// Add to context
	ctx := context.Background()
	ctx = NewContext(ctx, logger)

	// Get from context
	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	// Check panic on missing logger
	assert.Panics(t, func() {
		FromContext(context.Background())
	}, "FromContext should panic when logger is missing")
}

func TestTransitionFormatting(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name string
		tr   Transition
		want string
	}{
		{
			name: "loading",
			tr:   Transition{Scope: "abc", Status: "loading"},
			want: "    ⟳ abc        loading    waiting for catalog",
		},
		{
			name: "loaded_empty",
			tr:   Transition{Scope: "abcdefghij", Status: "loaded"},
			want: "    ✓ abcdefgh   loaded     0 products",
		},
		{
			name: "errored",
			tr:   Transition{Scope: "abcdefghij", Status: "errored", Message: "Failed to load products. Please try again later."},
			want: "    ✗ abcdefgh   errored    Failed to load products. Please try again later.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewWithLogger(buf, zerolog.New(io.Discard))

			logger.LogTransition(context.Background(), tt.tr)

			assert.Equal(t, tt.want, strings.TrimRight(buf.String(), "\n"), "formatted output should match")
		})
	}
}

func TestReportKeepsDetailInStructuredLog(t *testing.T) {
	console := &bytes.Buffer{}
	structured := &bytes.Buffer{}
	logger := NewWithLogger(console, zerolog.New(structured))

	logger.Report(context.Background(), errors.New("dial tcp: i/o timeout"))

	assert.NotContains(t, console.String(), "i/o timeout", "console should not show raw error")
	assert.Contains(t, structured.String(), "i/o timeout", "structured log should keep raw error")
}

func TestTransitionsHistory(t *testing.T) {
	logger := NewWithLogger(io.Discard, zerolog.New(io.Discard))

	logger.LogTransition(context.Background(), Transition{Scope: "a", Status: "loading"})
	logger.LogTransition(context.Background(), Transition{Scope: "a", Status: "loaded", Items: 2, Elapsed: 1500 * time.Millisecond})

	got := logger.Transitions()
	require.Len(t, got, 2, "both transitions should be recorded")
	assert.Equal(t, "loading", got[0].Status)
	assert.Equal(t, "loaded", got[1].Status)

	got[0].Status = "mutated"
	assert.Equal(t, "loading", logger.Transitions()[0].Status, "history should be copied")
}

func TestNewPrintsTransitionOnce(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name      string
		level     zerolog.Level
		wantLines int
	}{
		{name: "info", level: zerolog.InfoLevel, wantLines: 1},
		{name: "debug", level: zerolog.DebugLevel, wantLines: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, tt.level)

			logger.LogTransition(context.Background(), Transition{Scope: "abcdefghij", Status: "loaded", Items: 3})

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			require.Len(t, lines, tt.wantLines, "unexpected output: %q", buf.String())
			assert.Contains(t, lines[0], "3 products")
			if tt.wantLines > 1 {
				assert.Contains(t, lines[1], "catalog transition", "debug should add the structured line")
			}
		})
	}
}

func TestNewMessagesPrintOnceAtInfo(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	buf := &bytes.Buffer{}
	logger := New(buf, zerolog.InfoLevel)

	logger.Success("done")
	logger.Warning("careful")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{"✅ done", "⚠️  careful"}, lines)
}
