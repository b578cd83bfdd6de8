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
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/catalogrc/pkg/state"
)

// 🎨 Display configuration
const (
	indent      = 4  // spaces to indent transition entries
	scopeWidth  = 10 // width for the shortened scope id
	statusWidth = 10 // width for status text
)

// 🎯 Transition is a catalog state change shown to the user
type Transition struct {
	Scope   string        // mount id
	Status  string        // loading, loaded or errored
	Items   int           // number of products, loaded only
	Message string        // user-facing message, errored only
	Elapsed time.Duration // time since mount
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog        zerolog.Logger
	console     io.Writer
	mu          sync.Mutex
	transitions []Transition
}

// 🏭 New creates a logger whose structured logs share the console writer.
// Transitions are structured at debug level, so at info they print once.
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = console
		w.NoColor = color.NoColor
	})).With().Timestamp().Logger().Level(level)
	return NewWithLogger(console, zlog)
}

// 🏭 NewWithLogger creates a new logger around an existing zerolog logger
func NewWithLogger(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

var _ state.DiagnosticSink = (*Logger)(nil)

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// Zerolog returns the structured logger
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.zlog
}

func shortScope(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// 📝 formatTransition formats a transition for display
func (l *Logger) formatTransition(tr Transition) string {
	var symbol rune
	var symbolColor color.Attribute
	var detail string
	switch tr.Status {
	case "loaded":
		symbol = '✓'
		symbolColor = color.FgGreen
		detail = fmt.Sprintf("%d products", tr.Items)
	case "errored":
		symbol = '✗'
		symbolColor = color.FgRed
		detail = tr.Message
	case "loading":
		symbol = '⟳'
		symbolColor = color.FgBlue
		detail = "waiting for catalog"
	default:
		symbol = '-'
		symbolColor = color.FgYellow
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", indent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		color.New(color.Faint).Sprint(fmt.Sprintf("%-*s", scopeWidth, shortScope(tr.Scope))),
		fmt.Sprintf("%-*s", statusWidth, tr.Status),
		detail)
}

// 📝 LogTransition logs a catalog state change
func (l *Logger) LogTransition(ctx context.Context, tr Transition) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.transitions = append(l.transitions, tr)

	fmt.Fprintln(l.console, l.formatTransition(tr))

	l.zlog.Debug().
		Str("scope", tr.Scope).
		Str("status", tr.Status).
		Int("items", tr.Items).
		Str("message", tr.Message).
		Dur("elapsed", tr.Elapsed).
		Msg("catalog transition")
}

// Transitions returns every transition logged so far
func (l *Logger) Transitions() []Transition {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Transition, len(l.transitions))
	copy(out, l.transitions)
	return out
}

// 🕳️ Report records a raw catalog source failure. The console only gets a generic
// line; the error itself goes to the structured log.
func (l *Logger) Report(ctx context.Context, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint("catalog source failed, see logs for details"))
	l.zlog.Error().Err(err).Msg("catalog source failed")
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("catalogrc")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Debug().Str("kind", "header").Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Debug().Str("kind", "success").Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Debug().Str("kind", "warning").Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Debug().Str("kind", "error").Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Debug().Str("kind", "info").Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
