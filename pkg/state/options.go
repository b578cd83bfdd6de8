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

package state

import (
	"time"

	"github.com/walteh/catalogrc/pkg/clock"
	"github.com/walteh/catalogrc/pkg/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// DefaultDelay is the simulated network latency before the source is queried
const DefaultDelay = 1500 * time.Millisecond

const tracerName = "github.com/walteh/catalogrc/pkg/state"

type options struct {
	delay          time.Duration
	clock          clock.Clock
	sink           DiagnosticSink
	recorder       metrics.Recorder
	tracerProvider trace.TracerProvider
}

func defaultOptions() options {
	return options{
		delay:          DefaultDelay,
		clock:          clock.System(),
		sink:           zerologSink{},
		recorder:       metrics.Noop{},
		tracerProvider: otel.GetTracerProvider(),
	}
}

// 🔧 Option configures a Provider
type Option func(*options)

// WithDelay sets the simulated latency. Negative values are treated as zero.
func WithDelay(d time.Duration) Option {
	return func(o *options) {
		if d < 0 {
			d = 0
		}
		o.delay = d
	}
}

// WithClock replaces the system clock
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithSink replaces the default zerolog diagnostic sink
func WithSink(s DiagnosticSink) Option {
	return func(o *options) {
		if s != nil {
			o.sink = s
		}
	}
}

// WithRecorder sets the metrics recorder
func WithRecorder(r metrics.Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.recorder = r
		}
	}
}

// WithTracerProvider sets the tracer provider used for population spans
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		if tp != nil {
			o.tracerProvider = tp
		}
	}
}
