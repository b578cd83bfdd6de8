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

// Package metrics records catalog provider lifecycle events.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gitlab.com/tozd/go/errors"
)

const namespace = "catalog"

// 📈 Recorder receives provider lifecycle events
type Recorder interface {
	// MountStarted is called once per mount, when the loading state is published
	MountStarted()
	// Resolved is called when a population task applies its terminal state
	Resolved(status string, elapsed time.Duration)
	// Suppressed is called when a resolution arrives after unmount and is dropped
	Suppressed()
}

// 🔇 Noop discards every event
type Noop struct{}

func (Noop) MountStarted() {}
func (Noop) Resolved(string, time.Duration) {}
func (Noop) Suppressed() {}

var _ Recorder = Noop{}

// 📊 Prometheus implements Recorder with Prometheus collectors
type Prometheus struct {
	mounts      prometheus.Counter
	resolutions *prometheus.CounterVec
	suppressed  prometheus.Counter
	duration    prometheus.Histogram
}

var _ Recorder = (*Prometheus)(nil)

// 🏭 NewPrometheus registers the collectors on reg. Registering twice on the same
// registry reuses the collectors that are already there.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	mounts, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mounts_total",
		Help:      "Number of catalog provider mounts.",
	}))
	if err != nil {
		return nil, err
	}

	resolutions, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resolutions_total",
		Help:      "Number of applied catalog resolutions by terminal status.",
	}, []string{"status"}))
	if err != nil {
		return nil, err
	}

	suppressed, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "suppressed_total",
		Help:      "Number of resolutions dropped because the provider was unmounted.",
	}))
	if err != nil {
		return nil, err
	}

	duration, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "resolution_seconds",
		Help:      "Time from mount to applied resolution.",
		Buckets:   []float64{0.1, 0.5, 1, 1.5, 2, 5, 10},
	}))
	if err != nil {
		return nil, err
	}

	return &Prometheus{
		mounts:      mounts,
		resolutions: resolutions,
		suppressed:  suppressed,
		duration:    duration,
	}, nil
}

func (p *Prometheus) MountStarted() {
	p.mounts.Inc()
}

func (p *Prometheus) Resolved(status string, elapsed time.Duration) {
	p.resolutions.WithLabelValues(status).Inc()
	p.duration.Observe(elapsed.Seconds())
}

func (p *Prometheus) Suppressed() {
	p.suppressed.Inc()
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		var zero C
		return zero, errors.Errorf("registering collector: %w", err)
	}
	return c, nil
}
