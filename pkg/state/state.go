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
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/walteh/catalogrc/pkg/clock"
	"gitlab.com/tozd/go/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// 🔌 Source is the collaborator that produces the catalog
type Source[T any] interface {
	ListCatalogItems(ctx context.Context) ([]T, error)
}

// SourceFunc adapts a function to Source
type SourceFunc[T any] func(ctx context.Context) ([]T, error)

func (f SourceFunc[T]) ListCatalogItems(ctx context.Context) ([]T, error) {
	return f(ctx)
}

// 👀 Reader is the handle consumers are given to read the catalog state
type Reader[T any] interface {
	Read() (Snapshot[T], error)
}

// Read reads from an injected handle. A missing handle is a misuse and returns
// ErrNoProvider.
func Read[T any](r Reader[T]) (Snapshot[T], error) {
	if r == nil {
		return Snapshot[T]{}, ErrNoProvider
	}
	return r.Read()
}

// 🏭 Provider mounts independent catalog scopes backed by one source
type Provider[T any] struct {
	source Source[T]
	opts   options
	tracer trace.Tracer
}

// NewProvider creates a provider for src
func NewProvider[T any](src Source[T], opts ...Option) (*Provider[T], error) {
	if src == nil {
		return nil, errors.Errorf("catalog source is required")
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Provider[T]{
		source: src,
		opts:   o,
		tracer: o.tracerProvider.Tracer(tracerName),
	}, nil
}

// Delay returns the simulated latency applied to every mount
func (p *Provider[T]) Delay() time.Duration {
	return p.opts.delay
}

// 📦 Scope is a single mount of a provider. It owns its state exclusively.
type Scope[T any] struct {
	id        string
	source    Source[T]
	opts      options
	tracer    trace.Tracer
	ctx       context.Context
	cancel    context.CancelFunc
	timer     clock.Timer
	mountedAt time.Time
	done      chan struct{}

	mu        sync.RWMutex
	snapshot  *Snapshot[T]
	unmounted bool
}

var _ Reader[any] = (*Scope[any])(nil)

// 🚀 Mount publishes the loading state and schedules the single population task.
//
// Only values are taken from ctx; cancelling it does not stop the task. Call
// Unmount to tear the scope down.
func (p *Provider[T]) Mount(ctx context.Context) *Scope[T] {
	id := uuid.NewString()
	logger := zerolog.Ctx(ctx).With().Str("catalog_scope", id).Logger()
	ctx, cancel := context.WithCancel(logger.WithContext(context.WithoutCancel(ctx)))

	s := &Scope[T]{
		id:        id,
		source:    p.source,
		opts:      p.opts,
		tracer:    p.tracer,
		ctx:       ctx,
		cancel:    cancel,
		mountedAt: p.opts.clock.Now(),
		done:      make(chan struct{}),
		snapshot:  loadingSnapshot[T](),
	}

	p.opts.recorder.MountStarted()
	logger.Debug().Dur("delay", p.opts.delay).Msg("catalog mounted")

	s.timer = p.opts.clock.NewTimer(p.opts.delay)
	go s.populate()

	return s
}

// ID identifies the mount in logs and traces
func (s *Scope[T]) ID() string {
	return s.id
}

// 👀 Read returns a copy of the current snapshot
func (s *Scope[T]) Read() (Snapshot[T], error) {
	if s == nil {
		return Snapshot[T]{}, ErrNoProvider
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.unmounted {
		return Snapshot[T]{}, errors.Errorf("scope %s is unmounted: %w", s.id, ErrNoProvider)
	}
	return s.snapshot.clone(), nil
}

// MustRead is like Read but panics on misuse
func (s *Scope[T]) MustRead() Snapshot[T] {
	snap, err := s.Read()
	if err != nil {
		panic(err)
	}
	return snap
}

// Done is closed once the population task has finished, either by applying its
// result or by dropping it after Unmount
func (s *Scope[T]) Done() <-chan struct{} {
	return s.done
}

// ⏳ Wait blocks until the scope is done or ctx ends, then reads the snapshot
func (s *Scope[T]) Wait(ctx context.Context) (Snapshot[T], error) {
	if s == nil {
		return Snapshot[T]{}, ErrNoProvider
	}

	select {
	case <-ctx.Done():
		return Snapshot[T]{}, errors.Errorf("waiting for catalog: %w", ctx.Err())
	case <-s.done:
	}
	return s.Read()
}

// 🧹 Unmount releases the scope. A pending resolution is dropped. Safe to call
// more than once.
func (s *Scope[T]) Unmount() {
	if s == nil {
		return
	}

	s.mu.Lock()
	if s.unmounted {
		s.mu.Unlock()
		return
	}
	s.unmounted = true
	s.cancel()
	s.mu.Unlock()

	s.timer.Stop()
	zerolog.Ctx(s.ctx).Debug().Msg("catalog unmounted")
}

func (s *Scope[T]) populate() {
	defer close(s.done)

	select {
	case <-s.ctx.Done():
		s.suppress("unmounted before delay elapsed")
		return
	case <-s.timer.C():
	}

	ctx, span := s.tracer.Start(s.ctx, "catalog.populate", trace.WithAttributes(
		attribute.String("catalog.scope", s.id),
		attribute.Int64("catalog.delay_ms", s.opts.delay.Milliseconds()),
	))
	defer span.End()

	items, err := s.list(ctx)

	next := loadedSnapshot(items)
	if err != nil {
		next = erroredSnapshot[T]()
	}

	if !s.apply(next) {
		span.SetAttributes(attribute.Bool("catalog.suppressed", true))
		s.suppress("unmounted while source was running")
		return
	}

	logger := zerolog.Ctx(ctx)
	if err != nil {
		dserr := &DataSourceError{Scope: s.id, Err: err}
		span.RecordError(dserr)
		span.SetStatus(codes.Error, "catalog source failed")
		s.opts.sink.Report(ctx, dserr)
	} else {
		span.SetAttributes(attribute.Int("catalog.items", len(next.Items)))
		logger.Debug().Int("items", len(next.Items)).Msg("catalog loaded")
	}

	s.opts.recorder.Resolved(next.Status.String(), s.opts.clock.Now().Sub(s.mountedAt))
}

// apply replaces the snapshot unless the scope was torn down
func (s *Scope[T]) apply(next *Snapshot[T]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.unmounted || s.ctx.Err() != nil {
		return false
	}
	s.snapshot = next
	return true
}

func (s *Scope[T]) suppress(reason string) {
	s.opts.recorder.Suppressed()
	zerolog.Ctx(s.ctx).Debug().Str("reason", reason).Msg("catalog resolution dropped")
}

// list calls the source once, turning a panic into an error
func (s *Scope[T]) list(ctx context.Context) (items []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("catalog source panicked: %s", fmt.Sprint(r))
		}
	}()
	return s.source.ListCatalogItems(ctx)
}
