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

// Package clock abstracts timers so delayed work can run on real or simulated time.
package clock

import (
	"sync"
	"time"
)

// ⏰ Clock creates timers and reports the current time
type Clock interface {
	Now() time.Time
	NewTimer(d time.Duration) Timer
}

// ⏲️ Timer delivers a single tick on C once its deadline passes
type Timer interface {
	C() <-chan time.Time
	// Stop prevents the timer from firing. It reports false when the timer
	// already fired or was already stopped.
	Stop() bool
}

// 🌍 System returns a Clock backed by package time
func System() Clock {
	return systemClock{}
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) NewTimer(d time.Duration) Timer {
	return &systemTimer{t: time.NewTimer(d)}
}

type systemTimer struct {
	t *time.Timer
}

func (s *systemTimer) C() <-chan time.Time {
	return s.t.C
}

func (s *systemTimer) Stop() bool {
	return s.t.Stop()
}

// 🧪 Fake is a manually advanced Clock. Timers only fire inside Advance.
type Fake struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

// 🏭 NewFake creates a fake clock starting at start
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) NewTimer(d time.Duration) Timer {
	f.mu.Lock()
	defer f.mu.Unlock()

	t := &fakeTimer{
		clock:    f,
		deadline: f.now.Add(d),
		ch:       make(chan time.Time, 1),
	}

	if d <= 0 {
		t.fired = true
		t.ch <- f.now
		return t
	}

	f.timers = append(f.timers, t)
	return t
}

// ⏩ Advance moves the clock forward and fires every timer whose deadline was reached
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.now = f.now.Add(d)

	pending := make([]*fakeTimer, 0, len(f.timers))
	for _, t := range f.timers {
		if t.deadline.After(f.now) {
			pending = append(pending, t)
			continue
		}
		t.fired = true
		t.ch <- t.deadline
	}
	f.timers = pending
}

// Pending returns the number of armed timers that have not fired or been stopped
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.timers)
}

type fakeTimer struct {
	clock    *Fake
	deadline time.Time
	ch       chan time.Time

	// guarded by clock.mu
	fired   bool
	stopped bool
}

func (t *fakeTimer) C() <-chan time.Time {
	return t.ch
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.fired || t.stopped {
		return false
	}
	t.stopped = true

	for i, other := range t.clock.timers {
		if other == t {
			t.clock.timers = append(t.clock.timers[:i], t.clock.timers[i+1:]...)
			break
		}
	}
	return true
}
