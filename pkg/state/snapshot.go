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
	"slices"
)

// 📊 Status is the lifecycle position of a mounted catalog
type Status int

const (
	StatusLoading Status = iota // population task still pending
	StatusLoaded                // source returned its items
	StatusErrored               // source failed, ErrorMessage is set
)

// String returns a string representation of Status
func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// 📸 Snapshot is the catalog state published to consumers.
//
// Exactly one of these holds:
//   - loading: IsLoading, no items, no ErrorMessage
//   - loaded:  !IsLoading, items in source order (possibly empty), no ErrorMessage
//   - errored: !IsLoading, no items, ErrorMessage set
type Snapshot[T any] struct {
	Status       Status
	Items        []T
	IsLoading    bool
	ErrorMessage string // empty when absent
}

// HasError reports whether the snapshot carries an error message
func (s Snapshot[T]) HasError() bool {
	return s.ErrorMessage != ""
}

// clone copies the item slice so the caller cannot reach the stored state
func (s *Snapshot[T]) clone() Snapshot[T] {
	out := *s
	out.Items = slices.Clone(s.Items)
	return out
}

func loadingSnapshot[T any]() *Snapshot[T] {
	return &Snapshot[T]{
		Status:    StatusLoading,
		Items:     []T{},
		IsLoading: true,
	}
}

func loadedSnapshot[T any](items []T) *Snapshot[T] {
	if items == nil {
		items = []T{}
	}
	return &Snapshot[T]{
		Status: StatusLoaded,
		Items:  slices.Clone(items),
	}
}

func erroredSnapshot[T any]() *Snapshot[T] {
	return &Snapshot[T]{
		Status:       StatusErrored,
		Items:        []T{},
		ErrorMessage: LoadFailedMessage,
	}
}
