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
	"gitlab.com/tozd/go/errors"
)

// LoadFailedMessage is the only failure text consumers ever see
const LoadFailedMessage = "Failed to load products. Please try again later."

// ErrNoProvider is returned when state is read without an active provider scope.
// It signals a programming error and is never converted into state.
var ErrNoProvider = errors.Base("catalog state read outside of an active provider scope")

// 💥 DataSourceError wraps a failure of the catalog source. It only ever reaches the
// diagnostic sink; consumers see LoadFailedMessage instead.
type DataSourceError struct {
	Scope string
	Err   error
}

func (e *DataSourceError) Error() string {
	if e.Err == nil {
		return "catalog source failed"
	}
	return "catalog source failed: " + e.Err.Error()
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}
