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

	"github.com/rs/zerolog"
)

// 🕳️ DiagnosticSink receives raw source failures for logging
type DiagnosticSink interface {
	Report(ctx context.Context, err error)
}

// SinkFunc adapts a function to DiagnosticSink
type SinkFunc func(ctx context.Context, err error)

func (f SinkFunc) Report(ctx context.Context, err error) {
	f(ctx, err)
}

// zerologSink writes failures to the logger carried by ctx
type zerologSink struct{}

func (zerologSink) Report(ctx context.Context, err error) {
	zerolog.Ctx(ctx).Error().Err(err).Msg("loading catalog failed")
}
