// Copyright © 2016 Abcum Ltd
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

// Package trc instruments query execution with local trace spans. There
// is no exporter: a fake running in-process has no cloud backend to ship
// spans to, so Start only exists to make span boundaries visible to
// anything already watching the context (tests, a debugger, an adapter).
package trc

import (
	"context"

	"go.opencensus.io/trace"
)

func init() {
	trace.ApplyConfig(trace.Config{
		DefaultSampler: trace.AlwaysSample(),
	})
}

// Start opens a new span named for the query stage (parse, pipeline,
// paginate) and returns the derived context together with the span.
func Start(ctx context.Context, name string) (context.Context, *trace.Span) {
	return trace.StartSpan(ctx, name)
}
