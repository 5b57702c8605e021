// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
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
//
// SPDX-License-Identifier: Apache-2.0

package pass

import (
	"context"
	"runtime"
	"runtime/trace"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"fillmore-labs.com/scopext/internal/fixup"
	"fillmore-labs.com/scopext/ir"
)

// Pass is a configured scope extension pass. A pass is stateless between
// functions and safe for concurrent use.
type Pass struct {
	opts *runOptions
}

// New returns a scope extension pass with the given options applied over
// the defaults.
func New(opts ...Option) *Pass {
	r := makeRunOptions(opts)
	r.log.Debug("scope extension pass configured", Options(opts).LogField())

	return &Pass{opts: r}
}

// Fix processes every unresolved dependency marker of the function and
// returns the number of markers whose scopes were extended or redirected.
func (p *Pass) Fix(fn *ir.Function) int {
	changed := fixup.New(fn, p.opts.log, p.opts.behavior).Run()
	if changed > 0 {
		p.opts.log.Debug("scopes extended",
			zap.String("function", fn.Name), zap.Int("markers", changed))
	}

	return changed
}

// FixAll runs the pass over the functions concurrently, one worker per
// available CPU. Functions are independent; each owns its instructions and
// values. FixAll stops early when the context is canceled.
func (p *Pass) FixAll(ctx context.Context, fns []*ir.Function) error {
	ctx, task := trace.NewTask(ctx, "ScopeExtension")
	defer task.End()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, fn := range fns {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			trace.Log(ctx, "function", fn.Name)
			p.Fix(fn)

			return nil
		})
	}

	return g.Wait()
}
