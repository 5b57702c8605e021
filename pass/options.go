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
	"go.uber.org/zap"

	"fillmore-labs.com/scopext/internal/config"
)

// Option configures specific behavior of a [New] scope extension pass.
type Option interface {
	apply(r *runOptions)
	LogField() zap.Field
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

func (o Options) apply(r *runOptions) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(r)
	}
}

// LogField is for logging the applied options.
func (o Options) LogField() zap.Field {
	fields := make([]zap.Field, 0, len(o))
	fields = appendOptions(fields, o)

	return zap.Dict("options", fields...)
}

func appendOptions(fields []zap.Field, o Options) []zap.Field {
	for _, opt := range o {
		switch opt := opt.(type) {
		case nil:
			fields = append(fields, zap.String("nil", "<nil>"))

		case Options:
			fields = appendOptions(fields, opt)

		default:
			fields = append(fields, opt.LogField())
		}
	}

	return fields
}

// WithLogger is an [Option] to configure the logger used for pass debugging.
func WithLogger(log *zap.Logger) Option { return loggerOption{log: log} }

type loggerOption struct{ log *zap.Logger }

func (o loggerOption) apply(r *runOptions) {
	r.log = o.log
}

func (o loggerOption) LogField() zap.Field {
	return zap.Bool("logger", o.log != nil)
}

// WithYieldExtension is an [Option] to configure whether coroutine scopes
// may be extended by moving their completion instructions.
func WithYieldExtension(yield bool) Option { return yieldOption{yield: yield} }

type yieldOption struct{ yield bool }

func (o yieldOption) apply(r *runOptions) {
	r.behavior.Set(config.ExtendYieldScopes, o.yield)
}

func (o yieldOption) LogField() zap.Field {
	return zap.Bool("yield-extension", o.yield)
}

// WithCallerRedirect is an [Option] to configure whether markers whose scope
// chain ends at caller arguments are rewritten to depend on those arguments.
func WithCallerRedirect(redirect bool) Option { return redirectOption{redirect: redirect} }

type redirectOption struct{ redirect bool }

func (o redirectOption) apply(r *runOptions) {
	r.behavior.Set(config.RedirectCallerDeps, o.redirect)
}

func (o redirectOption) LogField() zap.Field {
	return zap.Bool("caller-redirect", o.redirect)
}

// WithBorrowNormalization is an [Option] to configure whether
// compiler-introduced borrow bases are replaced by the borrowed value before
// classification.
func WithBorrowNormalization(normalize bool) Option { return normalizeOption{normalize: normalize} }

type normalizeOption struct{ normalize bool }

func (o normalizeOption) apply(r *runOptions) {
	r.behavior.Set(config.NormalizeBorrowBases, o.normalize)
}

func (o normalizeOption) LogField() zap.Field {
	return zap.Bool("borrow-normalization", o.normalize)
}
