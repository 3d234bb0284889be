// Copyright 2026 The currust Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// ----------------

// Package logx provides the structured logger shared by the currust CLI and
// library-level warnings (non-fatal conditions such as a discarded
// duplicate-size CUR entry or the Windows symlink-script fallback).
package logx

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/rs/zerolog"
)

var current atomic.Pointer[zerolog.Logger]

func init() {
	l := zerolog.New(io.Discard).With().Timestamp().Logger()
	current.Store(&l)
}

// SetConsole switches the package logger to a human-readable console writer
// on stderr. cmd/currust calls this once at startup; library code never does.
func SetConsole(verbose bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	l := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
	current.Store(&l)
}

// Logger returns the current package-level logger. Library packages call
// this lazily rather than caching it, so CLI startup configuration always
// takes effect.
func Logger() *zerolog.Logger {
	return current.Load()
}
