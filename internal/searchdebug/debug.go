// Copyright 2024 The Combspec Authors
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

// Package searchdebug holds the set of COMBSPEC_DEBUG flags, modelled
// directly on cuelang.org/go's internal/cuedebug package.
package searchdebug

import (
	"sync"

	"github.com/odinn13/combspec/internal/envflag"
)

// Flags holds the process-wide set of COMBSPEC_DEBUG flags. It is
// initialized by Init.
var Flags Config

// Config is the set of debug knobs a combspec.Searcher consults.
type Config struct {
	// Sanity enables the §7 sanity-check counting of parent vs. children
	// object counts for every emitted rule, up to a small length.
	Sanity bool

	// LogExpand logs each phase transition (inferral/initial/expansion)
	// a label goes through, the way the Python original's
	// logger.debug(...) calls in expand() do.
	LogExpand bool

	// Iterative is parsed from COMBSPEC_DEBUG but is not read by the
	// engine: the tree searcher takes the acyclic variant from the
	// strategy pack's Iterative field only.
	Iterative bool
}

// Init initializes Flags from the COMBSPEC_DEBUG environment variable.
// Note: this isn't an init function because the failure mode should be an
// error, not a panic, and because tests may want to parse a specific
// string instead of reading the environment.
func Init() error {
	return initOnce()
}

var initOnce = sync.OnceValue(func() error {
	return envflag.Init(&Flags, "COMBSPEC_DEBUG")
})
