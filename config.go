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

package combspec

import (
	"log"
	"time"

	"github.com/odinn13/combspec/internal/searchdebug"
)

// Config carries the tunables spec §4.5 and §4.8 leave as parameters.
// A zero Config is usable; use [DefaultConfig] to additionally pick up
// flags set via the COMBSPEC_DEBUG environment variable.
type Config struct {
	// Sanity enables the debug-mode-only counting check of spec §7 on
	// every rule the driver emits.
	Sanity bool

	// LogExpand logs each phase a label goes through via the standard
	// library's log package, the way the Python original's
	// logger.debug calls do.
	LogExpand bool

	// SanityLength is how far (in object size) the sanity check counts;
	// zero defaults to 5, matching the Python original's default.
	SanityLength int

	// Reporter receives non-fatal diagnostics (SanityError, Warning).
	// A nil Reporter discards them.
	Reporter Reporter

	// Logger receives LogExpand lines. A nil Logger uses log.Default().
	Logger *log.Logger
}

// DefaultConfig returns a Config seeded from the COMBSPEC_DEBUG
// environment variable (best-effort: a malformed value is ignored rather
// than failing construction).
func DefaultConfig() Config {
	_ = searchdebug.Init()
	return Config{
		Sanity:    searchdebug.Flags.Sanity,
		LogExpand: searchdebug.Flags.LogExpand,
	}
}

func (c Config) sanityLength() int {
	if c.SanityLength <= 0 {
		return 5
	}
	return c.SanityLength
}

func (c Config) reporter() Reporter {
	if c.Reporter == nil {
		return discardReporter{}
	}
	return c.Reporter
}

func (c Config) logger() *log.Logger {
	if c.Logger == nil {
		return log.Default()
	}
	return c.Logger
}

func (c Config) logf(format string, args ...any) {
	if !c.LogExpand {
		return
	}
	c.logger().Printf(format, args...)
}

// elapsed returns the time since start.
func elapsed(start time.Time) time.Duration {
	return time.Since(start)
}
