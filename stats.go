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

import "time"

// Stats records per-strategy call counts and cumulative time, the way the
// Python original's cssmethodtimer/cssiteratortimer decorators and
// strategy_times/strategy_expansions dictionaries do (see
// SPEC_FULL.md's "Per-strategy timing" supplemented feature).
type Stats struct {
	calls map[string]int
	times map[string]time.Duration

	inferralExpansions int
	initialExpansions  int
	expansionRounds    int
}

func newStats() *Stats {
	return &Stats{
		calls: make(map[string]int),
		times: make(map[string]time.Duration),
	}
}

func (s *Stats) record(name string, d time.Duration) {
	s.calls[name]++
	s.times[name] += d
}

// Calls returns how many times the named strategy was invoked.
func (s *Stats) Calls(name string) int { return s.calls[name] }

// Time returns the cumulative time spent inside the named strategy.
func (s *Stats) Time(name string) time.Duration { return s.times[name] }

// Names returns every strategy name that has recorded at least one call.
func (s *Stats) Names() []string {
	names := make([]string, 0, len(s.calls))
	for n := range s.calls {
		names = append(names, n)
	}
	return names
}

func timeCall[T any](s *Stats, name string, f func() T) T {
	start := time.Now()
	res := f()
	s.record(name, time.Since(start))
	return res
}
