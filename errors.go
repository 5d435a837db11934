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

import "fmt"

// MisuseError reports a programmer error: a missing start class or pack, a
// lookup of a class that was never added, or an inferral strategy
// returning a rule without exactly one child. These fail loudly and
// immediately (as panics); callers should treat a MisuseError as fatal to
// the search. Strategy results are typed, so a result that is not a
// strategy object cannot occur; nothing checks whether a strategy used
// for verification is a verification strategy.
type MisuseError struct {
	Op  string
	Msg string
}

func (e *MisuseError) Error() string {
	return fmt.Sprintf("combspec: misuse in %s: %s", e.Op, e.Msg)
}

// SanityError reports a debug-mode-only counting mismatch between a rule's
// parent and its children (spec §7 "Sanity failure"). It is never fatal:
// the rule that triggered it is still stored, so that a buggy strategy
// does not silently corrupt later search state, but the operator is told
// development is needed.
type SanityError struct {
	Parent   Label
	Children []Label
	Length   int
	Formal   string
	Detail   string
}

func (e *SanityError) Error() string {
	return fmt.Sprintf("combspec: sanity check failed for rule %d -> %v at length %d (%s): %s",
		e.Parent, e.Children, e.Length, e.Formal, e.Detail)
}

// Warning is a non-fatal diagnostic, used for conditions spec §7 calls
// out as "warned and skipped": an inferral strategy returning the class it
// was given (inferral fixed point), or a strategy function returning an
// error.
type Warning struct {
	Op  string
	Msg string
}

func (w *Warning) Error() string {
	return fmt.Sprintf("combspec: warning in %s: %s", w.Op, w.Msg)
}

// Reporter receives non-fatal diagnostics (SanityError, Warning) produced
// during a search. The zero Reporter discards everything.
type Reporter interface {
	Report(err error)
}

// ReporterFunc adapts a function to a Reporter.
type ReporterFunc func(error)

// Report calls f(err).
func (f ReporterFunc) Report(err error) { f(err) }

type discardReporter struct{}

func (discardReporter) Report(error) {}
