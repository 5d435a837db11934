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

import "github.com/cockroachdb/apd/v3"

// A Label is a dense, non-negative integer identifier allocated the first
// time a [Class] is seen. Labels are never recycled.
type Label int64

// NoLabel is returned by lookups that found nothing.
const NoLabel Label = -1

// Class is the capability set a combinatorial class must provide. The
// engine never inspects a class beyond this interface: structural
// decomposition is entirely the job of [Strategy] functions supplied by
// the caller.
//
// Implementations must be comparable with == and must return a stable
// Content encoding: two classes are considered the same object, and must
// therefore share a [Label], exactly when their Content values are equal.
type Class interface {
	// Content returns a stable byte encoding of the class, used both to
	// intern it to a dense Label and as the content-address embedded in
	// snapshots. Equal classes must produce equal Content; unequal classes
	// should (not must) produce different Content.
	Content() []byte

	// IsEmpty reports whether the class contains no objects of any size.
	// It is called at most once per label; the result is cached by the
	// class database (see ClassDB.SetEmpty).
	IsEmpty() bool

	// ObjectsOfLength returns (a finite prefix sufficient to compute) the
	// count of objects of the given size. It backs the optional debug
	// sanity checks (spec §7), which test the counting identity of spec
	// §8 property 7 on each emitted rule. It is legal, and expected, for classes with
	// expensive or unbounded generation to approximate this by returning
	// the exact count directly rather than enumerating objects.
	ObjectsOfLength(n int) *apd.Decimal

	// String returns a short human-readable representation, used in
	// formal steps and diagnostics.
	String() string
}

// GenFer is an optional capability: classes that can produce a symbolic
// generating function implement it. The core never calls GetGenF itself;
// it is consumed by the downstream generating-function synthesiser that
// reads a found [ProofTree] (out of scope for this module, see spec §1).
type GenFer interface {
	// GetGenF returns a symbolic expression for the generating function,
	// as a free-form string (the concrete symbolic representation belongs
	// to the downstream consumer, not the core).
	GetGenF(kwargs map[string]string) (string, error)
}
