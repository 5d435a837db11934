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

// ChildInfo carries a single child class together with the per-child
// flags a strategy can set on it (spec §4.5).
type ChildInfo struct {
	Class Class
	// Inferable marks the child for an immediate working re-queue, so
	// inferral strategies get a chance to simplify it before anything
	// else touches it.
	Inferable bool
	// Workable marks the child as expandable.
	Workable bool
}

// StrategyObject is what a [StrategyFunc] returns for each decomposition
// it finds (spec §4.5/§6).
type StrategyObject struct {
	Children []ChildInfo
	// IgnoreParent: if every child turns out expandable after cleanup,
	// the parent is retired (flagged ExpandingChildrenOnly) rather than
	// re-queued.
	IgnoreParent bool
	Combinator   Combinator
	FormalStep   string
}

// StrategyFunc is the pluggable decomposition function signature (spec
// §6): applied to a class, it yields zero or more decompositions.
// Verification strategies return at most one StrategyObject; only its
// FormalStep is used, as the verification reason, and its Children are
// not consulted (see [Pack.VerificationStrategies]).
// Inferral strategies return at most one StrategyObject with exactly one
// child, the simplified class (see [Pack.InferralStrategies]).
type StrategyFunc func(class Class) ([]StrategyObject, error)

// NamedStrategy pairs a StrategyFunc with a stable name, used for
// per-strategy statistics (spec-supplemented feature, see SPEC_FULL.md)
// and for rotating "skip the strategy that just fired" inferral
// scheduling (spec §4.5).
type NamedStrategy struct {
	Name string
	Func StrategyFunc
}

// Symmetry is a class-to-class function enrolled by the symmetry
// expansion machinery (spec §4.6). It must return the image with the
// reason it is symmetric to its argument.
type Symmetry struct {
	Name string
	Func func(class Class) (Class, string)
}

// Pack is the full set of strategies and flags that parameterise a
// search, as specified in spec §6.
type Pack struct {
	// Name identifies the pack, used in log lines and snapshots.
	Name string

	// InitialStrategies run once per label, in order, before any
	// expansion round.
	InitialStrategies []NamedStrategy

	// ExpansionStrategies is an ordered list of rounds; round i uses
	// ExpansionStrategies[i].
	ExpansionStrategies [][]NamedStrategy

	// InferralStrategies run to a fixed point before initial expansion,
	// in a rotating order (spec §4.5).
	InferralStrategies []NamedStrategy

	// VerificationStrategies are retried against a label each time the
	// driver's tryVerify is called on it while its equivalence set is
	// still unverified.
	VerificationStrategies []NamedStrategy

	// Iterative selects the acyclic ("no rule may re-use an ancestor")
	// variant of proof-tree extraction in the tree searcher; pruning is
	// the same in both modes.
	Iterative bool

	// ForwardEquivalence disables the implicit one-child-rule ->
	// equivalence rewrite: single-child rules are stored as ordinary
	// rules instead.
	ForwardEquivalence bool

	// Symmetries, if non-empty, enables symmetry expansion (spec §4.6).
	Symmetries []Symmetry
}

// NumRounds returns the number of expansion rounds in the pack.
func (p *Pack) NumRounds() int {
	return len(p.ExpansionStrategies)
}
