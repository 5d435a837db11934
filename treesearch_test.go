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
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"
)

// recursiveFixture builds a hand-constructed rule hypergraph for the
// classic "A decomposes into (A, B), and also directly into (B)" shape:
// B is a verified leaf, and A has both a self-referential rule and a
// non-recursive alternative. The alternative is what lets the greatest
// fixed point admit A at all (spec §4.7): a purely self-referential
// label with no other rule can never enter the pruned set.
func recursiveFixture(iterative bool) (*Searcher, Label, Label) {
	pack := &Pack{Name: "recursive-fixture", Iterative: iterative}
	s := NewSearcher(tc("A"), pack, Config{})
	a := s.startLabel
	b := s.classdb.Add(tc("B"))
	s.classdb.SetVerified(b, "atomic")

	// Inserted in this order so the two rules tie on discovered-depth
	// during extraction (neither child has a recorded depth yet) and the
	// cyclic rule, tried first, wins the tie -- this is what exercises
	// the ancestor check.
	s.ruledb.Add(a, []Label{a, b}, "A decomposes into A and B", DISJOINT)
	s.ruledb.Add(a, []Label{b}, "A decomposes into B alone", DISJOINT)
	return s, a, b
}

func TestFindTreeEmitsRecursionLeafWhenNonIterative(t *testing.T) {
	s, a, b := recursiveFixture(false)

	tree, ok := s.FindTree()
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(tree.Root.Label, a))
	qt.Assert(t, qt.Equals(tree.Root.Kind, DisjointUnionNode))
	qt.Assert(t, qt.HasLen(tree.Root.Children, 2))

	var sawRecursion, sawVerifiedB bool
	for _, c := range tree.Root.Children {
		if c.Kind == RecursionNode && c.Label == a {
			sawRecursion = true
		}
		if c.Kind == StrategyVerifiedNode && c.Label == b {
			sawVerifiedB = true
		}
	}
	qt.Assert(t, qt.IsTrue(sawRecursion))
	qt.Assert(t, qt.IsTrue(sawVerifiedB))
}

func TestFindTreeAvoidsAncestorReuseWhenIterative(t *testing.T) {
	s, a, b := recursiveFixture(true)

	tree, ok := s.FindTree()
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(tree.Root.Label, a))
	qt.Assert(t, qt.HasLen(tree.Root.Children, 1))
	qt.Assert(t, qt.Equals(tree.Root.Children[0].Label, b))
	qt.Assert(t, qt.Equals(tree.Root.Children[0].Kind, StrategyVerifiedNode))

	for _, c := range tree.Root.Children {
		qt.Assert(t, qt.Not(qt.Equals(c.Kind, RecursionNode)))
	}
}

func TestPruneRequiresAllChildrenReachable(t *testing.T) {
	pack := &Pack{Name: "unreachable"}
	s := NewSearcher(tc("A"), pack, Config{})
	a := s.startLabel
	b := s.classdb.Add(tc("B"))
	// Only a self-referential rule, no verified base case and no
	// alternative: the fixed point can never admit A.
	s.ruledb.Add(a, []Label{a, b}, "A decomposes into A and B", DISJOINT)

	_, ok := s.FindTree()
	qt.Assert(t, qt.IsFalse(ok))
	qt.Assert(t, qt.IsFalse(s.HasProofTree()))
}

func TestFindTreeCartesianProducesDecompositionNode(t *testing.T) {
	pack := &Pack{Name: "cartesian-fixture"}
	s := NewSearcher(tc("R"), pack, Config{})
	r := s.startLabel
	left := s.classdb.Add(tc("L"))
	right := s.classdb.Add(tc("Rgt"))
	s.classdb.SetVerified(left, "atomic")
	s.classdb.SetVerified(right, "atomic")
	s.ruledb.Add(r, []Label{left, right}, "R = L x Rgt", CARTESIAN)

	tree, ok := s.FindTree()
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(tree.Root.Kind, DecompositionNode))
	qt.Assert(t, qt.HasLen(tree.Root.Children, 2))
}

// TestFindTreeIsDeterministic rebuilds the tree from the same rule
// hypergraph twice and diffs the two results structurally, guarding
// against the extraction walk depending on map iteration order or other
// incidental nondeterminism.
func TestFindTreeIsDeterministic(t *testing.T) {
	pack := &Pack{Name: "cartesian-fixture"}
	s := NewSearcher(tc("R"), pack, Config{})
	r := s.startLabel
	left := s.classdb.Add(tc("L"))
	right := s.classdb.Add(tc("Rgt"))
	s.classdb.SetVerified(left, "atomic")
	s.classdb.SetVerified(right, "atomic")
	s.ruledb.Add(r, []Label{left, right}, "R = L x Rgt", CARTESIAN)

	first, ok := s.FindTree()
	qt.Assert(t, qt.IsTrue(ok))
	second, ok := s.FindTree()
	qt.Assert(t, qt.IsTrue(ok))

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("FindTree is not deterministic (-first +second):\n%s", diff)
	}
}
