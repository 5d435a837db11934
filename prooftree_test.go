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
)

func TestNodeKindString(t *testing.T) {
	qt.Assert(t, qt.Equals(StrategyVerifiedNode.String(), "strategy_verified"))
	qt.Assert(t, qt.Equals(DisjointUnionNode.String(), "disjoint_union"))
	qt.Assert(t, qt.Equals(DecompositionNode.String(), "decomposition"))
	qt.Assert(t, qt.Equals(RecursionNode.String(), "recursion"))
}

func TestVerifiedLeafCarriesVerificationReason(t *testing.T) {
	pack := &Pack{Name: "leaf-fixture"}
	s := NewSearcher(tc("R"), pack, Config{})
	s.classdb.SetVerified(s.startLabel, "the base case")

	tree, ok := s.FindTree()
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(tree.Root.Kind, StrategyVerifiedNode))
	qt.Assert(t, qt.Equals(tree.Root.FormalStep, "the base case"))
	qt.Assert(t, qt.DeepEquals(tree.Root.EqvPathLabels, []Label{s.startLabel}))
}

func TestHasProofTreeMatchesFindTree(t *testing.T) {
	pack := &Pack{Name: "leaf-fixture"}
	s := NewSearcher(tc("R"), pack, Config{})
	qt.Assert(t, qt.IsFalse(s.HasProofTree()))

	s.classdb.SetVerified(s.startLabel, "the base case")
	qt.Assert(t, qt.IsTrue(s.HasProofTree()))
}
