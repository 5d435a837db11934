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

// NodeKind is the flag spec §6 says every proof-tree node carries exactly
// one of.
type NodeKind int

const (
	// StrategyVerifiedNode is a leaf whose class was accepted by a
	// verification strategy (or found empty).
	StrategyVerifiedNode NodeKind = iota
	// DisjointUnionNode decomposes into children whose counts sum to the
	// parent's.
	DisjointUnionNode
	// DecompositionNode decomposes into children combined by a Cartesian
	// product.
	DecompositionNode
	// RecursionNode is a leaf pointing back at an ancestor's equivalence
	// class; it stands for a back-edge in the rule hypergraph.
	RecursionNode
)

func (k NodeKind) String() string {
	switch k {
	case StrategyVerifiedNode:
		return "strategy_verified"
	case DisjointUnionNode:
		return "disjoint_union"
	case DecompositionNode:
		return "decomposition"
	case RecursionNode:
		return "recursion"
	default:
		return "unknown"
	}
}

// ProofTreeNode is one node of an extracted [ProofTree] (spec §3/§6).
type ProofTreeNode struct {
	Label    Label
	Kind     NodeKind
	Children []*ProofTreeNode

	// EqvPathLabels is the chain of labels from this node's equivalence
	// representative down to the concrete label the rule (or
	// verification) actually fired on.
	EqvPathLabels []Label
	// EqvPathExplanations has one entry per adjacent pair in
	// EqvPathLabels.
	EqvPathExplanations []string

	FormalStep string
}

// ProofTree is the single stable artefact a search produces (spec §6):
// a cycle-free witness, rooted at the representative of the search's
// start label, that a downstream generating-function synthesiser
// consumes.
type ProofTree struct {
	Root *ProofTreeNode
}

// buildProofTree rewrites the BFS-extracted node tree into the public
// [ProofTree] shape, attaching the equivalence path spec §4.7 requires
// on every node.
func (s *Searcher) buildProofTree(n *extractedNode) *ProofTree {
	return &ProofTree{Root: s.rewriteNode(n)}
}

func (s *Searcher) rewriteNode(n *extractedNode) *ProofTreeNode {
	path := s.equivdb.FindPath(n.label, n.concreteParent)
	explanations := s.equivdb.Explanations(path)

	node := &ProofTreeNode{
		Label:               n.label,
		EqvPathLabels:       path,
		EqvPathExplanations: explanations,
		FormalStep:          n.formal,
	}

	switch {
	case n.isRecursion:
		node.Kind = RecursionNode
	case n.isVerified:
		node.Kind = StrategyVerifiedNode
		node.FormalStep = s.classdb.VerificationReason(n.concreteParent)
	case n.combinator == CARTESIAN:
		node.Kind = DecompositionNode
	default:
		node.Kind = DisjointUnionNode
	}

	for _, c := range n.children {
		node.Children = append(node.Children, s.rewriteNode(c))
	}
	return node
}

// HasProofTree reports whether FindTree would currently succeed, without
// constructing the tree (spec §8 property 6 references "_has_proof_tree"
// as a cheaper existence check than building the whole structure).
func (s *Searcher) HasProofTree() bool {
	rd := s.treeSearchPrep()
	p := rd.prune()
	return p[s.equivdb.Representative(s.startLabel)]
}
