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

import "sort"

// ruleDict is the rewritten view of the rule database the tree searcher
// operates on (spec §4.7): every rule's parent and children are rewritten
// through equivdb.Representative, and every verified representative is
// recorded in verified, which stands in for an artificial parent -> ()
// leaf rule, so the fixed point below never needs to consult the
// equivalence database again.
type ruleDict struct {
	rules    map[Label][]ruleEdge
	verified map[Label]bool
}

type ruleEdge struct {
	children   ChildTuple
	formal     string
	combinator Combinator
	// original is the pre-representative-rewrite child tuple, kept so the
	// extractor can report concrete labels (not just representatives) in
	// the resulting proof tree.
	original ChildTuple
	// concreteParent is the actual rule-db label the rule was stored
	// under, before rewriting through the representative -- needed to
	// recover the equivalence path spec §4.7 asks every node to carry.
	concreteParent Label
}

// treeSearchPrep builds the rewritten rule_dict described by spec §4.7.
// It does not mutate the engine's own databases: the tree searcher only
// reads a snapshot, per spec §5.
func (s *Searcher) treeSearchPrep() *ruleDict {
	rd := &ruleDict{
		rules:    make(map[Label][]ruleEdge),
		verified: make(map[Label]bool),
	}

	seenRoots := make(map[Label]bool)
	s.ruledb.All(func(parent Label, children ChildTuple) bool {
		rep := s.equivdb.Representative(parent)
		formal, _ := s.ruledb.Explanation(parent, children)
		comb, _ := s.ruledb.CombinatorOf(parent, children)

		rewritten := make(ChildTuple, len(children))
		for i, c := range children {
			rewritten[i] = s.equivdb.Representative(c)
		}
		sort.Sort(rewritten)

		rd.rules[rep] = append(rd.rules[rep], ruleEdge{
			children:       rewritten,
			formal:         formal,
			combinator:     comb,
			original:       children,
			concreteParent: parent,
		})
		seenRoots[rep] = true
		return true
	})

	for l := 0; l < s.classdb.Len(); l++ {
		label := Label(l)
		if s.classdb.IsVerified(label) {
			rep := s.equivdb.Representative(label)
			rd.verified[rep] = true
		}
	}
	return rd
}

// prune computes the greatest fixed point P described by spec §4.7:
// initialised to the verified labels, then repeatedly extended with any
// parent that has a rule whose children are all already in P, until a
// full scan adds nothing. It returns P itself; rd is left unchanged, and
// callers restrict their walk to rules whose children all lie in P.
func (rd *ruleDict) prune() map[Label]bool {
	p := make(map[Label]bool, len(rd.verified))
	for l := range rd.verified {
		p[l] = true
	}

	for {
		added := false
		for parent, edges := range rd.rules {
			if p[parent] {
				continue
			}
			for _, e := range edges {
				if allIn(e.children, p) {
					p[parent] = true
					added = true
					break
				}
			}
		}
		if !added {
			break
		}
	}
	return p
}

func allIn(children ChildTuple, p map[Label]bool) bool {
	for _, c := range children {
		if !p[c] {
			return false
		}
	}
	return true
}

// bestRule picks, among parent's rules whose children all lie in P, the
// one whose children have the smallest maximum already-discovered depth,
// tie-broken by insertion (declaration) order -- spec §4.7's
// proof_tree_bfs selection rule. depth maps representative label to its
// height in the tree built so far (0 for a leaf, one more than its
// deepest child otherwise); a representative absent from depth
// (not yet discovered) contributes 0 to the maximum, the same as a
// discovered depth-0 leaf.
func bestRule(edges []ruleEdge, p map[Label]bool, depth map[Label]int) (ruleEdge, bool) {
	best := -1
	bestDepth := -1
	for i, e := range edges {
		if !allIn(e.children, p) {
			continue
		}
		maxDepth := 0
		for _, c := range e.children {
			if d, ok := depth[c]; ok && d > maxDepth {
				maxDepth = d
			}
		}
		if best == -1 || maxDepth < bestDepth {
			best = i
			bestDepth = maxDepth
		}
	}
	if best == -1 {
		return ruleEdge{}, false
	}
	return edges[best], true
}

// extractedNode is the intermediate BFS output before it is rewritten
// into a [ProofTree] with equivalence paths attached.
type extractedNode struct {
	label          Label
	children       []*extractedNode
	formal         string
	combinator     Combinator
	isLeaf         bool
	isVerified     bool
	isRecursion    bool
	concreteParent Label
}

// proofTreeBFS extracts a cycle-free witness from the pruned rule_dict
// rooted at root, per spec §4.7. iterative forbids reusing any ancestor
// label on the current root-to-node path as a child, producing a strict
// DAG with no RECURSION leaves; non-iterative mode instead turns a
// back-edge to an already-visited representative into a RECURSION leaf.
func (rd *ruleDict) proofTreeBFS(root Label, p map[Label]bool, iterative bool) (*extractedNode, bool) {
	if !p[root] {
		return nil, false
	}

	depth := map[Label]int{}
	visited := map[Label]*extractedNode{}

	var build func(label Label, ancestors map[Label]bool) (*extractedNode, bool)
	build = func(label Label, ancestors map[Label]bool) (*extractedNode, bool) {
		if n, ok := visited[label]; ok {
			return n, true
		}
		if ancestors[label] {
			if iterative {
				return nil, false
			}
			return &extractedNode{label: label, isLeaf: true, isRecursion: true, concreteParent: label}, true
		}

		if rd.verified[label] && len(rd.rules[label]) == 0 {
			n := &extractedNode{label: label, isLeaf: true, isVerified: true, concreteParent: label}
			visited[label] = n
			depth[label] = 0
			return n, true
		}

		edges := rd.rules[label]
		if rd.verified[label] {
			// An artificial parent -> () edge always exists conceptually
			// for a verified label; prefer a real decomposition if none
			// of its children has a recorded depth above 0 (undiscovered
			// children count as 0), else fall back to the verified leaf.
			if best, ok := bestRule(edges, p, depth); !ok || bestMaxDepth(best, depth) > 0 {
				n := &extractedNode{label: label, isLeaf: true, isVerified: true, concreteParent: label}
				visited[label] = n
				depth[label] = 0
				return n, true
			}
		}

		candidates := append([]ruleEdge{}, edges...)
		nextAncestors := make(map[Label]bool, len(ancestors)+1)
		for a := range ancestors {
			nextAncestors[a] = true
		}
		nextAncestors[label] = true

		for len(candidates) > 0 {
			e, ok := bestRule(candidates, p, depth)
			if !ok {
				break
			}
			children := make([]*extractedNode, 0, len(e.children))
			succeeded := true
			for _, c := range e.children {
				cn, ok := build(c, nextAncestors)
				if !ok {
					succeeded = false
					break
				}
				children = append(children, cn)
			}
			if succeeded {
				maxDepth := 0
				for _, c := range children {
					if d := depth[c.label]; d > maxDepth {
						maxDepth = d
					}
				}
				n := &extractedNode{
					label:          label,
					children:       children,
					formal:         e.formal,
					combinator:     e.combinator,
					concreteParent: e.concreteParent,
				}
				visited[label] = n
				depth[label] = maxDepth + 1
				return n, true
			}
			candidates = removeEdge(candidates, e)
		}

		if rd.verified[label] {
			n := &extractedNode{label: label, isLeaf: true, isVerified: true, concreteParent: label}
			visited[label] = n
			depth[label] = 0
			return n, true
		}
		return nil, false
	}

	return build(root, map[Label]bool{})
}

func bestMaxDepth(e ruleEdge, depth map[Label]int) int {
	best := 0
	for _, c := range e.children {
		if d, ok := depth[c]; ok && d > best {
			best = d
		}
	}
	return best
}

func removeEdge(edges []ruleEdge, target ruleEdge) []ruleEdge {
	out := make([]ruleEdge, 0, len(edges)-1)
	for _, e := range edges {
		if e.formal == target.formal && e.children.key() == target.children.key() {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FindTree performs prune + extract and, on success, rewrites the result
// into a [ProofTree] with equivalence paths attached to every node (spec
// §4.7). It returns ok=false if no finite specification exists yet --
// a normal outcome per spec §7, not an error.
func (s *Searcher) FindTree() (*ProofTree, bool) {
	rd := s.treeSearchPrep()
	p := rd.prune()
	root := s.equivdb.Representative(s.startLabel)

	iterative := s.pack.Iterative
	node, ok := rd.proofTreeBFS(root, p, iterative)
	if !ok {
		return nil, false
	}
	return s.buildProofTree(node), true
}
