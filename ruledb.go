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
	"fmt"
	"sort"

	"github.com/mpvl/unique"
)

// Combinator is the composition rule for a [Rule]'s children.
type Combinator int

const (
	// DISJOINT is a disjoint-union (sum) combinator: the parent count at
	// size n is the sum of the children's counts at size n.
	DISJOINT Combinator = iota
	// CARTESIAN is a Cartesian-product combinator: the parent count at
	// size n is the sum, over compositions of n into len(children) parts,
	// of the product of each child's count at its part.
	CARTESIAN
)

func (c Combinator) String() string {
	switch c {
	case DISJOINT:
		return "disjoint"
	case CARTESIAN:
		return "cartesian"
	default:
		return "unknown"
	}
}

// ChildTuple is a sorted, duplicate-preserving tuple of child labels.
// Sorting makes permutations of the same children collapse onto the same
// rule, while multiplicities (the same child appearing twice) are kept.
type ChildTuple []Label

func newChildTuple(children []Label) ChildTuple {
	t := make(ChildTuple, len(children))
	copy(t, children)
	sort.Sort(t)
	return t
}

func (t ChildTuple) Len() int           { return len(t) }
func (t ChildTuple) Less(i, j int) bool { return t[i] < t[j] }
func (t ChildTuple) Swap(i, j int)      { t[i], t[j] = t[j], t[i] }

// key returns a comparable representation usable as a map key.
func (t ChildTuple) key() string {
	// Labels are written in decimal separated by ',', which keeps the key
	// collision-free (labels are non-negative, so ',' cannot appear
	// inside a formatted label).
	s := make([]byte, 0, len(t)*8)
	for i, l := range t {
		if i > 0 {
			s = append(s, ',')
		}
		s = fmt.Appendf(s, "%d", l)
	}
	return string(s)
}

// Rule is a single hyperedge of the rule database: a parent label
// decomposing, via combinator, into the sorted tuple of children, with the
// human-readable reason a strategy gave for the decomposition.
type Rule struct {
	Parent     Label
	Children   ChildTuple
	Formal     string
	Combinator Combinator
}

// RuleDB stores the rule hypergraph: parent label -> set of child tuples,
// each with an explanation and combinator. It is append-mostly; [RuleDB.Remove]
// exists only for higher-level consumers outside the core (spec §5).
type RuleDB struct {
	children map[Label][]ChildTuple
	explain  map[Label]map[string]string
	combin   map[Label]map[string]Combinator
	order    []Rule // insertion order, for deterministic iteration
}

// NewRuleDB returns an empty rule database.
func NewRuleDB() *RuleDB {
	return &RuleDB{
		children: make(map[Label][]ChildTuple),
		explain:  make(map[Label]map[string]string),
		combin:   make(map[Label]map[string]Combinator),
	}
}

// Add inserts a rule into the database. children is normalised (sorted)
// before storage. If a rule with the same parent and sorted children
// already exists, its explanation and combinator are replaced by the new
// ones -- overwriting with the newest call is rare in practice (it only
// happens when two different strategies produce the exact same
// decomposition) and is the deterministic choice the source left
// unspecified (spec §9 Open Questions).
func (r *RuleDB) Add(parent Label, children []Label, formal string, c Combinator) {
	tuple := newChildTuple(children)
	key := tuple.key()

	if _, ok := r.explain[parent]; !ok {
		r.explain[parent] = make(map[string]string)
		r.combin[parent] = make(map[string]Combinator)
	}
	_, existed := r.explain[parent][key]
	r.explain[parent][key] = formal
	r.combin[parent][key] = c

	if !existed {
		r.children[parent] = append(r.children[parent], tuple)
		r.order = append(r.order, Rule{Parent: parent, Children: tuple, Formal: formal, Combinator: c})
	} else {
		for i := range r.order {
			if r.order[i].Parent == parent && r.order[i].Children.key() == key {
				r.order[i].Formal = formal
				r.order[i].Combinator = c
				break
			}
		}
	}
}

// Remove deletes the rule parent -> children, if present.
func (r *RuleDB) Remove(parent Label, children []Label) {
	tuple := newChildTuple(children)
	key := tuple.key()
	if m, ok := r.explain[parent]; ok {
		delete(m, key)
		if len(m) == 0 {
			delete(r.explain, parent)
		}
	}
	if m, ok := r.combin[parent]; ok {
		delete(m, key)
		if len(m) == 0 {
			delete(r.combin, parent)
		}
	}
	if ts, ok := r.children[parent]; ok {
		for i, t := range ts {
			if t.key() == key {
				r.children[parent] = append(ts[:i], ts[i+1:]...)
				break
			}
		}
		if len(r.children[parent]) == 0 {
			delete(r.children, parent)
		}
	}
	for i, rl := range r.order {
		if rl.Parent == parent && rl.Children.key() == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Has reports whether parent has at least one rule.
func (r *RuleDB) Has(parent Label) bool {
	return len(r.children[parent]) > 0
}

// ChildrenOf returns the set of child tuples known for parent, in
// insertion order.
func (r *RuleDB) ChildrenOf(parent Label) []ChildTuple {
	return r.children[parent]
}

// Explanation returns the formal step for parent -> children.
func (r *RuleDB) Explanation(parent Label, children []Label) (string, bool) {
	tuple := newChildTuple(children)
	m, ok := r.explain[parent]
	if !ok {
		return "", false
	}
	s, ok := m[tuple.key()]
	return s, ok
}

// CombinatorOf returns the combinator for parent -> children.
func (r *RuleDB) CombinatorOf(parent Label, children []Label) (Combinator, bool) {
	tuple := newChildTuple(children)
	m, ok := r.combin[parent]
	if !ok {
		return 0, false
	}
	c, ok := m[tuple.key()]
	return c, ok
}

// All iterates every (parent, children) pair in insertion order.
func (r *RuleDB) All(yield func(parent Label, children ChildTuple) bool) {
	for _, rule := range r.order {
		if !yield(rule.Parent, rule.Children) {
			return
		}
	}
}

// dedupSortLabels sorts labels and drops adjacent duplicates in place,
// returning the deduplicated prefix. Used when collecting symmetric images
// of a class (symmetry.go), where several symmetry functions may produce
// the same image.
func dedupSortLabels(labels []Label) []Label {
	sort.Sort(labelSlice(labels))
	n := unique.Sort(labelSlice(labels))
	return labels[:n]
}

type labelSlice []Label

func (s labelSlice) Len() int           { return len(s) }
func (s labelSlice) Less(i, j int) bool { return s[i] < s[j] }
func (s labelSlice) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
