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

// compositions calls yield once for every tuple of k non-negative
// integers summing to n, stopping early if yield returns false. It is a
// direct port of the Python original's compositions(n, k) generator, used
// by the sanity check to enumerate how a Cartesian-product rule's total
// at size n splits across its children.
func compositions(n, k int, yield func(parts []int) bool) {
	if n < 0 || k <= 0 {
		return
	}
	a := make([]int, k)
	a[0] = n
	if !yield(a) {
		return
	}
	t, h := n, 0
	for a[k-1] != n {
		if t != 1 {
			h = 0
		}
		t = a[h]
		a[h] = 0
		a[0] = t - 1
		a[h+1]++
		h++
		cp := make([]int, k)
		copy(cp, a)
		if !yield(cp) {
			return
		}
	}
}

// sanityCheckRule verifies, up to config.sanityLength(), that a rule's
// parent object count at each size agrees with what its children and
// combinator predict (spec §7's debug-mode-only counting check, spec §8
// property 7). A mismatch is reported through the configured Reporter as
// a SanityError; it is never fatal, matching the Python original's
// behaviour of logging and continuing.
func (s *Searcher) sanityCheckRule(parent Label, children []Label, combinator string, formal string) {
	n := s.config.sanityLength()
	parentClass := s.classdb.GetClass(parent)
	childClasses := make([]Class, len(children))
	for i, c := range children {
		childClasses[i] = s.classdb.GetClass(c)
	}

	for size := 0; size <= n; size++ {
		want := parentClass.ObjectsOfLength(size)
		got := s.predictedCount(childClasses, combinator, size)
		if want.Cmp(got) != 0 {
			s.config.reporter().Report(&SanityError{
				Parent:   parent,
				Children: children,
				Length:   size,
				Formal:   formal,
				Detail:   "parent count " + want.String() + " != predicted " + got.String(),
			})
			return
		}
	}
}

// predictedCount computes what a rule with the given combinator predicts
// the parent's object count at size n to be, from its children's counts.
func (s *Searcher) predictedCount(children []Class, combinator string, n int) *apd.Decimal {
	total := new(apd.Decimal)
	if len(children) == 0 {
		return total
	}

	switch combinator {
	case "disjoint", "equiv":
		ctx := apd.BaseContext.WithPrecision(60)
		for _, c := range children {
			ctx.Add(total, total, c.ObjectsOfLength(n))
		}
		return total

	case "cartesian":
		ctx := apd.BaseContext.WithPrecision(60)
		compositions(n, len(children), func(parts []int) bool {
			prod := apd.New(1, 0)
			for i, c := range children {
				ctx.Mul(prod, prod, c.ObjectsOfLength(parts[i]))
			}
			ctx.Add(total, total, prod)
			return true
		})
		return total

	default:
		return total
	}
}
