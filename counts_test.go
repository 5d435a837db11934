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

	"github.com/cockroachdb/apd/v3"
	"github.com/go-quicktest/qt"
)

func TestCompositionsEnumeratesAllSplits(t *testing.T) {
	var got [][]int
	compositions(3, 2, func(parts []int) bool {
		cp := append([]int{}, parts...)
		got = append(got, cp)
		return true
	})
	qt.Assert(t, qt.DeepEquals(got, [][]int{{3, 0}, {2, 1}, {1, 2}, {0, 3}}))

	for _, parts := range got {
		sum := 0
		for _, p := range parts {
			sum += p
		}
		qt.Assert(t, qt.Equals(sum, 3))
	}
}

func TestCompositionsStopsEarly(t *testing.T) {
	count := 0
	compositions(5, 3, func(parts []int) bool {
		count++
		return count < 2
	})
	qt.Assert(t, qt.Equals(count, 2))
}

func TestPredictedCountDisjointSumsChildren(t *testing.T) {
	s := &Searcher{config: Config{}}
	children := []Class{
		tcCounted("a", 2, 3),
		tcCounted("b", 2, 4),
	}
	got := s.predictedCount(children, "disjoint", 2)
	qt.Assert(t, qt.Equals(got.Cmp(apd.New(7, 0)), 0))
}

func TestPredictedCountCartesianSumsOverCompositions(t *testing.T) {
	s := &Searcher{config: Config{}}
	// tcCounted reports zero everywhere except its single recorded size:
	// left has 2 objects at size 1 only, right has 3 objects at size 0
	// only.
	left := tcCounted("L", 1, 2)
	right := tcCounted("R", 0, 3)
	got := s.predictedCount([]Class{left, right}, "cartesian", 1)
	// Only the composition (1, 0) contributes: left has 2 objects of
	// size 1, right has 3 objects of size 0, product 6.
	qt.Assert(t, qt.Equals(got.Cmp(apd.New(6, 0)), 0))
}

func TestSanityCheckRuleReportsMismatch(t *testing.T) {
	ruledb := NewRuleDB()
	equivdb := NewEquivDB()
	classdb := NewClassDB(ruledb, equivdb)
	parent := classdb.Add(tcCounted("P", 0, 5))
	child := classdb.Add(tcCounted("C", 0, 1))

	var reported error
	s := &Searcher{
		classdb: classdb,
		config:  Config{Reporter: ReporterFunc(func(err error) { reported = err })},
	}
	s.sanityCheckRule(parent, []Label{child}, "disjoint", "bad rule")

	qt.Assert(t, qt.IsNotNil(reported))
	_, ok := reported.(*SanityError)
	qt.Assert(t, qt.IsTrue(ok))
}

func TestSanityCheckRulePassesForConsistentCounts(t *testing.T) {
	ruledb := NewRuleDB()
	equivdb := NewEquivDB()
	classdb := NewClassDB(ruledb, equivdb)
	parent := classdb.Add(tcCounted("P", 0, 1))
	child := classdb.Add(tcCounted("C", 0, 1))

	var reported error
	s := &Searcher{
		classdb: classdb,
		config:  Config{Reporter: ReporterFunc(func(err error) { reported = err })},
	}
	s.sanityCheckRule(parent, []Label{child}, "disjoint", "fine rule")

	qt.Assert(t, qt.IsNil(reported))
}
