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

func TestClassDBAddIsIdempotentAndMonotone(t *testing.T) {
	db := NewClassDB(NewRuleDB(), NewEquivDB())

	l1 := db.Add(tc("x"))
	l2 := db.Add(tc("x"), Expandable)
	qt.Assert(t, qt.Equals(l1, l2))
	qt.Assert(t, qt.IsTrue(db.Is(l1, Expandable)))

	// A later Add with no flags never clears one already set.
	db.Add(tc("x"))
	qt.Assert(t, qt.IsTrue(db.Is(l1, Expandable)))
}

func TestClassDBGetLabelPanicsOnMiss(t *testing.T) {
	db := NewClassDB(NewRuleDB(), NewEquivDB())
	defer func() {
		r := recover()
		qt.Assert(t, qt.IsNotNil(r))
		_, ok := r.(*MisuseError)
		qt.Assert(t, qt.IsTrue(ok))
	}()
	db.GetLabel(tc("never-added"))
}

func TestClassDBIsEmptyCachesAndInsertsTerminalRule(t *testing.T) {
	ruledb := NewRuleDB()
	equivdb := NewEquivDB()
	db := NewClassDB(ruledb, equivdb)

	l := db.Add(tcEmpty("e"))
	qt.Assert(t, qt.Equals(db.EmptyState(l), EmptyUnknown))

	qt.Assert(t, qt.IsTrue(db.IsEmpty(l)))
	qt.Assert(t, qt.Equals(db.EmptyState(l), EmptyYes))
	qt.Assert(t, qt.IsTrue(db.Is(l, StrategyVerified)))
	qt.Assert(t, qt.IsTrue(ruledb.Has(l)))
	qt.Assert(t, qt.IsTrue(equivdb.IsVerified(l)))

	// The cache is monotone: a later SetEmpty(false) cannot un-empty it.
	db.SetEmpty(l, false)
	qt.Assert(t, qt.IsTrue(db.IsEmpty(l)))
}

func TestClassDBIsEmptyFalseIsCachedToo(t *testing.T) {
	db := NewClassDB(NewRuleDB(), NewEquivDB())
	l := db.Add(tc("nonempty"))
	qt.Assert(t, qt.IsFalse(db.IsEmpty(l)))
	qt.Assert(t, qt.Equals(db.EmptyState(l), EmptyNo))
}

func TestClassDBVerificationPropagatesThroughEquivdb(t *testing.T) {
	equivdb := NewEquivDB()
	db := NewClassDB(NewRuleDB(), equivdb)

	a := db.Add(tc("a"))
	b := db.Add(tc("b"))
	equivdb.Union(a, b, "same by symmetry")

	db.SetVerified(a, "base case")
	qt.Assert(t, qt.IsTrue(db.IsVerified(a)))
	qt.Assert(t, qt.IsTrue(db.IsVerified(b)))
	qt.Assert(t, qt.Equals(db.VerificationReason(a), "base case"))
}
