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

// Flag names a boolean piece of per-label metadata kept by [ClassDB].
type Flag int

const (
	// Expandable marks a class as eligible for expansion strategies.
	Expandable Flag = iota
	// InferralExpanded is a one-shot flag: inferral strategies have
	// already been run to a fixed point for this label.
	InferralExpanded
	// InitialExpanded is a one-shot flag: the initial strategies have
	// already been tried once for this label.
	InitialExpanded
	// SymmetryExpanded marks that symmetries of this class have already
	// been enrolled in the class and equivalence databases.
	SymmetryExpanded
	// ExpandingOtherSym marks a class as the symmetric image of another;
	// it should not itself be targeted for expansion.
	ExpandingOtherSym
	// ExpandingChildrenOnly marks a class retired by an ignore_parent
	// strategy whose children are all themselves expandable.
	ExpandingChildrenOnly
	// StrategyVerified marks that a verification strategy succeeded for
	// this label (or its equivalence set).
	StrategyVerified

	numFlags
)

// EmptyState is the tri-state result of a class's emptiness query.
type EmptyState int

const (
	// EmptyUnknown means IsEmpty has not yet been queried for this label.
	EmptyUnknown EmptyState = iota
	// EmptyYes means the class was found to contain no objects.
	EmptyYes
	// EmptyNo means the class was found to contain at least one object.
	EmptyNo
)

// emptyRuleFormalStep is the formal step recorded when a class is found
// empty and a terminal rule is inserted for it.
const emptyRuleFormalStep = "Contains no avoiding objects."

type classRecord struct {
	flags          [numFlags]bool
	expansionRound int
	empty          EmptyState
	verifReason    string
}

// ClassDB stores, per label, the metadata described in spec §3: expansion
// flags, verification state and reason, and emptiness.
//
// It owns the label allocator (spec groups "label allocator" and "class
// database" together in §4.1: the allocator's only job is to hand out
// labels, and nothing outside the class database needs one directly) and
// holds references to the rule and equivalence databases so that a
// freshly-discovered emptiness fact can immediately become a terminal rule
// and a verified equivalence set, exactly as spec §4.1 describes.
type ClassDB struct {
	alloc   *labelAllocator
	records []classRecord
	ruledb  *RuleDB
	equivdb *EquivDB
}

// NewClassDB returns an empty class database wired to ruledb and equivdb,
// both of which must outlive it.
func NewClassDB(ruledb *RuleDB, equivdb *EquivDB) *ClassDB {
	return &ClassDB{
		alloc:   newLabelAllocator(),
		ruledb:  ruledb,
		equivdb: equivdb,
	}
}

// Add returns the label for class, allocating a fresh one if needed. If
// the class already exists, only monotone flag upgrades are applied: a
// flag passed here is OR-ed onto the existing record, never cleared.
func (db *ClassDB) Add(class Class, flags ...Flag) Label {
	l, isNew := db.alloc.intern(class)
	if isNew {
		db.records = append(db.records, classRecord{empty: EmptyUnknown})
	}
	for _, f := range flags {
		db.records[l].flags[f] = true
	}
	return l
}

// GetLabel returns the label of an already-registered class. It panics if
// the class was never added: per spec §4.1 the driver always calls Add
// before GetLabel, so a lookup miss here is a MisuseError-class bug, not
// recoverable driver state.
func (db *ClassDB) GetLabel(class Class) Label {
	l, ok := db.alloc.lookup(class)
	if !ok {
		panic(&MisuseError{Op: "ClassDB.GetLabel", Msg: "class was never added"})
	}
	return l
}

// GetClass returns the class registered under label l.
func (db *ClassDB) GetClass(l Label) Class {
	return db.alloc.class(l)
}

// Len returns the number of distinct classes registered.
func (db *ClassDB) Len() int {
	return db.alloc.len()
}

// Mark sets flag for label l.
func (db *ClassDB) Mark(l Label, flag Flag) {
	db.records[l].flags[flag] = true
}

// Is reports whether flag is set for label l.
func (db *ClassDB) Is(l Label, flag Flag) bool {
	return db.records[l].flags[flag]
}

// ExpansionRound returns how many rounds of expansion strategies have
// been applied to l.
func (db *ClassDB) ExpansionRound(l Label) int {
	return db.records[l].expansionRound
}

// IncrementExpansionRound advances l's expansion round counter by one and
// returns the new value.
func (db *ClassDB) IncrementExpansionRound(l Label) int {
	db.records[l].expansionRound++
	return db.records[l].expansionRound
}

// EmptyState returns the cached tri-state emptiness of l, without forcing
// a computation. Use [ClassDB.IsEmpty] to force the lazy computation.
func (db *ClassDB) EmptyState(l Label) EmptyState {
	return db.records[l].empty
}

// IsEmpty returns whether l's class is empty, computing and caching the
// result (and, if empty, inserting a terminal rule and verifying l's
// equivalence set) the first time it is asked. The cache is monotone:
// once set it is never recomputed (spec §8 property 8).
func (db *ClassDB) IsEmpty(l Label) bool {
	rec := &db.records[l]
	if rec.empty == EmptyUnknown {
		if db.alloc.class(l).IsEmpty() {
			db.setEmptyLocked(l, true)
		} else {
			rec.empty = EmptyNo
		}
	}
	return rec.empty == EmptyYes
}

// SetEmpty records whether l's class is empty. Once set to true, the flag
// is immutable: subsequent calls are no-ops for an already-empty label.
// Setting true also marks l strategy-verified with the reason "Contains
// no avoiding objects." and inserts the terminal rule l -> () into the
// rule database, and verifies l's whole equivalence set, so the tree
// searcher treats l as a leaf.
func (db *ClassDB) SetEmpty(l Label, empty bool) {
	if db.records[l].empty == EmptyYes {
		return
	}
	if !empty {
		db.records[l].empty = EmptyNo
		return
	}
	db.setEmptyLocked(l, true)
}

func (db *ClassDB) setEmptyLocked(l Label, empty bool) {
	if !empty {
		db.records[l].empty = EmptyNo
		return
	}
	db.records[l].empty = EmptyYes
	db.records[l].flags[StrategyVerified] = true
	db.records[l].verifReason = emptyRuleFormalStep
	if db.ruledb != nil && !db.ruledb.Has(l) {
		db.ruledb.Add(l, nil, emptyRuleFormalStep, DISJOINT)
	}
	if db.equivdb != nil {
		db.equivdb.UpdateVerified(l)
	}
}

// SetVerified marks l strategy-verified with the given reason, and
// verifies its whole equivalence set.
func (db *ClassDB) SetVerified(l Label, reason string) {
	db.records[l].flags[StrategyVerified] = true
	db.records[l].verifReason = reason
	if db.equivdb != nil {
		db.equivdb.UpdateVerified(l)
	}
}

// VerificationReason returns the formal step recorded by SetVerified or
// SetEmpty, if any.
func (db *ClassDB) VerificationReason(l Label) string {
	return db.records[l].verifReason
}

// IsVerified reports whether l's equivalence set has been verified,
// consulting the equivalence database when available (verification
// propagates along equivalence, spec §4.2).
func (db *ClassDB) IsVerified(l Label) bool {
	if db.records[l].flags[StrategyVerified] {
		return true
	}
	if db.equivdb != nil {
		return db.equivdb.IsVerified(l)
	}
	return false
}
