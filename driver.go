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
	"time"
)

// Searcher orchestrates the whole search: it owns the class, equivalence
// and rule databases and the work queue, and drives them through the
// inferral / initial / expansion phases of spec §4.5.
//
// Searcher is not safe for concurrent use (spec §5): everything here is
// mutated by a single caller.
type Searcher struct {
	classdb *ClassDB
	equivdb *EquivDB
	ruledb  *RuleDB
	queue   *WorkQueue

	pack   *Pack
	config Config
	stats  *Stats

	startLabel Label
	start      time.Time
	timeTaken  time.Duration
}

// NewSearcher constructs a Searcher for startClass using pack, panicking
// with a [MisuseError] if either is nil (spec §7: a missing start class or
// pack is a programmer error, not a recoverable condition).
func NewSearcher(startClass Class, pack *Pack, config Config) *Searcher {
	if startClass == nil {
		panic(&MisuseError{Op: "NewSearcher", Msg: "start class is required"})
	}
	if pack == nil {
		panic(&MisuseError{Op: "NewSearcher", Msg: "strategy pack is required"})
	}

	ruledb := NewRuleDB()
	equivdb := NewEquivDB()
	classdb := NewClassDB(ruledb, equivdb)
	queue := NewWorkQueue()

	s := &Searcher{
		classdb: classdb,
		equivdb: equivdb,
		ruledb:  ruledb,
		queue:   queue,
		pack:    pack,
		config:  config,
		stats:   newStats(),
	}

	s.startLabel = classdb.Add(startClass, Expandable)
	queue.AddToWorking(s.startLabel)
	return s
}

// ClassDB, EquivDB, RuleDB, Queue expose the owned subsystems for callers
// that need direct access (e.g. a tree searcher run outside AutoSearch).
func (s *Searcher) ClassDB() *ClassDB   { return s.classdb }
func (s *Searcher) EquivDB() *EquivDB   { return s.equivdb }
func (s *Searcher) RuleDB() *RuleDB     { return s.ruledb }
func (s *Searcher) Queue() *WorkQueue   { return s.queue }
func (s *Searcher) StartLabel() Label   { return s.startLabel }
func (s *Searcher) Stats() *Stats       { return s.stats }
func (s *Searcher) Pack() *Pack         { return s.pack }

// tryVerify retries the pack's verification strategies against label's
// class, unless its equivalence set is already verified. The first
// strategy that returns a non-empty result wins; label (and its whole
// equivalence set) becomes verified with that strategy's formal step.
func (s *Searcher) tryVerify(label Label) {
	if s.equivdb.IsVerified(label) {
		return
	}
	class := s.classdb.GetClass(label)
	for _, strat := range s.pack.VerificationStrategies {
		objs := timeCall(s.stats, strat.Name, func() []StrategyObject {
			objs, err := strat.Func(class)
			if err != nil {
				s.config.reporter().Report(&Warning{Op: strat.Name, Msg: err.Error()})
				return nil
			}
			return objs
		})
		if len(objs) == 0 {
			continue
		}
		formal := objs[0].FormalStep
		s.classdb.SetVerified(label, formal)
		return
	}
}

// IsExpanded reports whether label has exhausted every round of expansion
// strategies in the pack.
func (s *Searcher) IsExpanded(label Label) bool {
	return s.classdb.ExpansionRound(label) >= s.pack.NumRounds()
}

// Expand performs exactly one phase for label: inferral if it hasn't run
// yet, else initial expansion if that hasn't run yet, else the next
// expansion round. A label cycles back through the work queue as long as
// it remains expandable and unretired (spec §4.5).
func (s *Searcher) Expand(label Label) {
	class := s.classdb.GetClass(label)

	switch {
	case !s.classdb.Is(label, InferralExpanded):
		s.config.logf("inferring label %d", label)
		s.inferralExpand(class, label, nil, -1)
		s.queue.AddToWorking(label)

	case !s.classdb.Is(label, InitialExpanded):
		s.config.logf("initial expanding label %d", label)
		s.initialExpand(class, label)
		s.classdb.Mark(label, InitialExpanded)
		s.queue.AddToNext(label)
		// Screens out any later re-enqueue of label as some other rule's
		// child (spec §4.4); queued above first so this label's own next
		// expansion round still runs, mirroring the original's
		// classqueue.ignore.add(label) at the end of _initial_expand.
		s.queue.Ignore(label)

	default:
		round := s.classdb.ExpansionRound(label)
		s.config.logf("expanding label %d (round %d)", label, round)
		for _, strat := range s.pack.ExpansionStrategies[round] {
			s.expandWithStrategy(class, strat, label, false, false)
		}
		if !s.IsExpanded(label) {
			s.classdb.IncrementExpansionRound(label)
			s.stats.expansionRounds++
			if !s.IsExpanded(label) {
				s.queue.AddToCurrent(label)
			}
		}
	}
}

// expandWithStrategy applies one strategy function to class/label and
// routes whatever it produces into the equivalence or rule database.
// initial controls where produced children are queued (next vs working,
// spec §4.4); inferral restricts the strategy to single-child results and
// reports (rather than queues) its outcome so inferralExpand can chain.
func (s *Searcher) expandWithStrategy(class Class, strat NamedStrategy, label Label, initial, inferral bool) (inferredLabel Label, inferred bool) {
	objs, err := timeCallErr(s.stats, strat.Name, func() ([]StrategyObject, error) {
		return strat.Func(class)
	})
	if err != nil {
		s.config.reporter().Report(&Warning{Op: strat.Name, Msg: err.Error()})
		return NoLabel, false
	}

	for _, obj := range objs {
		if inferral && len(obj.Children) != 1 {
			panic(&MisuseError{Op: strat.Name, Msg: "inferral strategy returned a non-single-child rule"})
		}
		if inferral && classEqual(class, obj.Children[0].Class) {
			s.config.reporter().Report(&Warning{
				Op:  strat.Name,
				Msg: fmt.Sprintf("inferral strategy returned the same class it was given for %s", class),
			})
			continue
		}

		cleaned := s.strategyCleanup(obj)

		if obj.IgnoreParent {
			allExpandable := true
			for _, c := range cleaned.children {
				if !s.classdb.Is(c, Expandable) {
					allExpandable = false
					break
				}
			}
			if allExpandable {
				s.classdb.Mark(label, ExpandingChildrenOnly)
				s.queue.Ignore(label)
			}
		}

		switch {
		case len(cleaned.children) == 0:
			s.addEmptyRule(label)
			return NoLabel, false

		case inferral:
			s.addEquivalentRule(label, cleaned.children[0], cleaned.formalStep, true, initial)
			return cleaned.children[0], true

		case !s.pack.ForwardEquivalence && len(cleaned.children) == 1:
			s.addEquivalentRule(label, cleaned.children[0], cleaned.formalStep, false, initial)

		default:
			s.addRule(label, cleaned.children, cleaned.formalStep, obj.Combinator, initial)
		}
	}
	return NoLabel, false
}

func (s *Searcher) addEquivalentRule(parent, child Label, formal string, inferral, initial bool) {
	if s.config.Sanity {
		s.sanityCheckRule(parent, []Label{child}, "equiv", formal)
	}
	s.equivdb.Union(parent, child, formal)
	if inferral || !initial {
		s.queue.AddToWorking(child)
	} else {
		s.queue.AddToNext(child)
	}
}

func (s *Searcher) addRule(parent Label, children []Label, formal string, c Combinator, initial bool) {
	if s.config.Sanity {
		s.sanityCheckRule(parent, children, c.String(), formal)
	}
	s.ruledb.Add(parent, children, formal, c)
	for _, child := range children {
		if initial {
			s.queue.AddToNext(child)
		} else {
			s.queue.AddToWorking(child)
		}
	}
}

func (s *Searcher) addEmptyRule(label Label) {
	s.classdb.SetEmpty(label, true)
}

// inferralExpand applies inferral strategies to class/label in a rotating
// order until none of them fires (spec §4.5): every time one fires, the
// replacement class becomes the new subject and the order is rotated to
// start just after that strategy, which is skipped for the replacement
// class so it cannot re-fire on its own output.
func (s *Searcher) inferralExpand(class Class, label Label, strategies []NamedStrategy, skip int) {
	if s.classdb.Is(label, InferralExpanded) {
		return
	}
	if strategies == nil {
		strategies = s.pack.InferralStrategies
	}
	for i, strat := range strategies {
		if i == skip {
			continue
		}
		infLabel, fired := s.expandWithStrategy(class, strat, label, false, true)
		if fired {
			s.classdb.Mark(label, InferralExpanded)
			rotated := append(append([]NamedStrategy{}, strategies[i+1:]...), strategies[:i+1]...)
			s.inferralExpand(s.classdb.GetClass(infLabel), infLabel, rotated, len(rotated)-1)
			return
		}
	}
	s.classdb.Mark(label, InferralExpanded)
}

func (s *Searcher) initialExpand(class Class, label Label) {
	for _, strat := range s.pack.InitialStrategies {
		s.expandWithStrategy(class, strat, label, true, false)
		if s.classdb.Is(label, ExpandingOtherSym) || s.classdb.Is(label, ExpandingChildrenOnly) {
			return
		}
	}
}

// eligible reports whether label should actually be handed to Expand: it
// screens out labels that are already fully expanded, verified, empty,
// non-expandable, or retired, mirroring do_level/expand_classes's guard
// chain in the Python original.
func (s *Searcher) eligible(label Label) bool {
	if s.IsExpanded(label) || s.equivdb.IsVerified(label) {
		return false
	}
	if s.classdb.IsEmpty(label) {
		return false
	}
	if !s.classdb.Is(label, Expandable) {
		return false
	}
	if s.classdb.Is(label, ExpandingOtherSym) || s.classdb.Is(label, ExpandingChildrenOnly) {
		return false
	}
	return true
}

// ExpandClasses feeds up to total eligible labels through Expand. It
// returns true if the queue ran dry before total classes were processed
// (spec §5: "expand_classes(N) is a bounded budget form that guarantees
// progress of at most N labels").
func (s *Searcher) ExpandClasses(total int) bool {
	count := 0
	for count < total {
		label, ok := s.queue.Next()
		if !ok {
			return true
		}
		if !s.eligible(label) {
			continue
		}
		count++
		s.Expand(label)
	}
	return false
}

// DoLevel expands every eligible label currently in the working/current
// tiers, returning true if the queue emptied before the level completed.
func (s *Searcher) DoLevel() bool {
	level := s.queue.Level()
	for s.queue.Level() == level {
		label, ok := s.queue.Next()
		if !ok {
			return true
		}
		if s.queue.Level() != level {
			// Next() may have advanced the level while producing this
			// label (it was the last one in `current`, promoting
			// `next`); push it back onto the freshly-promoted current
			// tier instead of silently dropping it below.
			s.queue.AddToCurrent(label)
			return false
		}
		if !s.eligible(label) {
			continue
		}
		s.Expand(label)
	}
	return false
}

// Status returns a short human-readable progress report, matching the
// spirit of the Python original's status() (spec-supplemented feature,
// see SPEC_FULL.md).
func (s *Searcher) Status() string {
	total := s.classdb.Len()
	var expandable, verified, stratVerified, empty int
	seen := make(map[Label]bool)
	var equivSets int
	for l := Label(0); int(l) < total; l++ {
		if s.classdb.Is(l, Expandable) {
			expandable++
		}
		if s.equivdb.IsVerified(l) {
			verified++
		}
		if s.classdb.Is(l, StrategyVerified) {
			stratVerified++
		}
		if s.classdb.EmptyState(l) == EmptyYes {
			empty++
		}
		rep := s.equivdb.Representative(l)
		if !seen[rep] {
			seen[rep] = true
			equivSets++
		}
	}
	return fmt.Sprintf(
		"level %d, time taken %s\n"+
			"classes: %d total, %d expandable, %d equivalence sets\n"+
			"verified: %d (equivalence), %d (strategy), %d empty\n",
		s.queue.Level(), s.timeTaken, total, expandable, equivSets,
		verified, stratVerified, empty)
}

// AutoSearch repeatedly expands classes for a growing time budget, then
// attempts [Searcher.FindTree], per spec §4.8: on failure the budget is
// multiplied by cap (capped at one hour) and the loop repeats. It
// terminates on success, once maxTime elapses (zero means unbounded), or
// once the work queue empties with no specification found -- none of
// these are errors (spec §7 "unresolvable search ... not an error").
func (s *Searcher) AutoSearch(cap float64, maxTime time.Duration) (*ProofTree, bool) {
	if cap <= 1 {
		cap = 2
	}
	s.start = time.Now()
	budget := time.Second

	for {
		elapsed := time.Since(s.start)
		if maxTime > 0 && elapsed >= maxTime {
			s.timeTaken = elapsed
			return nil, false
		}

		round := budget
		if maxTime > 0 && elapsed+round > maxTime {
			round = maxTime - elapsed
		}

		deadline := time.Now().Add(round)
		for time.Now().Before(deadline) {
			if s.ExpandClasses(1) {
				break
			}
		}

		s.timeTaken = time.Since(s.start)
		if tree, ok := s.FindTree(); ok {
			return tree, true
		}
		if s.queue.Empty() {
			return nil, false
		}
		budget = time.Duration(float64(budget) * cap)
		if budget > time.Hour {
			budget = time.Hour
		}
	}
}

func classEqual(a, b Class) bool {
	ca, cb := a.Content(), b.Content()
	if len(ca) != len(cb) {
		return false
	}
	for i := range ca {
		if ca[i] != cb[i] {
			return false
		}
	}
	return true
}

func timeCallErr[T any](s *Stats, name string, f func() (T, error)) (T, error) {
	start := time.Now()
	res, err := f()
	s.record(name, time.Since(start))
	return res, err
}
