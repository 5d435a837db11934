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

// WorkQueue is the three-tier level-order work queue described in spec
// §4.4: working (drained first), current level, and next level. An
// ignore set screens out future attempts to enqueue a label that has
// already been retired from everyone else's generic scheduling.
type WorkQueue struct {
	working []Label
	current []Label
	next    []Label
	ignore  map[Label]bool
	level   int
}

// NewWorkQueue returns an empty work queue at level 0.
func NewWorkQueue() *WorkQueue {
	return &WorkQueue{ignore: make(map[Label]bool)}
}

// AddToWorking enqueues l into the working tier: an equivalence merge or a
// produced (non-initial-expansion) child lands here.
func (q *WorkQueue) AddToWorking(l Label) {
	if !q.ignore[l] {
		q.working = append(q.working, l)
	}
}

// AddToCurrent enqueues l into the current-level tier.
func (q *WorkQueue) AddToCurrent(l Label) {
	if !q.ignore[l] {
		q.current = append(q.current, l)
	}
}

// AddToNext enqueues l into the next-level tier: a freshly seen label, or
// a child of an initial-expansion rule, lands here.
func (q *WorkQueue) AddToNext(l Label) {
	if !q.ignore[l] {
		q.next = append(q.next, l)
	}
}

// Ignore adds l to the ignore set, screening it out of every future
// Add* call. Used when a label is retired by expanding_children_only
// or finishes initial expansion, so it can no longer be redundantly
// re-enqueued as some other rule's child. It does not affect a label
// already sitting in a tier: see Next.
func (q *WorkQueue) Ignore(l Label) {
	q.ignore[l] = true
}

// IsIgnored reports whether l is in the ignore set.
func (q *WorkQueue) IsIgnored(l Label) bool {
	return q.ignore[l]
}

// Level returns the current level counter: the number of times the next
// tier has been promoted to current.
func (q *WorkQueue) Level() int {
	return q.level
}

// Next dequeues the next label to process: working first, then current.
// When both are empty, next is promoted to current (advancing the level)
// and the dequeue is retried once. Returns ok=false once every tier is
// drained.
//
// The ignore set is not consulted here: it screens future Add* calls,
// not labels already sitting in a tier. A label can legitimately be
// queued and then immediately marked ignored within the same Expand
// call (the driver requeues it for its own next phase before retiring
// it from everyone else's reach, see driver.go), so it must still come
// back out of Next when its turn arrives.
func (q *WorkQueue) Next() (Label, bool) {
	for {
		if l, ok := pop(&q.working); ok {
			return l, true
		}
		if l, ok := pop(&q.current); ok {
			return l, true
		}
		if len(q.next) == 0 {
			return NoLabel, false
		}
		q.current, q.next = q.next, nil
		q.level++
	}
}

func pop(tier *[]Label) (Label, bool) {
	if len(*tier) == 0 {
		return NoLabel, false
	}
	l := (*tier)[0]
	*tier = (*tier)[1:]
	return l, true
}

// Empty reports whether every tier is empty (ignoring the ignore set has
// no effect on this, since an ignored label was never usefully queued).
func (q *WorkQueue) Empty() bool {
	return len(q.working) == 0 && len(q.current) == 0 && len(q.next) == 0
}
