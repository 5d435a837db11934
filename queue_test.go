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

func TestWorkQueueDrainsWorkingBeforeCurrent(t *testing.T) {
	q := NewWorkQueue()
	q.AddToCurrent(1)
	q.AddToWorking(2)

	l, ok := q.Next()
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(l, Label(2)))

	l, ok = q.Next()
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(l, Label(1)))
}

func TestWorkQueuePromotesNextAndAdvancesLevel(t *testing.T) {
	q := NewWorkQueue()
	q.AddToNext(1)
	qt.Assert(t, qt.Equals(q.Level(), 0))

	l, ok := q.Next()
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(l, Label(1)))
	qt.Assert(t, qt.Equals(q.Level(), 1))
}

func TestWorkQueueNextReturnsFalseWhenDrained(t *testing.T) {
	q := NewWorkQueue()
	_, ok := q.Next()
	qt.Assert(t, qt.IsFalse(ok))
	qt.Assert(t, qt.IsTrue(q.Empty()))
}

func TestWorkQueueIgnoreScreensOutLabel(t *testing.T) {
	q := NewWorkQueue()
	q.Ignore(1)
	q.AddToWorking(1)
	q.AddToWorking(2)

	l, ok := q.Next()
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(l, Label(2)))

	_, ok = q.Next()
	qt.Assert(t, qt.IsFalse(ok))
}

// TestWorkQueueIgnoreDoesNotRecallAlreadyQueuedLabel confirms the ignore
// set only screens future Add* calls: a label queued before it is
// marked ignored is still returned by Next, since it may have been
// requeued for its own next phase right before being retired from
// everyone else's reach (see driver.go's Expand).
func TestWorkQueueIgnoreDoesNotRecallAlreadyQueuedLabel(t *testing.T) {
	q := NewWorkQueue()
	q.AddToNext(1)
	q.Ignore(1)

	l, ok := q.Next()
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(l, Label(1)))

	// A later attempt to redundantly re-enqueue the same, now-ignored
	// label is screened out.
	q.AddToWorking(1)
	_, ok = q.Next()
	qt.Assert(t, qt.IsFalse(ok))
}
