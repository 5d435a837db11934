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

import digest "github.com/opencontainers/go-digest"

// labelAllocator interns combinatorial classes into dense, never-recycled
// [Label] values.
//
// Classes are opaque and potentially large, so rather than using them
// directly as map keys (which would pin the whole class value as a hash
// key and make the storage layer dependent on Class's equality semantics
// matching Go's ==), the allocator keys on the content digest from
// [Class.Content]. This is the same design CUE uses for its own
// de-duplication tables: prefer an interning table keyed by a stable hash
// over storing the object itself as a key (see
// internal/core/runtime's StringIndexer pattern for labels/features).
//
// The content digest doubles as the content-address used by the snapshot
// format (spec §6), which is the second reason to compute it eagerly
// rather than falling back to a Go map over an interface value.
type labelAllocator struct {
	byDigest map[digest.Digest]Label
	classes  []Class
	digests  []digest.Digest
}

func newLabelAllocator() *labelAllocator {
	return &labelAllocator{
		byDigest: make(map[digest.Digest]Label),
	}
}

// intern returns the label for c, allocating a fresh one if c has not been
// seen before. The second return value reports whether the label is new.
func (a *labelAllocator) intern(c Class) (Label, bool) {
	d := digest.FromBytes(c.Content())
	if l, ok := a.byDigest[d]; ok {
		return l, false
	}
	l := Label(len(a.classes))
	a.byDigest[d] = l
	a.classes = append(a.classes, c)
	a.digests = append(a.digests, d)
	return l, true
}

// lookup returns the label for c without allocating, and false if c is
// not registered.
func (a *labelAllocator) lookup(c Class) (Label, bool) {
	d := digest.FromBytes(c.Content())
	l, ok := a.byDigest[d]
	return l, ok
}

func (a *labelAllocator) class(l Label) Class {
	if l < 0 || int(l) >= len(a.classes) {
		return nil
	}
	return a.classes[l]
}

func (a *labelAllocator) digest(l Label) digest.Digest {
	return a.digests[l]
}

func (a *labelAllocator) len() int {
	return len(a.classes)
}
