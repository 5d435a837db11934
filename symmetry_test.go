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

func reverseName(class Class) (Class, string) {
	c := class.(testClass)
	rev := []byte(c.name)
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return tc(string(rev)), "reversed"
}

func TestSymmetryExpandUnionsDistinctImages(t *testing.T) {
	pack := &Pack{
		Name:       "symmetry-test",
		Symmetries: []Symmetry{{Name: "reverse", Func: reverseName}},
	}
	s := NewSearcher(tc("ab"), pack, Config{})
	l := s.classdb.GetLabel(tc("ab"))

	s.symmetryExpand(l)

	img := s.classdb.GetLabel(tc("ba"))
	qt.Assert(t, qt.IsTrue(s.equivdb.Equivalent(l, img)))
	qt.Assert(t, qt.IsTrue(s.classdb.Is(img, ExpandingOtherSym)))
}

func TestSymmetryExpandIsANoOpForPalindromes(t *testing.T) {
	pack := &Pack{
		Name:       "symmetry-test",
		Symmetries: []Symmetry{{Name: "reverse", Func: reverseName}},
	}
	s := NewSearcher(tc("aba"), pack, Config{})
	l := s.classdb.GetLabel(tc("aba"))

	before := s.classdb.Len()
	s.symmetryExpand(l)
	qt.Assert(t, qt.Equals(s.classdb.Len(), before))
}

func TestSymmetryExpandIsIdempotent(t *testing.T) {
	pack := &Pack{
		Name:       "symmetry-test",
		Symmetries: []Symmetry{{Name: "reverse", Func: reverseName}},
	}
	s := NewSearcher(tc("ab"), pack, Config{})
	l := s.classdb.GetLabel(tc("ab"))

	s.symmetryExpand(l)
	after := s.classdb.Len()
	s.symmetryExpand(l)
	qt.Assert(t, qt.Equals(s.classdb.Len(), after))
}
