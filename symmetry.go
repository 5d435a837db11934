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

// symmetryExpand maps class under every symmetry in the pack, registers
// distinct images as expanding_other_sym in the class database, and
// unions each with l in the equivalence database (spec §4.6). It is a
// no-op once l.SymmetryExpanded is set.
func (s *Searcher) symmetryExpand(l Label) {
	if len(s.pack.Symmetries) == 0 {
		return
	}
	if s.classdb.Is(l, SymmetryExpanded) {
		return
	}
	s.classdb.Mark(l, SymmetryExpanded)

	class := s.classdb.GetClass(l)
	images := make([]Label, 0, len(s.pack.Symmetries))
	reasons := make(map[Label]string, len(s.pack.Symmetries))
	for _, sym := range s.pack.Symmetries {
		img, reason := sym.Func(class)
		if img == nil {
			continue
		}
		imgLabel := s.classdb.Add(img)
		if imgLabel == l {
			continue
		}
		s.classdb.Mark(imgLabel, ExpandingOtherSym)
		images = append(images, imgLabel)
		if _, ok := reasons[imgLabel]; !ok {
			reasons[imgLabel] = reason
		}
	}
	images = dedupSortLabels(images)
	for _, img := range images {
		s.equivdb.Union(l, img, reasons[img])
	}
}
