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

import "strconv"

// cleanupResult is what strategyCleanup produces from a raw StrategyObject:
// the surviving (non-empty) child labels, and a formal step that folds in
// per-child annotations the same way the Python original's
// _strategy_cleanup does (spec §4.5, supplemented in SPEC_FULL.md).
type cleanupResult struct {
	children   []Label
	formalStep string
}

// strategyCleanup performs the five post-processing steps spec §4.5
// requires on every produced StrategyObject:
//
//  1. symmetry-expand each child,
//  2. mark inferable children for working re-queue,
//  3. attempt verification on each child,
//  4. drop children that turn out empty, recording the fact,
//  5. set Expandable on workable children.
func (s *Searcher) strategyCleanup(obj StrategyObject) cleanupResult {
	children := make([]Label, 0, len(obj.Children))
	steps := make([]string, len(obj.Children))

	for i, child := range obj.Children {
		label := s.classdb.Add(child.Class)

		s.symmetryExpand(label)

		if child.Inferable {
			s.queue.AddToWorking(label)
		}

		s.tryVerify(label)

		if s.classdb.IsEmpty(label) {
			steps[i] = "Class is empty."
			continue
		}

		if child.Workable {
			s.classdb.Mark(label, Expandable)
			s.queue.AddToWorking(label)
		}

		children = append(children, label)
		steps[i] = ""
	}

	var b []byte
	b = append(b, '~')
	for i, step := range steps {
		b = append(b, '[')
		b = strconv.AppendInt(b, int64(i), 10)
		b = append(b, ':', ' ')
		b = append(b, step...)
		b = append(b, ']')
	}
	b = append(b, '~')

	return cleanupResult{children: children, formalStep: obj.FormalStep + string(b)}
}
