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

// Package combspec implements the core of a combinatorial specification
// searcher: a generic engine that, given a starting combinatorial class and
// a pack of decomposition strategies, iteratively discovers a finite system
// of recursive rules whose solution enumerates the class.
//
// The engine treats combinatorial classes as opaque values implementing
// [Class]. It knows nothing about their internal structure; all structural
// reasoning is delegated to the [Strategy] functions supplied in a [Pack].
//
// The package is organised around four tightly coupled subsystems that
// mirror the way CUE's evaluator (internal/core/adt) keeps its
// conceptually-separate-but-interdependent pieces in one package:
// label interning and the class database (label.go, classdb.go), the
// union-find-with-explanations equivalence database (equivdb.go), the rule
// hypergraph (ruledb.go), and the search driver with its work queue and
// tree extraction (queue.go, driver.go, cleanup.go, treesearch.go).
package combspec
