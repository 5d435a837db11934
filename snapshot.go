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
	digest "github.com/opencontainers/go-digest"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Snapshot is the pause/resume record described by spec §6: a
// content-addressed dump of the start class, the pack reference, and
// every owned database, plus the accumulated timers. It is the unit
// `cmd/combspec snapshot` reads and writes as YAML.
type Snapshot struct {
	RunID string `yaml:"run_id"`

	StartClass       string   `yaml:"start_class"`
	StartClassDigest string   `yaml:"start_class_digest"`
	PackName         string   `yaml:"pack"`
	Iterative        bool     `yaml:"iterative"`
	ForwardEquiv     bool     `yaml:"forward_equivalence"`
	Symmetries       []string `yaml:"symmetries"`

	StartLabel Label `yaml:"start_label"`

	Classes []SnapshotClass `yaml:"classdb"`
	Equivs  []SnapshotUnion `yaml:"equivdb"`
	Rules   []SnapshotRule  `yaml:"ruledb"`
	Queue   SnapshotQueue   `yaml:"classqueue"`

	StrategyCalls map[string]int           `yaml:"strategy_calls,omitempty"`
	StrategyTimesMS map[string]int64        `yaml:"strategy_times_ms,omitempty"`
}

// SnapshotClass is one class-database row, identified by its content
// digest rather than by label so a snapshot is stable across a process
// restart that might allocate labels in a different order.
type SnapshotClass struct {
	Digest         string `yaml:"digest"`
	Content        []byte `yaml:"content"`
	Expandable     bool   `yaml:"expandable"`
	InferralDone   bool   `yaml:"inferral_expanded"`
	InitialDone    bool   `yaml:"initial_expanded"`
	ExpansionRound int    `yaml:"expansion_round"`
	Empty          string `yaml:"empty"`
	Verified       bool   `yaml:"strategy_verified"`
	VerifyReason   string `yaml:"verification_reason,omitempty"`
}

// SnapshotUnion is one recorded equivalence-db union.
type SnapshotUnion struct {
	U           string `yaml:"u"`
	V           string `yaml:"v"`
	Explanation string `yaml:"explanation"`
}

// SnapshotRule is one rule-db hyperedge.
type SnapshotRule struct {
	Parent     string   `yaml:"parent"`
	Children   []string `yaml:"children"`
	Formal     string   `yaml:"formal_step"`
	Combinator string   `yaml:"combinator"`
}

// SnapshotQueue is the work queue's tiers, by digest.
type SnapshotQueue struct {
	Working []string `yaml:"working"`
	Current []string `yaml:"current"`
	Next    []string `yaml:"next"`
	Ignore  []string `yaml:"ignore"`
	Level   int      `yaml:"level"`
}

// NewSnapshot captures s's full state into a Snapshot, keyed by content
// digest so it can be reloaded against a possibly-different label
// numbering.
func (s *Searcher) NewSnapshot() *Snapshot {
	digestOf := func(l Label) string {
		return s.classdb.alloc.digest(l).String()
	}

	snap := &Snapshot{
		RunID:            uuid.NewString(),
		StartClass:       s.classdb.GetClass(s.startLabel).String(),
		StartClassDigest: digestOf(s.startLabel),
		PackName:         s.pack.Name,
		Iterative:        s.pack.Iterative,
		ForwardEquiv:     s.pack.ForwardEquivalence,
		StartLabel:       s.startLabel,
		StrategyCalls:    make(map[string]int),
		StrategyTimesMS:  make(map[string]int64),
	}
	for _, sym := range s.pack.Symmetries {
		snap.Symmetries = append(snap.Symmetries, sym.Name)
	}
	for _, name := range s.stats.Names() {
		snap.StrategyCalls[name] = s.stats.Calls(name)
		snap.StrategyTimesMS[name] = s.stats.Time(name).Milliseconds()
	}

	total := s.classdb.Len()
	for l := 0; l < total; l++ {
		label := Label(l)
		rec := s.classdb.records[l]
		emptyStr := "unknown"
		switch rec.empty {
		case EmptyYes:
			emptyStr = "yes"
		case EmptyNo:
			emptyStr = "no"
		}
		snap.Classes = append(snap.Classes, SnapshotClass{
			Digest:         digestOf(label),
			Content:        s.classdb.GetClass(label).Content(),
			Expandable:     rec.flags[Expandable],
			InferralDone:   rec.flags[InferralExpanded],
			InitialDone:    rec.flags[InitialExpanded],
			ExpansionRound: rec.expansionRound,
			Empty:          emptyStr,
			Verified:       rec.flags[StrategyVerified],
			VerifyReason:   rec.verifReason,
		})
	}

	for pair, info := range s.equivdb.edges {
		snap.Equivs = append(snap.Equivs, SnapshotUnion{
			U:           digestOf(pair.a),
			V:           digestOf(pair.b),
			Explanation: info.forward,
		})
	}

	s.ruledb.All(func(parent Label, children ChildTuple) bool {
		formal, _ := s.ruledb.Explanation(parent, children)
		comb, _ := s.ruledb.CombinatorOf(parent, children)
		childDigests := make([]string, len(children))
		for i, c := range children {
			childDigests[i] = digestOf(c)
		}
		snap.Rules = append(snap.Rules, SnapshotRule{
			Parent:     digestOf(parent),
			Children:   childDigests,
			Formal:     formal,
			Combinator: comb.String(),
		})
		return true
	})

	snap.Queue = SnapshotQueue{
		Working: digestTier(digestOf, s.queue.working),
		Current: digestTier(digestOf, s.queue.current),
		Next:    digestTier(digestOf, s.queue.next),
		Level:   s.queue.level,
	}
	for l := range s.queue.ignore {
		snap.Queue.Ignore = append(snap.Queue.Ignore, digestOf(l))
	}

	return snap
}

func digestTier(digestOf func(Label) string, tier []Label) []string {
	out := make([]string, len(tier))
	for i, l := range tier {
		out[i] = digestOf(l)
	}
	return out
}

// MarshalYAML encodes the snapshot using the reserved top-level keys spec
// §6 lists (start_class, pack, classdb, equivdb, classqueue, ruledb,
// start_label, ...).
func (s *Snapshot) MarshalYAML() ([]byte, error) {
	return yaml.Marshal(s)
}

// LoadSnapshot decodes a Snapshot previously produced by MarshalYAML.
// Rehydrating it into a live [Searcher] is left to the caller (it
// requires re-resolving the pack by name, which only the caller's
// strategy registry can do).
func LoadSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// ContentDigest returns the canonical digest for content, the same
// function the label allocator uses internally; exposed so a snapshot
// reader can look up a digest string without depending on labelAllocator.
func ContentDigest(content []byte) digest.Digest {
	return digest.FromBytes(content)
}
