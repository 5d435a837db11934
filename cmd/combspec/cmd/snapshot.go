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

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/odinn13/combspec"
)

func newSnapshotCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot <file>",
		Short: "inspect a search snapshot file",
		Args:  cobra.ExactArgs(1),
		RunE:  mkRunE(c, runSnapshot),
	}
	return cmd
}

func runSnapshot(c *Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	snap, err := combspec.LoadSnapshot(data)
	if err != nil {
		return fmt.Errorf("decoding snapshot: %w", err)
	}

	w := c.OutOrStdout()
	fmt.Fprintf(w, "run %s\n", snap.RunID)
	fmt.Fprintf(w, "pack %s (iterative=%v forward_equivalence=%v)\n", snap.PackName, snap.Iterative, snap.ForwardEquiv)
	fmt.Fprintf(w, "start class: %s\n", snap.StartClass)
	fmt.Fprintf(w, "classes: %d, equivalences: %d, rules: %d\n", len(snap.Classes), len(snap.Equivs), len(snap.Rules))
	fmt.Fprintf(w, "queue: %d working, %d current, %d next, %d ignored, level %d\n",
		len(snap.Queue.Working), len(snap.Queue.Current), len(snap.Queue.Next), len(snap.Queue.Ignore), snap.Queue.Level)
	return nil
}
