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
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/odinn13/combspec"
	"github.com/odinn13/combspec/examples/binarystrings"
)

func newSearchCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "search the avoid-11 binary string class for a specification",
		RunE:  mkRunE(c, runSearch),
	}
	flags := cmd.Flags()
	flags.Int("max-len", 8, "maximum string length of the starting class")
	flags.Float64("cap", 2, "budget growth multiplier passed to AutoSearch")
	flags.Duration("max-time", 30*time.Second, "overall time budget")
	addConfigFlags(flags)
	flags.Bool("yaml", false, "write the resulting snapshot as YAML to stdout")
	return cmd
}

func runSearch(c *Command, args []string) error {
	flags := c.Flags()
	maxLen, _ := flags.GetInt("max-len")
	capMul, _ := flags.GetFloat64("cap")
	maxTime, _ := flags.GetDuration("max-time")
	configPath, _ := flags.GetString("config")
	wantYAML, _ := flags.GetBool("yaml")

	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	searcher := combspec.NewSearcher(binarystrings.New(maxLen), binarystrings.Pack(), cfg)
	tree, ok := searcher.AutoSearch(capMul, maxTime)

	w := c.OutOrStdout()
	fmt.Fprint(w, searcher.Status())
	if !ok {
		fmt.Fprintln(w, "no specification found within the time budget")
		return nil
	}
	fmt.Fprintln(w, "specification found:")
	printTreeNode(w, tree.Root, 0)

	if wantYAML {
		data, err := searcher.NewSnapshot().MarshalYAML()
		if err != nil {
			return fmt.Errorf("marshaling snapshot: %w", err)
		}
		fmt.Fprintln(w, "---")
		w.Write(data)
	}
	return nil
}

func printTreeNode(w io.Writer, n *combspec.ProofTreeNode, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%slabel %d [%s] %s\n", indent, n.Label, n.Kind, n.FormalStep)
	for _, child := range n.Children {
		printTreeNode(w, child, depth+1)
	}
}
