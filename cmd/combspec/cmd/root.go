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

// Package cmd implements the combspec command-line tool, structured the
// way cmd/cue/cmd structures the cue tool: a thin cobra.Command wrapper
// plus one file per subcommand.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Command wraps the root cobra command the way cmd/cue/cmd's Command
// does, so subcommand RunE functions get a stable type to hang shared
// state off without leaking cobra details into every subcommand.
type Command struct {
	*cobra.Command
}

type runFunction func(c *Command, args []string) error

func mkRunE(c *Command, f runFunction) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c.Command = cmd
		return f(c, args)
	}
}

// New builds the top-level combspec command.
func New(args []string) *Command {
	root := &cobra.Command{
		Use:           "combspec",
		Short:         "search for combinatorial specifications",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	c := &Command{Command: root}

	root.AddCommand(
		newSearchCmd(c),
		newSnapshotCmd(c),
		newVersionCmd(c),
	)
	root.SetArgs(args)
	return c
}

// Main runs combspec with os.Args and returns the process exit code.
func Main() int {
	c := New(os.Args[1:])
	if err := c.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
