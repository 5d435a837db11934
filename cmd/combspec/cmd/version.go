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
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

func newVersionCmd(c *Command) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print combspec version",
		RunE:  mkRunE(c, runVersion),
	}
}

// version can be set at build time via ldflags.
var version string

func runVersion(c *Command, args []string) error {
	w := c.OutOrStdout()
	v := version
	if v == "" {
		if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
			v = bi.Main.Version
		} else {
			v = "(devel)"
		}
	}
	fmt.Fprintf(w, "combspec version %s\n", v)
	fmt.Fprintf(w, "go version %s\n", runtime.Version())
	return nil
}
