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
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/odinn13/combspec"
)

// fileConfig is the on-disk shape of a combspec config file, loaded with
// gopkg.in/yaml.v3 the way the teacher's own encoding/yaml support does.
type fileConfig struct {
	Sanity       bool `yaml:"sanity"`
	LogExpand    bool `yaml:"log_expand"`
	SanityLength int  `yaml:"sanity_length"`
}

// addConfigFlags registers the config-file flag on f, the way the
// teacher's addOutFlags/addGlobalFlags take a *pflag.FlagSet directly
// instead of going through cobra's string-typed Flags() wrapper.
func addConfigFlags(f *pflag.FlagSet) {
	f.String("config", "", "path to a YAML config file")
}

func loadConfig(path string) (combspec.Config, error) {
	cfg := combspec.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, err
	}
	cfg.Sanity = fc.Sanity
	cfg.LogExpand = fc.LogExpand
	cfg.SanityLength = fc.SanityLength
	return cfg, nil
}
