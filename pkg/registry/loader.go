// Copyright 2025 Tom Barlow
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

package registry

import (
	_ "embed"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/tombee/baton/pkg/errors"
)

// Embed the default action registry so the toolchain works with no
// configuration. A data file given on the command line overrides it.
//
//go:embed data/actions.yaml
var defaultData []byte

// registryFile is the YAML shape of a registry data file.
type registryFile struct {
	Actions []ActionTypeDescriptor `yaml:"actions"`
}

// Parse builds a Registry from raw YAML registry data.
func Parse(data []byte) (*Registry, error) {
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &errors.ConfigError{Reason: "invalid registry YAML", Cause: err}
	}
	if len(file.Actions) == 0 {
		return nil, &errors.ConfigError{Key: "actions", Reason: "registry data defines no actions"}
	}
	return New(file.Actions)
}

// Load reads and parses a registry data file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errors.ConfigError{Key: path, Reason: "cannot read registry file", Cause: err}
	}
	return Parse(data)
}

// LoadDefault builds a Registry from the embedded default data set.
// The embedded data is checked at build time by tests, so this never fails
// in practice; the error return keeps the contract uniform with Load.
func LoadDefault() (*Registry, error) {
	return Parse(defaultData)
}

// LoadDir loads every *.yaml file under dir (recursively) and merges them
// into one Registry. Files are merged in lexical path order so the result is
// deterministic; duplicate types across files are a ConfigError.
func LoadDir(dir string) (*Registry, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), "**/*.yaml")
	if err != nil {
		return nil, &errors.ConfigError{Key: dir, Reason: "cannot scan registry directory", Cause: err}
	}
	if len(matches) == 0 {
		return nil, &errors.NotFoundError{Resource: "registry data", ID: dir}
	}
	sort.Strings(matches)

	var all []ActionTypeDescriptor
	for _, m := range matches {
		data, err := os.ReadFile(filepath.Join(dir, m))
		if err != nil {
			return nil, &errors.ConfigError{Key: m, Reason: "cannot read registry file", Cause: err}
		}
		var file registryFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, &errors.ConfigError{Key: m, Reason: "invalid registry YAML", Cause: err}
		}
		all = append(all, file.Actions...)
	}
	return New(all)
}
