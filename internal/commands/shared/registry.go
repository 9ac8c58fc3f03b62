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

package shared

import (
	"os"

	"github.com/tombee/baton/pkg/registry"
)

// LoadRegistry resolves the action registry for a command run. The --registry
// flag overrides the embedded catalog; a directory loads every YAML file in
// it, a file loads just that file.
func LoadRegistry() (*registry.Registry, error) {
	path := GetRegistryPath()
	if path == "" {
		return registry.LoadDefault()
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return registry.LoadDir(path)
	}
	return registry.Load(path)
}
