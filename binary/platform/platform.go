// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package platform

import "path/filepath"

// EnvJupyterDataDir overrides the user data directory, as it does for Jupyter itself.
const EnvJupyterDataDir = "JUPYTER_DATA_DIR"

// PrefixDataDir returns the Jupyter data directory of the Python environment
// installed at prefix.
func PrefixDataDir(prefix string) string {
	return filepath.Join(prefix, "share", "jupyter")
}

// DataDir picks the Jupyter data directory a kernel is installed to: the prefix
// one if prefix is set, else the user one if user is set, else the system one.
func DataDir(user bool, prefix string) (string, error) {
	switch {
	case prefix != "":
		return PrefixDataDir(prefix), nil
	case user:
		return UserDataDir()
	default:
		return SystemDataDir()
	}
}
