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

//go:build unix

// Package platform provides platform-specific functionality.
package platform

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

var errHomeNotSet = errors.New("HOME environment variable not set")

// UserDataDir returns the Jupyter data directory of the current user.
func UserDataDir() (string, error) {
	if dir := os.Getenv(EnvJupyterDataDir); dir != "" {
		return dir, nil
	}
	home := os.Getenv("HOME")
	if home == "" {
		return "", errHomeNotSet
	}
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Jupyter"), nil
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "jupyter"), nil
	}
	return filepath.Join(home, ".local", "share", "jupyter"), nil
}

// SystemDataDir returns the Jupyter data directory shared by all users.
func SystemDataDir() (string, error) {
	return "/usr/local/share/jupyter", nil
}
