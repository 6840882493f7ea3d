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

//go:build windows

package platform

import (
	"errors"
	"os"
	"path/filepath"
)

var (
	errAppDataNotSet     = errors.New("APPDATA environment variable not set")
	errProgramDataNotSet = errors.New("PROGRAMDATA environment variable not set")
)

// UserDataDir returns the Jupyter data directory of the current user.
func UserDataDir() (string, error) {
	if dir := os.Getenv(EnvJupyterDataDir); dir != "" {
		return dir, nil
	}
	if os.Getenv("APPDATA") == "" {
		return "", errAppDataNotSet
	}
	return filepath.Join(os.Getenv("APPDATA"), "jupyter"), nil
}

// SystemDataDir returns the Jupyter data directory shared by all users.
func SystemDataDir() (string, error) {
	if os.Getenv("PROGRAMDATA") == "" {
		return "", errProgramDataNotSet
	}
	return filepath.Join(os.Getenv("PROGRAMDATA"), "jupyter"), nil
}
