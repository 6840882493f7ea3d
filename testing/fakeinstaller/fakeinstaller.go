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

// Package fakeinstaller provides an installer.Installer that records what it was
// asked to install.
package fakeinstaller

import (
	"context"
	"sync"
)

// Installer implements installer.Installer without touching any environment.
type Installer struct {
	// Err is returned by every call to Install.
	Err error

	mu       sync.Mutex
	installs [][]string
}

// Install records reqs and returns Err.
func (i *Installer) Install(ctx context.Context, reqs []string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.installs = append(i.installs, append([]string(nil), reqs...))
	return i.Err
}

// Installs returns the requirement lists of every call, in order.
func (i *Installer) Installs() [][]string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([][]string(nil), i.installs...)
}
