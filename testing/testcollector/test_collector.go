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

// Package testcollector provides an implementation of stats.Collector that
// stores recorded events for verification in tests.
package testcollector

import (
	"sync"

	"github.com/google/uvk/stats"
)

// PythonCheck is a recorded call to AfterPythonChecked.
type PythonCheck struct {
	Constraint string
	Version    string
	Err        error
}

// Collector implements the stats.Collector interface and simply stores events
// in the order they were received.
type Collector struct {
	mu           sync.Mutex
	parses       []*stats.ScriptMetadataStats
	warnings     []*stats.Warning
	pythonChecks []PythonCheck
	installs     []*stats.InstallStats
}

// New returns a new test Collector.
func New() *Collector {
	return &Collector{}
}

// AfterScriptMetadataParsed stores the stats of a parsed block.
func (c *Collector) AfterScriptMetadataParsed(parsestats *stats.ScriptMetadataStats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.parses = append(c.parses, parsestats)
}

// AfterWarning stores a warning.
func (c *Collector) AfterWarning(warning *stats.Warning) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warnings = append(c.warnings, warning)
}

// AfterPythonChecked stores the outcome of a version check.
func (c *Collector) AfterPythonChecked(constraint, version string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pythonChecks = append(c.pythonChecks, PythonCheck{Constraint: constraint, Version: version, Err: err})
}

// AfterInstall stores the stats of an installer run.
func (c *Collector) AfterInstall(installstats *stats.InstallStats) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.installs = append(c.installs, installstats)
}

// Parses returns the stats of every parsed block.
func (c *Collector) Parses() []*stats.ScriptMetadataStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*stats.ScriptMetadataStats(nil), c.parses...)
}

// LastParseResult returns the result of the last parsed block, or an empty
// string if nothing was parsed.
func (c *Collector) LastParseResult() stats.ScriptMetadataResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.parses) == 0 {
		return ""
	}
	return c.parses[len(c.parses)-1].Result
}

// Warnings returns every recorded warning.
func (c *Collector) Warnings() []*stats.Warning {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*stats.Warning(nil), c.warnings...)
}

// PythonChecks returns every recorded version check.
func (c *Collector) PythonChecks() []PythonCheck {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]PythonCheck(nil), c.pythonChecks...)
}

// Installs returns the stats of every installer run.
func (c *Collector) Installs() []*stats.InstallStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*stats.InstallStats(nil), c.installs...)
}
