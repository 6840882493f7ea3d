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

// Package stats contains interfaces and utilities relating to the collection of
// events and statistics from uvk commands.
package stats

import "time"

// Collector is a component which is notified when certain events occur. It can be implemented
// with different backends, e.g. to surface parse warnings in a notebook or to record metrics.
type Collector interface {
	// AfterScriptMetadataParsed is called once per parsed script metadata block,
	// whether parsing succeeded or not.
	AfterScriptMetadataParsed(parsestats *ScriptMetadataStats)

	// AfterWarning is called for every non-fatal condition detected while
	// interpreting user input. Warnings never change control flow.
	AfterWarning(warning *Warning)

	// AfterPythonChecked is called after an interpreter version was tested
	// against a constraint.
	AfterPythonChecked(constraint, version string, err error)

	// AfterInstall is called after the package installer ran.
	AfterInstall(installstats *InstallStats)
}

// NoopCollector implements Collector by doing nothing.
type NoopCollector struct{}

// AfterScriptMetadataParsed implements Collector by doing nothing.
func (c NoopCollector) AfterScriptMetadataParsed(parsestats *ScriptMetadataStats) {}

// AfterWarning implements Collector by doing nothing.
func (c NoopCollector) AfterWarning(warning *Warning) {}

// AfterPythonChecked implements Collector by doing nothing.
func (c NoopCollector) AfterPythonChecked(constraint, version string, err error) {}

// AfterInstall implements Collector by doing nothing.
func (c NoopCollector) AfterInstall(installstats *InstallStats) {}

// InstallStats is a struct containing stats about a package installer run.
type InstallStats struct {
	Requirements []string
	Runtime      time.Duration
	Error        error
}
