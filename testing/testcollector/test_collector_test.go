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

package testcollector_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uvk/stats"
	"github.com/google/uvk/testing/testcollector"
)

func TestCollector(t *testing.T) {
	tests := []struct {
		name     string
		parses   []*stats.ScriptMetadataStats
		warnings []*stats.Warning
		want     stats.ScriptMetadataResult
	}{
		{
			name: "nothing recorded",
			want: "",
		},
		{
			name: "single parse",
			parses: []*stats.ScriptMetadataStats{
				{Result: stats.ScriptMetadataResultOK, Lines: 3, DocumentLines: 1},
			},
			want: stats.ScriptMetadataResultOK,
		},
		{
			name: "last parse wins",
			parses: []*stats.ScriptMetadataStats{
				{Result: stats.ScriptMetadataResultOK, Lines: 3, DocumentLines: 1},
				{Result: stats.ScriptMetadataResultNoEndLine, Lines: 2},
			},
			warnings: []*stats.Warning{
				{Kind: stats.WarningTrailingLines, Message: "trailing", Line: 4},
			},
			want: stats.ScriptMetadataResultNoEndLine,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collector := testcollector.New()
			for _, p := range tt.parses {
				collector.AfterScriptMetadataParsed(p)
			}
			for _, w := range tt.warnings {
				collector.AfterWarning(w)
			}

			if got := collector.LastParseResult(); got != tt.want {
				t.Errorf("LastParseResult() = %v, want %v", got, tt.want)
			}
			if diff := cmp.Diff(tt.parses, collector.Parses()); diff != "" {
				t.Errorf("Parses() returned unexpected diff (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.warnings, collector.Warnings()); diff != "" {
				t.Errorf("Warnings() returned unexpected diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCollectorInstallsAndChecks(t *testing.T) {
	collector := testcollector.New()
	collector.AfterPythonChecked(">=3.10", "3.12.1", nil)
	collector.AfterInstall(&stats.InstallStats{Requirements: []string{"numpy"}})

	wantChecks := []testcollector.PythonCheck{{Constraint: ">=3.10", Version: "3.12.1"}}
	if diff := cmp.Diff(wantChecks, collector.PythonChecks()); diff != "" {
		t.Errorf("PythonChecks() returned unexpected diff (-want +got):\n%s", diff)
	}
	wantInstalls := []*stats.InstallStats{{Requirements: []string{"numpy"}}}
	if diff := cmp.Diff(wantInstalls, collector.Installs()); diff != "" {
		t.Errorf("Installs() returned unexpected diff (-want +got):\n%s", diff)
	}
}
