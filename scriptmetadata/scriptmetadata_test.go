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

package scriptmetadata_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uvk/scriptmetadata"
	"github.com/google/uvk/stats"
	"github.com/google/uvk/testing/testcollector"
)

func lines(l ...string) string {
	return strings.Join(l, "\n")
}

func TestParse(t *testing.T) {
	tests := []struct {
		name         string
		metadata     string
		want         scriptmetadata.Document
		wantWarnings int
		wantErr      error
	}{
		{
			name: "dependencies only",
			metadata: lines(
				"# /// script",
				`# dependencies = ["numpy", "requests>=3"]`,
				"# ///",
			),
			want: scriptmetadata.Document{"dependencies": []any{"numpy", "requests>=3"}},
		},
		{
			name:    "empty input",
			wantErr: scriptmetadata.ErrNoStartLine,
		},
		{
			name:         "trailing line",
			metadata:     "# /// script\n# requires-python = \">3.10\"\n# ///\n# asdf",
			want:         scriptmetadata.Document{"requires-python": ">3.10"},
			wantWarnings: 1,
		},
		{
			name: "many trailing lines warn once",
			metadata: lines(
				"# /// script",
				`# requires-python = ">=3.11"`,
				"# ///",
				"# first",
				"#",
				"# second",
				"# /// script",
			),
			want:         scriptmetadata.Document{"requires-python": ">=3.11"},
			wantWarnings: 1,
		},
		{
			name: "full document",
			metadata: lines(
				"# /// script",
				`# requires-python = ">=3.11"`,
				"# dependencies = [",
				`#   "requests<3",`,
				`#   "rich",`,
				"# ]",
				"#",
				"# [tool.uv]",
				`# exclude-newer = "2023-10-16T00:00:00Z"`,
				"# ///",
			),
			want: scriptmetadata.Document{
				"requires-python": ">=3.11",
				"dependencies":    []any{"requests<3", "rich"},
				"tool": map[string]any{
					"uv": map[string]any{"exclude-newer": "2023-10-16T00:00:00Z"},
				},
			},
		},
		{
			name: "preamble before opening line",
			metadata: lines(
				"# This notebook needs a few packages.",
				"# They are installed below.",
				"# /// script",
				`# dependencies = ["numpy"]`,
				"# ///",
			),
			want: scriptmetadata.Document{"dependencies": []any{"numpy"}},
		},
		{
			name: "indented and blank lines are skipped",
			metadata: lines(
				"",
				"    # /// script   ",
				"",
				"\t# dependencies = [\"numpy\"]",
				"    #",
				"# ///",
				"   ",
			),
			want: scriptmetadata.Document{"dependencies": []any{"numpy"}},
		},
		{
			name: "windows line endings",
			metadata: "# /// script\r\n# dependencies = [\"numpy\"]\r\n# ///\r\n",
			want:     scriptmetadata.Document{"dependencies": []any{"numpy"}},
		},
		{
			name:     "empty document",
			metadata: lines("# /// script", "# ///"),
			want:     scriptmetadata.Document{},
		},
		{
			name:     "opening line with suffix",
			metadata: lines("# /// script-v1", `# x = 1`, "# ///end"),
			want:     scriptmetadata.Document{"x": int64(1)},
		},
		{
			name:     "missing prefix space",
			metadata: lines("#///script", `# dependencies = ["numpy"]`, "# ///"),
			wantErr:  scriptmetadata.ErrIllegalLine,
		},
		{
			name:     "uncommented line",
			metadata: lines("# /// script", `dependencies = ["numpy"]`, "# ///"),
			wantErr:  scriptmetadata.ErrIllegalLine,
		},
		{
			name:     "uncommented trailing line",
			metadata: lines("# /// script", "# ///", "print(5)"),
			wantErr:  scriptmetadata.ErrIllegalLine,
		},
		{
			name:     "no space before script",
			metadata: lines("# ///script", `# dependencies = ["numpy"]`, "# ///"),
			wantErr:  scriptmetadata.ErrNoStartLine,
		},
		{
			name:     "two spaces before script",
			metadata: lines("# ///  script", `# dependencies = ["numpy"]`, "# ///"),
			wantErr:  scriptmetadata.ErrNoStartLine,
		},
		{
			name:     "only commentary",
			metadata: lines("# hello", "# world"),
			wantErr:  scriptmetadata.ErrNoStartLine,
		},
		{
			name:     "no closing line",
			metadata: lines("# /// script", `# dependencies = ["numpy"]`),
			wantErr:  scriptmetadata.ErrNoEndLine,
		},
		{
			name:     "closing line with space is content",
			metadata: lines("# /// script", `# dependencies = ["numpy"]`, "# /// end"),
			wantErr:  scriptmetadata.ErrNoEndLine,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := scriptmetadata.Parse(tc.metadata)
			if !cmp.Equal(err, tc.wantErr, cmpopts.EquateErrors()) {
				t.Fatalf("Parse(%q) error: got %v, want %v", tc.metadata, err, tc.wantErr)
			}
			if tc.wantErr != nil {
				return
			}
			if diff := cmp.Diff(tc.want, got.Document); diff != "" {
				t.Errorf("Parse(%q) returned unexpected diff (-want +got):\n%s", tc.metadata, diff)
			}
			if len(got.Warnings) != tc.wantWarnings {
				t.Errorf("Parse(%q) returned %d warnings, want %d", tc.metadata, len(got.Warnings), tc.wantWarnings)
			}
		})
	}
}

func TestParseErrorCarriesMetadata(t *testing.T) {
	metadata := lines("# /// script", "#oops", "# ///")
	_, err := scriptmetadata.Parse(metadata)

	var pe *scriptmetadata.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse(%q) error = %v, want a *ParseError", metadata, err)
	}
	want := scriptmetadata.ParseError{
		Kind:     scriptmetadata.ErrIllegalLine,
		Line:     2,
		Text:     "#oops",
		Metadata: metadata,
	}
	if diff := cmp.Diff(want, *pe, cmpopts.EquateErrors()); diff != "" {
		t.Errorf("Parse(%q) returned unexpected error diff (-want +got):\n%s", metadata, diff)
	}
	if !strings.Contains(pe.Error(), "line 2") {
		t.Errorf("ParseError.Error() = %q, want it to mention the line number", pe.Error())
	}
}

func TestParseStructuralErrorsRetainMetadata(t *testing.T) {
	for _, metadata := range []string{"", "# nothing here", "# /// script\n# a = 1"} {
		_, err := scriptmetadata.Parse(metadata)
		var pe *scriptmetadata.ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("Parse(%q) error = %v, want a *ParseError", metadata, err)
		}
		if pe.Metadata != metadata {
			t.Errorf("ParseError.Metadata = %q, want %q", pe.Metadata, metadata)
		}
	}
}

func TestParseInvalidTOMLIsNotWrapped(t *testing.T) {
	metadata := lines("# /// script", "# dependencies = [", "# ///")
	_, err := scriptmetadata.Parse(metadata)
	if err == nil {
		t.Fatalf("Parse(%q) succeeded, want a TOML error", metadata)
	}
	var pe *scriptmetadata.ParseError
	if errors.As(err, &pe) {
		t.Errorf("Parse(%q) error = %v, want the TOML parser's error, not a *ParseError", metadata, err)
	}
}

func TestParseReportsStats(t *testing.T) {
	tests := []struct {
		name         string
		metadata     string
		want         *stats.ScriptMetadataStats
		wantWarnings []*stats.Warning
	}{
		{
			name:     "ok",
			metadata: lines("# /// script", `# dependencies = ["numpy"]`, "# ///"),
			want: &stats.ScriptMetadataStats{
				Result:        stats.ScriptMetadataResultOK,
				Lines:         3,
				DocumentLines: 1,
			},
		},
		{
			name:     "trailing lines",
			metadata: lines("# /// script", "# ///", "", "# a", "# b"),
			want: &stats.ScriptMetadataStats{
				Result:   stats.ScriptMetadataResultOK,
				Lines:    5,
				Warnings: 1,
			},
			wantWarnings: []*stats.Warning{{
				Kind:    stats.WarningTrailingLines,
				Message: scriptmetadata.TrailingLinesMessage,
				Line:    4,
			}},
		},
		{
			name:     "illegal line",
			metadata: lines("# /// script", "x"),
			want: &stats.ScriptMetadataStats{
				Result: stats.ScriptMetadataResultIllegalLine,
				Lines:  2,
			},
		},
		{
			name:     "no start line",
			metadata: "# a",
			want: &stats.ScriptMetadataStats{
				Result: stats.ScriptMetadataResultNoStartLine,
				Lines:  1,
			},
		},
		{
			name:     "no end line",
			metadata: lines("# /// script", "# a = 1"),
			want: &stats.ScriptMetadataStats{
				Result:        stats.ScriptMetadataResultNoEndLine,
				Lines:         2,
				DocumentLines: 1,
			},
		},
		{
			name:     "invalid document",
			metadata: lines("# /// script", "# a = ", "# ///"),
			want: &stats.ScriptMetadataStats{
				Result:        stats.ScriptMetadataResultInvalidDocument,
				Lines:         3,
				DocumentLines: 1,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			collector := testcollector.New()
			p := scriptmetadata.New(scriptmetadata.Config{Stats: collector})
			_, _ = p.Parse(tc.metadata)

			if diff := cmp.Diff([]*stats.ScriptMetadataStats{tc.want}, collector.Parses()); diff != "" {
				t.Errorf("Parse(%q) reported unexpected stats diff (-want +got):\n%s", tc.metadata, diff)
			}
			if diff := cmp.Diff(tc.wantWarnings, collector.Warnings()); diff != "" {
				t.Errorf("Parse(%q) reported unexpected warnings diff (-want +got):\n%s", tc.metadata, diff)
			}
		})
	}
}

func TestParseConcurrently(t *testing.T) {
	metadata := lines("# /// script", `# dependencies = ["numpy", "requests>=3"]`, "# ///", "# trailing")
	want := scriptmetadata.Document{"dependencies": []any{"numpy", "requests>=3"}}
	p := scriptmetadata.NewDefault()

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := p.Parse(metadata)
			if err != nil {
				t.Errorf("Parse(%q) failed: %v", metadata, err)
				return
			}
			if diff := cmp.Diff(want, got.Document); diff != "" {
				t.Errorf("Parse(%q) returned unexpected diff (-want +got):\n%s", metadata, diff)
			}
		}()
	}
	wg.Wait()
}

func TestDocumentAccessors(t *testing.T) {
	tests := []struct {
		name       string
		doc        scriptmetadata.Document
		wantPython string
		wantHasPy  bool
		wantDeps   []string
		wantHasDep bool
		wantErr    error
	}{
		{
			name: "empty",
			doc:  scriptmetadata.Document{},
		},
		{
			name: "both keys",
			doc: scriptmetadata.Document{
				"requires-python": ">=3.11",
				"dependencies":    []any{"numpy", "rich"},
			},
			wantPython: ">=3.11",
			wantHasPy:  true,
			wantDeps:   []string{"numpy", "rich"},
			wantHasDep: true,
		},
		{
			name:       "empty dependencies",
			doc:        scriptmetadata.Document{"dependencies": []any{}},
			wantDeps:   []string{},
			wantHasDep: true,
		},
		{
			name:      "python is not a string",
			doc:       scriptmetadata.Document{"requires-python": int64(3)},
			wantHasPy: true,
			wantErr:   scriptmetadata.ErrInvalidField,
		},
		{
			name:       "dependencies is not an array",
			doc:        scriptmetadata.Document{"dependencies": "numpy"},
			wantHasDep: true,
			wantErr:    scriptmetadata.ErrInvalidField,
		},
		{
			name:       "dependency is not a string",
			doc:        scriptmetadata.Document{"dependencies": []any{"numpy", int64(1)}},
			wantHasDep: true,
			wantErr:    scriptmetadata.ErrInvalidField,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			python, hasPy, errPy := tc.doc.RequiresPython()
			deps, hasDep, errDep := tc.doc.Dependencies()
			err := errors.Join(errPy, errDep)
			if !cmp.Equal(err, tc.wantErr, cmpopts.EquateErrors()) {
				t.Fatalf("accessors error: got %v, want %v", err, tc.wantErr)
			}
			if python != tc.wantPython || hasPy != tc.wantHasPy {
				t.Errorf("RequiresPython() = %q, %v, want %q, %v", python, hasPy, tc.wantPython, tc.wantHasPy)
			}
			if hasDep != tc.wantHasDep {
				t.Errorf("Dependencies() found = %v, want %v", hasDep, tc.wantHasDep)
			}
			if diff := cmp.Diff(tc.wantDeps, deps); diff != "" {
				t.Errorf("Dependencies() returned unexpected diff (-want +got):\n%s", diff)
			}
		})
	}
}
