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

package stats

// ScriptMetadataStats is a struct containing stats about a script metadata block
// that went through the parser.
type ScriptMetadataStats struct {
	Result ScriptMetadataResult
	// Number of lines in the raw block, including skipped ones.
	Lines int
	// Number of lines handed to the document parser.
	DocumentLines int
	// Number of warnings reported for the block.
	Warnings int
}

// ScriptMetadataResult is a string representation of the outcome of parsing
// a script metadata block.
type ScriptMetadataResult string

const (
	// ScriptMetadataResultOK indicates that the block was parsed successfully.
	ScriptMetadataResultOK ScriptMetadataResult = "SCRIPT_METADATA_RESULT_OK"

	// ScriptMetadataResultIllegalLine indicates that a line lacked the comment prefix.
	ScriptMetadataResultIllegalLine ScriptMetadataResult = "SCRIPT_METADATA_RESULT_ILLEGAL_LINE"

	// ScriptMetadataResultNoStartLine indicates that the opening line was never found.
	ScriptMetadataResultNoStartLine ScriptMetadataResult = "SCRIPT_METADATA_RESULT_NO_START_LINE"

	// ScriptMetadataResultNoEndLine indicates that the closing line was never found.
	ScriptMetadataResultNoEndLine ScriptMetadataResult = "SCRIPT_METADATA_RESULT_NO_END_LINE"

	// ScriptMetadataResultInvalidDocument indicates that the enclosed document
	// was rejected by the TOML parser.
	ScriptMetadataResultInvalidDocument ScriptMetadataResult = "SCRIPT_METADATA_RESULT_INVALID_DOCUMENT"
)

// WarningKind identifies the condition a Warning reports.
type WarningKind string

const (
	// WarningTrailingLines is reported when content follows the closing line of a
	// script metadata block.
	WarningTrailingLines WarningKind = "TRAILING_LINES"

	// WarningIrregularRequirements is reported when a dependency declaration was
	// not written in canonical form and got normalized.
	WarningIrregularRequirements WarningKind = "IRREGULAR_REQUIREMENTS"
)

// Warning is a non-fatal condition detected while interpreting user input.
type Warning struct {
	Kind    WarningKind
	Message string
	// 1-based line number the warning refers to, or 0.
	Line int
}
