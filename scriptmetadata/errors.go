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

package scriptmetadata

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalLine is the kind of a ParseError raised when a line of the block
	// is neither blank, a bare "#", nor prefixed with "# ".
	ErrIllegalLine = errors.New("illegal line in script metadata; every line must start with `# `")
	// ErrNoStartLine is the kind of a ParseError raised when the block has no
	// opening line.
	ErrNoStartLine = errors.New("cannot find the script metadata opening line `# /// script`")
	// ErrNoEndLine is the kind of a ParseError raised when the block is opened but
	// never closed.
	ErrNoEndLine = errors.New("cannot find the script metadata closing line `# ///`")
	// ErrInvalidField is returned by Document accessors when a recognized key holds
	// a value of the wrong type.
	ErrInvalidField = errors.New("invalid script metadata field")
)

// ParseError describes a structural failure of a script metadata block.
// Its Kind is one of ErrIllegalLine, ErrNoStartLine or ErrNoEndLine.
type ParseError struct {
	Kind error
	// 1-based number of the offending line. 0 when the failure is about the
	// block as a whole.
	Line int
	// Text of the offending line, as it appears in Metadata.
	Text string
	// Metadata is the raw block that was being parsed.
	Metadata string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%v (line %d: %q)", e.Kind, e.Line, e.Text)
	}
	return e.Kind.Error()
}

// Unwrap returns the kind of the error so that callers can match it with errors.Is.
func (e *ParseError) Unwrap() error { return e.Kind }
