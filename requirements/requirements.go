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

// Package requirements turns free-text dependency declarations into ordered
// lists of requirement specifiers, e.g. "numpy scipy>=1.12".
package requirements

import (
	"errors"
	"fmt"
	"strings"

	"deps.dev/util/pypi"
	"go.uber.org/multierr"
)

// ErrInvalidRequirement is returned when a specifier is rejected by the
// requirement grammar.
var ErrInvalidRequirement = errors.New("invalid requirement")

// Parse splits deps on any run of whitespace and returns the specifiers in order of
// appearance. Duplicates are kept. Parse never fails; the syntax of each specifier is
// checked separately by Validate.
func Parse(deps string) []string {
	return strings.Fields(deps)
}

// Validate checks every specifier against the PEP 508 requirement grammar. All
// nonconforming specifiers are reported, each wrapping ErrInvalidRequirement.
func Validate(reqs []string) error {
	var errs error
	for _, r := range reqs {
		if _, err := pypi.ParseDependency(r); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%w %q: %w", ErrInvalidRequirement, r, err))
		}
	}
	return errs
}

// Regular reports whether a dependencies invocation was written in canonical form,
// meaning the user would see no difference between what they typed and reqs.
// A line invocation is canonical when its specifiers are separated by single spaces;
// a cell invocation (empty line) is canonical when it holds one specifier per line.
func Regular(line, cell string, reqs []string) bool {
	line = strings.TrimSpace(line)
	cell = strings.TrimSuffix(cell, "\n")
	switch {
	case cell == "":
		return line == strings.Join(reqs, " ")
	case line == "":
		return cell == strings.Join(reqs, "\n")
	default:
		return false
	}
}

// Notice renders, as markdown, the canonical cell form of reqs along with an
// explanation that the input was normalized.
func Notice(reqs []string) string {
	var sb strings.Builder
	sb.WriteString("Requirement specifications are irregular. ")
	sb.WriteString("They will be processed as if they had been supplied in the following form:\n")
	sb.WriteString("\n```\n%%dependencies\n")
	for _, r := range reqs {
		sb.WriteString(r)
		sb.WriteByte('\n')
	}
	sb.WriteString("```\n")
	return sb.String()
}
