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

import "fmt"

const (
	// KeyRequiresPython holds the version constraint the interpreter must satisfy.
	KeyRequiresPython = "requires-python"
	// KeyDependencies holds the list of requirement specifiers to install.
	KeyDependencies = "dependencies"
)

// Document is the TOML document of a script metadata block. Keys other than
// KeyRequiresPython and KeyDependencies are kept as decoded, e.g. [tool.*] tables.
type Document map[string]any

// RequiresPython returns the version constraint of the document, if any.
func (d Document) RequiresPython() (string, bool, error) {
	v, ok := d[KeyRequiresPython]
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", true, fmt.Errorf("%w %q: want a string, got %T", ErrInvalidField, KeyRequiresPython, v)
	}
	return s, true, nil
}

// Dependencies returns the requirement specifiers of the document, if any.
func (d Document) Dependencies() ([]string, bool, error) {
	v, ok := d[KeyDependencies]
	if !ok {
		return nil, false, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, true, fmt.Errorf("%w %q: want an array, got %T", ErrInvalidField, KeyDependencies, v)
	}
	deps := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, true, fmt.Errorf("%w %q: item %d is a %T, want a string", ErrInvalidField, KeyDependencies, i, item)
		}
		deps = append(deps, s)
	}
	return deps, true, nil
}
