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

// Package scriptmetadata extracts inline script metadata blocks, the TOML document
// embedded in comment lines between "# /// script" and "# ///" (PEP 723).
package scriptmetadata

import (
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uvk/log"
	"github.com/google/uvk/stats"
)

const (
	// TrailingLinesMessage is the message of the warning reported when content
	// follows the closing line of a block.
	TrailingLinesMessage = "The script metadata has trailing lines after the closing line `# ///`; these are ignored"

	commentPrefix = "# "
	bareComment   = "#"
)

var (
	// Payload of the opening line, once the comment prefix is removed.
	reStartLine = regexp.MustCompile(`^/// script\S*$`)
	// Payload of the closing line, once the comment prefix is removed.
	reEndLine = regexp.MustCompile(`^///\S*$`)
)

// Config is the configuration for the Parser.
type Config struct {
	// Stats is notified of every parsed block and of every warning.
	Stats stats.Collector
}

// DefaultConfig returns the default configuration for the parser.
func DefaultConfig() Config {
	return Config{
		Stats: stats.NoopCollector{},
	}
}

// Parser extracts script metadata documents. It holds no state between calls and
// is safe for concurrent use.
type Parser struct {
	stats stats.Collector
}

// New returns a script metadata parser.
//
// For most use cases, initialize with:
// ```
// p := New(DefaultConfig())
// ```
func New(cfg Config) *Parser {
	if cfg.Stats == nil {
		cfg.Stats = stats.NoopCollector{}
	}
	return &Parser{stats: cfg.Stats}
}

// NewDefault returns a parser with the default config settings.
func NewDefault() *Parser { return New(DefaultConfig()) }

// Parse extracts the script metadata document of a comment block using the
// default parser.
func Parse(metadata string) (*Result, error) {
	return NewDefault().Parse(metadata)
}

// Result is the outcome of a successful parse.
type Result struct {
	Document Document
	// Non-fatal conditions found in the block. The document is valid regardless.
	Warnings []*stats.Warning
}

// Parse extracts the script metadata document of a comment block.
//
// Structural failures are reported as a *ParseError; errors from the TOML parser
// are returned as is.
func (p *Parser) Parse(metadata string) (*Result, error) {
	s := &scanner{metadata: metadata}
	err := s.scan()
	parsestats := &stats.ScriptMetadataStats{
		Lines:         s.lines,
		DocumentLines: len(s.document),
	}
	if err != nil {
		parsestats.Result = resultOf(err)
		p.stats.AfterScriptMetadataParsed(parsestats)
		return nil, err
	}

	doc := Document{}
	if _, err := toml.Decode(strings.Join(s.document, "\n"), &doc); err != nil {
		parsestats.Result = stats.ScriptMetadataResultInvalidDocument
		p.stats.AfterScriptMetadataParsed(parsestats)
		return nil, err
	}

	res := &Result{Document: doc}
	if s.firstTrailing > 0 {
		w := &stats.Warning{
			Kind:    stats.WarningTrailingLines,
			Message: TrailingLinesMessage,
			Line:    s.firstTrailing,
		}
		log.Warnf("%s (line %d)", w.Message, w.Line)
		p.stats.AfterWarning(w)
		res.Warnings = append(res.Warnings, w)
	}
	parsestats.Result = stats.ScriptMetadataResultOK
	parsestats.Warnings = len(res.Warnings)
	p.stats.AfterScriptMetadataParsed(parsestats)
	return res, nil
}

func resultOf(err error) stats.ScriptMetadataResult {
	pe, ok := err.(*ParseError)
	if !ok {
		return stats.ScriptMetadataResultInvalidDocument
	}
	switch pe.Kind {
	case ErrIllegalLine:
		return stats.ScriptMetadataResultIllegalLine
	case ErrNoStartLine:
		return stats.ScriptMetadataResultNoStartLine
	default:
		return stats.ScriptMetadataResultNoEndLine
	}
}

// phase is the state of the scanner as it moves down the block.
type phase int

const (
	// Looking for the opening line; everything else is preamble.
	seekStart phase = iota
	// Collecting document lines until the closing line.
	accumulate
	// Past the closing line.
	trailing
)

type scanner struct {
	metadata string
	phase    phase
	// Number of lines seen.
	lines int
	// Payloads between the opening and closing lines.
	document []string
	// Line number of the first non-skipped line after the closing line.
	firstTrailing int
}

func (s *scanner) scan() error {
	for i, raw := range strings.Split(s.metadata, "\n") {
		s.lines++
		line := strings.TrimSpace(raw)
		if line == "" || line == bareComment {
			continue
		}
		if !strings.HasPrefix(line, commentPrefix) {
			return &ParseError{Kind: ErrIllegalLine, Line: i + 1, Text: raw, Metadata: s.metadata}
		}
		payload := line[len(commentPrefix):]

		switch s.phase {
		case seekStart:
			if reStartLine.MatchString(payload) {
				s.phase = accumulate
			}
		case accumulate:
			if reEndLine.MatchString(payload) {
				s.phase = trailing
				continue
			}
			s.document = append(s.document, payload)
		case trailing:
			if s.firstTrailing == 0 {
				s.firstTrailing = i + 1
			}
		}
	}

	switch s.phase {
	case seekStart:
		return &ParseError{Kind: ErrNoStartLine, Metadata: s.metadata}
	case accumulate:
		return &ParseError{Kind: ErrNoEndLine, Metadata: s.metadata}
	}
	return nil
}
