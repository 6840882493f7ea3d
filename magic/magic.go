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

// Package magic implements the commands a notebook session runs to manage its own
// dependencies: require-python, dependencies and script-metadata.
package magic

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uvk/installer"
	"github.com/google/uvk/log"
	"github.com/google/uvk/requirements"
	"github.com/google/uvk/scriptmetadata"
	"github.com/google/uvk/stats"
)

// Display shows notices to the user of the session.
type Display interface {
	Markdown(md string) error
	Warning(msg string) error
}

// Python checks the session's interpreter against a version constraint.
type Python interface {
	Require(ctx context.Context, constraint string) error
}

// Config is the configuration for a Session.
type Config struct {
	Installer installer.Installer
	Python    Python
	Display   Display
	// Stats is notified of warnings and of parsed script metadata.
	Stats stats.Collector
}

// Session runs commands against one interpreter environment.
type Session struct {
	installer installer.Installer
	python    Python
	display   Display
	stats     stats.Collector
	parser    *scriptmetadata.Parser
}

// New returns a Session. Installer, Python and Display are required.
func New(cfg Config) *Session {
	if cfg.Stats == nil {
		cfg.Stats = stats.NoopCollector{}
	}
	return &Session{
		installer: cfg.Installer,
		python:    cfg.Python,
		display:   cfg.Display,
		stats:     cfg.Stats,
		parser:    scriptmetadata.New(scriptmetadata.Config{Stats: cfg.Stats}),
	}
}

// RequirePython fails unless the interpreter satisfies the constraint given on line.
func (s *Session) RequirePython(ctx context.Context, line string) error {
	return s.python.Require(ctx, strings.TrimSpace(line))
}

// Dependencies installs the requirements listed on line and in cell. When the
// declaration is not in canonical form, the user is shown how it was understood.
func (s *Session) Dependencies(ctx context.Context, line, cell string) error {
	reqs := requirements.Parse(line + "\n" + cell)
	if !requirements.Regular(line, cell, reqs) {
		md := requirements.Notice(reqs)
		s.stats.AfterWarning(&stats.Warning{Kind: stats.WarningIrregularRequirements, Message: md})
		if err := s.display.Markdown(md); err != nil {
			log.Warnf("Failed to display notice: %v", err)
		}
	}
	return s.install(ctx, reqs)
}

// ScriptMetadata parses an inline script metadata block, checks its requires-python
// constraint and then installs its dependencies. The parsed document is returned.
func (s *Session) ScriptMetadata(ctx context.Context, cell string) (scriptmetadata.Document, error) {
	res, err := s.parser.Parse(cell)
	if err != nil {
		return nil, err
	}
	for _, w := range res.Warnings {
		if err := s.display.Warning(w.Message); err != nil {
			log.Warnf("Failed to display warning: %v", err)
		}
	}

	constraint, ok, err := res.Document.RequiresPython()
	if err != nil {
		return nil, err
	}
	if ok {
		if err := s.python.Require(ctx, constraint); err != nil {
			return nil, err
		}
	}

	deps, ok, err := res.Document.Dependencies()
	if err != nil {
		return nil, err
	}
	if ok {
		if err := s.install(ctx, deps); err != nil {
			return nil, err
		}
	}
	return res.Document, nil
}

func (s *Session) install(ctx context.Context, reqs []string) error {
	if len(reqs) == 0 {
		log.Debugf("No requirements to install")
		return nil
	}
	if err := requirements.Validate(reqs); err != nil {
		return err
	}
	if err := s.installer.Install(ctx, reqs); err != nil {
		return fmt.Errorf("failed to install dependencies: %w", err)
	}
	return nil
}
