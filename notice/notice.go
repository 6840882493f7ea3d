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

// Package notice renders human-readable notices, written in markdown, for display
// in a terminal or a plain-text log.
package notice

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// DefaultWidth is the column at which notices are wrapped.
const DefaultWidth = 80

var warningBadge = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))

// Config is the configuration for a Renderer.
type Config struct {
	// Styled enables terminal styling. Plain text is produced otherwise.
	Styled bool
	// Style is the glamour style used when Styled is set. Empty means "auto".
	Style string
	// Width is the wrap column. 0 means DefaultWidth.
	Width int
}

// Renderer turns markdown notices into text.
type Renderer struct {
	styled bool
	style  string
	width  int
}

// New returns a Renderer for the given config.
func New(cfg Config) *Renderer {
	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}
	return &Renderer{styled: cfg.Styled, style: cfg.Style, width: cfg.Width}
}

// Markdown renders md.
func (r *Renderer) Markdown(md string) (string, error) {
	if !r.styled {
		return wordwrap.String(md, r.width), nil
	}
	var opts []glamour.TermRendererOption
	if r.style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(r.style))
	}
	opts = append(opts, glamour.WithWordWrap(r.width))
	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return tr.Render(md)
}

// Warning renders a one-line warning.
func (r *Renderer) Warning(msg string) string {
	badge := "warning:"
	if r.styled {
		badge = warningBadge.Render(badge)
	}
	return wordwrap.String(badge+" "+msg, r.width)
}

// Printer writes rendered notices to an output stream.
type Printer struct {
	w io.Writer
	r *Renderer
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer, r *Renderer) *Printer {
	return &Printer{w: w, r: r}
}

// Markdown renders md and writes it.
func (p *Printer) Markdown(md string) error {
	s, err := p.r.Markdown(md)
	if err != nil {
		return fmt.Errorf("rendering notice: %w", err)
	}
	return p.write(s)
}

// Warning renders msg as a warning and writes it.
func (p *Printer) Warning(msg string) error {
	return p.write(p.r.Warning(msg))
}

func (p *Printer) write(s string) error {
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	_, err := io.WriteString(p.w, s)
	return err
}
