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

// Package pyversion checks Python interpreters against PEP 440 version constraints
// such as the requires-python field of script metadata.
package pyversion

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"deps.dev/util/semver"
	"github.com/google/uvk/internal/command"
	"github.com/google/uvk/log"
	"github.com/google/uvk/stats"
)

var (
	// ErrInvalidSpecifier is returned when a version constraint cannot be parsed.
	ErrInvalidSpecifier = errors.New("invalid version specifier")
	// ErrInvalidVersion is returned when an interpreter reports a version that
	// cannot be parsed.
	ErrInvalidVersion = errors.New("invalid Python version")
	// ErrPythonRequirementNotSatisfied is returned when an interpreter does not
	// satisfy a constraint.
	ErrPythonRequirementNotSatisfied = errors.New("Python requirement not satisfied")
)

const (
	versionScript = "import platform; print(platform.python_version())"
	prefixScript  = "import sys; print(sys.prefix)"
)

// Check returns nil if version satisfies constraint.
func Check(constraint, version string) error {
	constraint = strings.TrimSpace(constraint)
	if constraint == "" {
		return fmt.Errorf("%w: empty constraint", ErrInvalidSpecifier)
	}
	c, err := semver.PyPI.ParseConstraint(constraint)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidSpecifier, constraint, err)
	}
	v, err := semver.PyPI.Parse(strings.TrimSpace(version))
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidVersion, version, err)
	}
	if !c.MatchVersion(v) {
		return fmt.Errorf("%w: Python %s does not satisfy %q", ErrPythonRequirementNotSatisfied, version, constraint)
	}
	return nil
}

// Config is the configuration for an Interpreter.
type Config struct {
	// Python is the interpreter executable, either a path or a name looked up in PATH.
	Python string
	// Client runs the interpreter.
	Client command.Client
	// Stats is notified of every version check.
	Stats stats.Collector
}

// DefaultConfig returns the default configuration, using "python" from PATH.
func DefaultConfig() Config {
	return Config{
		Python: "python",
		Client: command.New(),
		Stats:  stats.NoopCollector{},
	}
}

// Interpreter is a Python executable that can be inspected.
type Interpreter struct {
	python string
	client command.Client
	stats  stats.Collector
}

// New returns an Interpreter for the given config. Unset fields take their
// default values.
func New(cfg Config) *Interpreter {
	def := DefaultConfig()
	if cfg.Python == "" {
		cfg.Python = def.Python
	}
	if cfg.Client == nil {
		cfg.Client = def.Client
	}
	if cfg.Stats == nil {
		cfg.Stats = def.Stats
	}
	return &Interpreter{python: cfg.Python, client: cfg.Client, stats: cfg.Stats}
}

// Path returns the executable the interpreter runs as.
func (i *Interpreter) Path() string { return i.python }

// Version returns the version of the interpreter, e.g. "3.12.4".
func (i *Interpreter) Version(ctx context.Context) (string, error) {
	return i.eval(ctx, versionScript)
}

// Prefix returns the sys.prefix of the interpreter.
func (i *Interpreter) Prefix(ctx context.Context) (string, error) {
	return i.eval(ctx, prefixScript)
}

// Require checks the interpreter against constraint.
func (i *Interpreter) Require(ctx context.Context, constraint string) error {
	version, err := i.Version(ctx)
	if err != nil {
		return err
	}
	err = Check(constraint, version)
	i.stats.AfterPythonChecked(constraint, version, err)
	if err == nil {
		log.Debugf("Python %s satisfies %q", version, constraint)
	}
	return err
}

func (i *Interpreter) eval(ctx context.Context, script string) (string, error) {
	out, err := i.client.Output(ctx, i.python, "-c", script)
	if err != nil {
		return "", fmt.Errorf("failed to query interpreter %s: %w", i.python, err)
	}
	return strings.TrimSpace(string(out)), nil
}
