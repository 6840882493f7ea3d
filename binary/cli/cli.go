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

// Package cli defines the structures to store the CLI flags used by the uvk binary.
package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uvk/kernelspec"
	"github.com/google/uvk/log"
)

// Subcommands of the uvk binary.
const (
	CommandInstall        = "install"
	CommandRequirePython  = "require-python"
	CommandDependencies   = "dependencies"
	CommandScriptMetadata = "script-metadata"
	CommandVersion        = "version"
)

// Commands lists the subcommands of the uvk binary.
var Commands = []string{CommandInstall, CommandRequirePython, CommandDependencies, CommandScriptMetadata, CommandVersion}

// Array is a type to be passed to flag.Var that supports arrays passed as repeated flags,
// e.g. ./uvk install --env A=1 --env B=2
type Array []string

func (i *Array) String() string {
	return strings.Join(*i, ",")
}

// Set gets called whenever a new instance of a flag is read during CLI arg parsing.
// For example, in the case of --env A=1 --env B=2 the library will call arr.Set("A=1") then arr.Set("B=2").
func (i *Array) Set(value string) error {
	*i = append(*i, strings.TrimSpace(value))
	return nil
}

// Get returns the underlying []string value stored by this flag struct.
func (i *Array) Get() any {
	return i
}

// Counter is a boolean flag that counts its occurrences, e.g. -q -q.
type Counter int

func (c *Counter) String() string {
	return strconv.Itoa(int(*c))
}

// Set increments the counter for every occurrence of the flag. Explicit values
// such as -q=false are honored.
func (c *Counter) Set(value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return err
	}
	if b {
		*c++
	}
	return nil
}

// IsBoolFlag lets the flag be given without a value.
func (c *Counter) IsBoolFlag() bool { return true }

// Get returns the number of occurrences.
func (c *Counter) Get() any {
	return int(*c)
}

// Flags contains a field for all the cli flags that can be set.
type Flags struct {
	Command string
	// Positional arguments after the flags.
	Args []string

	Python       string
	UV           string
	Plain        bool
	Quiet        int
	Debug        bool
	PrintVersion bool

	// install
	Name        string
	DisplayName string
	User        bool
	Prefix      string
	SysPrefix   bool
	Env         Array
	TmpDir      string

	// dependencies
	Cell string

	// script-metadata
	DryRun bool
}

// ValidateFlags validates the passed command line flags.
func ValidateFlags(flags *Flags) error {
	switch flags.Command {
	case CommandInstall:
		return validateInstall(flags)
	case CommandRequirePython:
		if len(flags.Args) == 0 {
			return errors.New("require-python needs a version constraint, e.g. uvk require-python '>=3.11'")
		}
	case CommandDependencies:
		for _, a := range flags.Args {
			if strings.HasPrefix(a, "-") {
				return fmt.Errorf("flag %s must be given before the requirements", a)
			}
		}
	case CommandScriptMetadata:
		if len(flags.Args) > 1 {
			return fmt.Errorf("script-metadata takes at most one file, got %d", len(flags.Args))
		}
	case CommandVersion:
	default:
		return fmt.Errorf("unknown command %q, supported commands are %v", flags.Command, Commands)
	}
	return nil
}

func validateInstall(flags *Flags) error {
	if len(flags.Args) > 0 {
		return fmt.Errorf("install takes no arguments, got %q", flags.Args)
	}
	if flags.Prefix != "" && flags.SysPrefix {
		return errors.New("--prefix and --sys-prefix cannot be used together")
	}
	if flags.User && (flags.Prefix != "" || flags.SysPrefix) {
		return errors.New("--user cannot be used with --prefix or --sys-prefix")
	}
	spec := kernelspec.Spec{Name: flags.Name, UV: "uv"}
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("--name: %w", err)
	}
	if _, err := flags.KernelEnv(); err != nil {
		return fmt.Errorf("--env: %w", err)
	}
	return nil
}

// KernelEnv returns the environment variables set for the kernel, including TMPDIR
// when --tmp is given.
func (f *Flags) KernelEnv() (map[string]string, error) {
	pairs := []string(f.Env)
	if f.TmpDir != "" {
		pairs = append(pairs, "TMPDIR="+f.TmpDir)
	}
	return kernelspec.ParseEnv(pairs)
}

// LogLevel returns the level of the logger from -q and --debug.
func (f *Flags) LogLevel() log.Level {
	if f.Debug {
		return log.LevelDebug
	}
	return log.LevelFromQuiet(f.Quiet)
}

// Line returns the positional arguments as a single command line.
func (f *Flags) Line() string {
	return strings.Join(f.Args, " ")
}
