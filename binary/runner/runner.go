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

// Package runner provides the functions for running the subcommands of the uvk binary.
package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"deps.dev/util/semver"
	"github.com/google/uvk/binary/cli"
	"github.com/google/uvk/binary/platform"
	"github.com/google/uvk/installer"
	"github.com/google/uvk/internal/command"
	"github.com/google/uvk/kernelspec"
	"github.com/google/uvk/log"
	"github.com/google/uvk/magic"
	"github.com/google/uvk/notice"
	"github.com/google/uvk/pyversion"
	"github.com/google/uvk/scriptmetadata"
	"github.com/google/uvk/stats"
	"github.com/google/uvk/version"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// IO holds the streams and helpers a command runs with.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	// Client runs the Python interpreter and uv.
	Client command.Client
}

// DefaultIO returns the process' standard streams and a client running real programs.
func DefaultIO() IO {
	return IO{Stdin: os.Stdin, Stdout: os.Stdout, Client: command.New()}
}

// Run executes the subcommand selected by flags and returns the exit code passed
// to os.Exit() in the main binary.
func Run(ctx context.Context, flags *cli.Flags, streams IO) int {
	log.SetLogger(&log.DefaultLogger{Level: flags.LogLevel()})

	var err error
	switch flags.Command {
	case cli.CommandVersion:
		_, err = fmt.Fprintf(streams.Stdout, "uvk v%s\n", version.UVKVersion)
	case cli.CommandInstall:
		err = runInstall(ctx, flags, streams)
	case cli.CommandRequirePython:
		err = newSession(flags, streams, nil).RequirePython(ctx, flags.Line())
	case cli.CommandDependencies:
		err = runDependencies(ctx, flags, streams)
	case cli.CommandScriptMetadata:
		err = runScriptMetadata(ctx, flags, streams)
	default:
		err = fmt.Errorf("unknown command %q", flags.Command)
	}
	if err != nil {
		log.Errorf("%s: %v", flags.Command, err)
		return 1
	}
	return 0
}

// newRenderer styles notices only when w is a terminal, and wraps them to its width.
func newRenderer(flags *cli.Flags, w io.Writer) *notice.Renderer {
	cfg := notice.Config{}
	f, ok := w.(*os.File)
	if !ok || flags.Plain {
		return notice.New(cfg)
	}
	cfg.Styled = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	if width, _, err := term.GetSize(int(f.Fd())); err == nil && width < notice.DefaultWidth {
		cfg.Width = width
	}
	return notice.New(cfg)
}

func newInterpreter(flags *cli.Flags, streams IO) *pyversion.Interpreter {
	return pyversion.New(pyversion.Config{
		Python: flags.Python,
		Client: streams.Client,
		Stats:  logCollector{},
	})
}

func newSession(flags *cli.Flags, streams IO, inst installer.Installer) *magic.Session {
	return magic.New(magic.Config{
		Installer: inst,
		Python:    newInterpreter(flags, streams),
		Display:   notice.NewPrinter(streams.Stdout, newRenderer(flags, streams.Stdout)),
		Stats:     logCollector{},
	})
}

func newInstaller(flags *cli.Flags, streams IO) (*installer.UV, error) {
	return installer.New(installer.Config{
		UV:     flags.UV,
		Python: flags.Python,
		Client: streams.Client,
		Stats:  logCollector{},
	})
}

func runDependencies(ctx context.Context, flags *cli.Flags, streams IO) error {
	cell := ""
	if flags.Cell != "" {
		data, err := readInput(flags.Cell, streams.Stdin)
		if err != nil {
			return err
		}
		cell = string(data)
	}
	inst, err := newInstaller(flags, streams)
	if err != nil {
		return err
	}
	return newSession(flags, streams, inst).Dependencies(ctx, flags.Line(), cell)
}

func runScriptMetadata(ctx context.Context, flags *cli.Flags, streams IO) error {
	path := "-"
	if len(flags.Args) == 1 {
		path = flags.Args[0]
	}
	data, err := readInput(path, streams.Stdin)
	if err != nil {
		return err
	}

	if !flags.DryRun {
		inst, err := newInstaller(flags, streams)
		if err != nil {
			return err
		}
		_, err = newSession(flags, streams, inst).ScriptMetadata(ctx, string(data))
		return err
	}

	res, err := scriptmetadata.New(scriptmetadata.Config{Stats: logCollector{}}).Parse(string(data))
	if err != nil {
		return err
	}
	printer := notice.NewPrinter(streams.Stdout, newRenderer(flags, streams.Stdout))
	for _, w := range res.Warnings {
		if err := printer.Warning(w.Message); err != nil {
			return err
		}
	}
	out, err := json.MarshalIndent(res.Document, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode script metadata: %w", err)
	}
	_, err = fmt.Fprintf(streams.Stdout, "%s\n", out)
	return err
}

func runInstall(ctx context.Context, flags *cli.Flags, streams IO) error {
	uv, err := installer.FindUV(flags.UV)
	if err != nil {
		return err
	}
	env, err := flags.KernelEnv()
	if err != nil {
		return err
	}
	spec := &kernelspec.Spec{
		Name:        flags.Name,
		DisplayName: flags.DisplayName,
		Env:         env,
		Python:      flags.Python,
		UV:          uv,
	}
	if spec.DisplayName == "" {
		spec.DisplayName = defaultDisplayName(ctx, flags, streams)
	}
	log.Debugf("Kernel environment variables: %v", kernelspec.EnvNames(env))

	prefix := flags.Prefix
	if flags.SysPrefix {
		if prefix, err = newInterpreter(flags, streams).Prefix(ctx); err != nil {
			return err
		}
	}
	dataDir, err := platform.DataDir(flags.User, prefix)
	if err != nil {
		return err
	}
	_, err = kernelspec.Install(spec, dataDir)
	return err
}

// defaultDisplayName names the kernel after the Python version it runs. --python
// may already be a version number; otherwise the interpreter is asked.
func defaultDisplayName(ctx context.Context, flags *cli.Flags, streams IO) string {
	if flags.Python != "" {
		if _, err := semver.PyPI.Parse(flags.Python); err == nil {
			return kernelspec.DefaultDisplayName(flags.Python)
		}
	}
	v, err := newInterpreter(flags, streams).Version(ctx)
	if err != nil {
		log.Warnf("Cannot determine the Python version for the display name: %v", err)
		return "UVK"
	}
	return kernelspec.DefaultDisplayName(v)
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// logCollector reports events at debug level.
type logCollector struct {
	stats.NoopCollector
}

func (logCollector) AfterScriptMetadataParsed(s *stats.ScriptMetadataStats) {
	log.Debugf("Script metadata: %s (%d lines, %d document lines, %d warnings)", s.Result, s.Lines, s.DocumentLines, s.Warnings)
}

func (logCollector) AfterInstall(s *stats.InstallStats) {
	if s.Error != nil {
		log.Debugf("Installing %d requirements failed after %v", len(s.Requirements), s.Runtime)
		return
	}
	log.Debugf("Installed %d requirements in %v", len(s.Requirements), s.Runtime)
}
