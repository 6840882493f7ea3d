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

// The uvk command manages the dependencies of isolated, uv-managed notebook kernels:
// it installs the kernel spec and runs the commands a session uses to declare its
// Python version and package requirements.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/google/uvk/binary/cli"
	"github.com/google/uvk/binary/runner"
	"github.com/google/uvk/kernelspec"
	"github.com/google/uvk/log"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	if len(args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <%s> [flags] [args]\n", args[0], strings.Join(cli.Commands, "|"))
		return 2
	}
	flags, err := parseFlags(args[1], args[2:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		log.Errorf("Error parsing CLI args: %v", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return runner.Run(ctx, flags, runner.DefaultIO())
}

func parseFlags(command string, args []string) (*cli.Flags, error) {
	flags := &cli.Flags{Command: command}
	fs := flag.NewFlagSet("uvk "+command, flag.ContinueOnError)

	fs.StringVar(&flags.Python, "python", "", "Python interpreter to use. For install, this mirrors uv's --python option and "+
		"can be a version number such as 3.12 or the path to an interpreter; elsewhere it is the interpreter whose environment is managed (default \"python\")")
	fs.StringVar(&flags.Python, "p", "", "Shorthand for --python")
	fs.StringVar(&flags.UV, "uv", "", "Path of the uv executable. Defaults to $UVK_UV, then uv from PATH")
	fs.BoolVar(&flags.Plain, "plain", false, "Print notices as plain text even on a terminal")
	quiet := new(cli.Counter)
	fs.Var(quiet, "q", "Quiets out the output chatter. Use up to three times to quiet down to critical errors")
	fs.BoolVar(&flags.Debug, "debug", false, "Debug-level output chatter")

	switch command {
	case cli.CommandInstall:
		fs.StringVar(&flags.Name, "name", kernelspec.DefaultName, "Name of the kernelspec")
		fs.StringVar(&flags.DisplayName, "display-name", "", "Pretty name for the kernelspec that will show in the notebook interface (default \"UVK (Python X.Y)\")")
		fs.BoolVar(&flags.User, "user", false, "Install the kernel in the user's space")
		fs.StringVar(&flags.Prefix, "prefix", "", "Install the kernel in the Python distribution at the given prefix path")
		fs.BoolVar(&flags.SysPrefix, "sys-prefix", false, "Install the kernel in the environment of the --python interpreter")
		fs.Var(&flags.Env, "env", "Define the environment variable NAME=VALUE as the kernel is started. Can be repeated")
		fs.StringVar(&flags.TmpDir, "tmp", "", "Set the temporary directory where the kernel's environment will be instantiated")
	case cli.CommandDependencies:
		fs.StringVar(&flags.Cell, "cell", "", "File holding additional requirements, one or more per line; - reads stdin")
	case cli.CommandScriptMetadata:
		fs.BoolVar(&flags.DryRun, "dry-run", false, "Print the parsed script metadata as JSON instead of acting on it")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	flags.Quiet = int(*quiet)
	flags.Args = fs.Args()

	if err := cli.ValidateFlags(flags); err != nil {
		return nil, err
	}
	return flags, nil
}
