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

// Package command runs external programs, e.g. the Python interpreter or uv.
package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/google/uvk/log"
)

// Client runs external programs. The real implementation shells out; tests use fakes.
type Client interface {
	// Output runs name with args and returns its standard output.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// New returns a Client that executes programs on the local machine.
func New() Client { return &realClient{} }

type realClient struct{}

// Output runs the program and returns what it wrote to stdout. On failure the
// program's stderr is logged and the error names the command line.
func (*realClient) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if errors.Is(cmd.Err, exec.ErrDot) {
		cmd.Err = nil
	}

	stdoutBuffer := bytes.Buffer{}
	stderrBuffer := bytes.Buffer{}
	cmd.Stdout = &stdoutBuffer
	cmd.Stderr = &stderrBuffer

	log.Debugf("Running `%v`", cmd.String())
	if err := cmd.Run(); err != nil {
		if stderr := strings.TrimSpace(stderrBuffer.String()); stderr != "" {
			log.Errorf("%s stderr:\n%s", name, stderr)
		}
		return nil, fmt.Errorf("failed to run `%v`: %w", cmd.String(), err)
	}
	if stderr := strings.TrimSpace(stderrBuffer.String()); stderr != "" {
		log.Debugf("%s stderr:\n%s", name, stderr)
	}
	return stdoutBuffer.Bytes(), nil
}
