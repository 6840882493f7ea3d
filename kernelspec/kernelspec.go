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

// Package kernelspec builds and installs the Jupyter kernel specification that
// starts an isolated, uv-managed Python kernel.
package kernelspec

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uvk/log"
)

const (
	// DefaultName is the name of the kernel when none is given.
	DefaultName = "uvk"
	// ProtocolVersion is the Jupyter messaging protocol version the kernel speaks.
	ProtocolVersion = "5.3"
	// ConnectionFileArg is replaced by the notebook server with the path of the
	// connection file.
	ConnectionFileArg = "{connection_file}"

	specFile = "kernel.json"
	logoFile = "logo-svg.svg"
)

//go:embed resources/logo-svg.svg
var logoSVG []byte

var reName = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// ErrInvalidName is returned for kernel names the notebook server would reject.
var ErrInvalidName = errors.New("invalid kernel name")

// Spec describes a kernel.
type Spec struct {
	Name        string
	DisplayName string
	// Env is set in the kernel's environment as it starts.
	Env map[string]string
	// Python selects the interpreter uv runs the kernel with, e.g. "3.12" or a path.
	// Empty lets uv decide.
	Python string
	// UV is the uv executable the kernel is started with.
	UV string
}

// DefaultDisplayName returns the display name used when none is given, based on
// the version of the interpreter, e.g. "UVK (Python 3.12)".
func DefaultDisplayName(pythonVersion string) string {
	parts := strings.SplitN(pythonVersion, ".", 3)
	if len(parts) >= 2 {
		pythonVersion = parts[0] + "." + parts[1]
	}
	return fmt.Sprintf("UVK (Python %s)", pythonVersion)
}

// Validate checks that the spec can be installed.
func (s *Spec) Validate() error {
	if !reName.MatchString(s.Name) || strings.Trim(s.Name, ".") == "" {
		return fmt.Errorf("%w %q: only letters, digits, '.', '_' and '-' are allowed", ErrInvalidName, s.Name)
	}
	if s.UV == "" {
		return errors.New("kernel spec has no uv executable")
	}
	return nil
}

// Argv returns the command line the notebook server runs to start the kernel.
func (s *Spec) Argv() []string {
	argv := []string{s.UV, "run", "--with", "uvk"}
	if s.Python != "" {
		argv = append(argv, "--python", s.Python)
	}
	return append(argv,
		"--isolated",
		"--no-cache",
		"python",
		"-m",
		"ipykernel_launcher",
		"-f",
		ConnectionFileArg,
	)
}

type kernelJSON struct {
	Argv                  []string          `json:"argv"`
	DisplayName           string            `json:"display_name"`
	Env                   map[string]string `json:"env"`
	Language              string            `json:"language"`
	InterruptMode         string            `json:"interrupt_mode"`
	Metadata              map[string]any    `json:"metadata"`
	KernelProtocolVersion string            `json:"kernel_protocol_version"`
}

// JSON returns the content of the kernel.json file.
func (s *Spec) JSON() ([]byte, error) {
	env := s.Env
	if env == nil {
		env = map[string]string{}
	}
	return json.MarshalIndent(kernelJSON{
		Argv:                  s.Argv(),
		DisplayName:           s.DisplayName,
		Env:                   env,
		Language:              "python",
		InterruptMode:         "signal",
		Metadata:              map[string]any{"debugger": true},
		KernelProtocolVersion: ProtocolVersion,
	}, "", "  ")
}

// Prepare writes the kernel specification files into dir, which must exist.
func Prepare(s *Spec, dir string) error {
	data, err := s.JSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, specFile), data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", specFile, err)
	}
	if err := os.WriteFile(filepath.Join(dir, logoFile), logoSVG, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", logoFile, err)
	}
	return nil
}

// Install writes the kernel specification under dataDir/kernels/<name>, replacing
// any kernel of the same name, and returns the directory it was installed to.
func Install(s *Spec, dataDir string) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	kernels := filepath.Join(dataDir, "kernels")
	if err := os.MkdirAll(kernels, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", kernels, err)
	}

	// Staged next to the destination so that the final rename stays on one filesystem.
	tmp, err := os.MkdirTemp(kernels, "."+s.Name+"-")
	if err != nil {
		return "", fmt.Errorf("failed to stage kernel spec: %w", err)
	}
	defer os.RemoveAll(tmp)
	if err := os.Chmod(tmp, 0o755); err != nil {
		return "", err
	}
	if err := Prepare(s, tmp); err != nil {
		return "", err
	}

	dest := filepath.Join(kernels, s.Name)
	if _, err := os.Stat(dest); err == nil {
		log.Infof("Replacing existing kernel spec %s", dest)
		if err := os.RemoveAll(dest); err != nil {
			return "", fmt.Errorf("failed to remove existing kernel spec %s: %w", dest, err)
		}
	}
	if err := os.Rename(tmp, dest); err != nil {
		return "", fmt.Errorf("failed to install kernel spec to %s: %w", dest, err)
	}
	log.Infof("Installed kernel spec %s in %s", s.Name, dest)
	return dest, nil
}

// ParseEnv turns NAME=VALUE pairs into a map. Later pairs win.
func ParseEnv(pairs []string) (map[string]string, error) {
	env := make(map[string]string, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid environment variable %q, want NAME=VALUE", p)
		}
		env[name] = value
	}
	return env, nil
}

// EnvNames returns the sorted names of the variables in env.
func EnvNames(env map[string]string) []string {
	names := make([]string, 0, len(env))
	for n := range env {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
