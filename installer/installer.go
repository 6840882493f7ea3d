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

// Package installer installs Python requirements into an interpreter's environment
// by shelling out to uv.
package installer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uvk/internal/command"
	"github.com/google/uvk/log"
	"github.com/google/uvk/stats"
)

// EnvUV names the environment variable that overrides the location of uv.
const EnvUV = "UVK_UV"

// ErrUVNotFound is returned when the uv executable cannot be located.
var ErrUVNotFound = errors.New("uv executable cannot be found")

// Installer installs requirements.
type Installer interface {
	Install(ctx context.Context, reqs []string) error
}

// Config is the configuration for the uv installer.
type Config struct {
	// UV is the path of the uv executable. If empty, EnvUV then PATH are consulted.
	UV string
	// Python is the interpreter whose environment receives the packages.
	Python string
	// Client runs uv.
	Client command.Client
	// Stats is notified after every installer run.
	Stats stats.Collector
}

// DefaultConfig returns the default configuration for the installer.
func DefaultConfig() Config {
	return Config{
		Python: "python",
		Client: command.New(),
		Stats:  stats.NoopCollector{},
	}
}

// UV installs requirements with `uv pip install`.
type UV struct {
	uv     string
	python string
	client command.Client
	stats  stats.Collector
}

// New returns a uv installer. It fails with ErrUVNotFound if uv cannot be located.
func New(cfg Config) (*UV, error) {
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
	uv, err := FindUV(cfg.UV)
	if err != nil {
		return nil, err
	}
	return &UV{uv: uv, python: cfg.Python, client: cfg.Client, stats: cfg.Stats}, nil
}

// FindUV locates the uv executable: path if given, else the EnvUV variable, else PATH.
func FindUV(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	if env := os.Getenv(EnvUV); env != "" {
		return env, nil
	}
	p, err := exec.LookPath("uv")
	if err != nil {
		return "", fmt.Errorf("%w; it is critical for installing dependencies: %w", ErrUVNotFound, err)
	}
	return p, nil
}

// Install writes reqs to a temporary requirements file and installs it. An empty
// list is a no-op.
func (u *UV) Install(ctx context.Context, reqs []string) (err error) {
	if len(reqs) == 0 {
		return nil
	}
	start := time.Now()
	defer func() {
		u.stats.AfterInstall(&stats.InstallStats{
			Requirements: reqs,
			Runtime:      time.Since(start),
			Error:        err,
		})
	}()

	path, err := writeRequirements(reqs)
	if err != nil {
		return err
	}
	defer os.Remove(path)

	log.Infof("Installing %s", strings.Join(reqs, " "))
	out, err := u.client.Output(ctx, u.uv, "pip", "install", "--python", u.python, "-r", path)
	if err != nil {
		return fmt.Errorf("installing %d requirements: %w", len(reqs), err)
	}
	if s := strings.TrimSpace(string(out)); s != "" {
		log.Debugf("uv output:\n%s", s)
	}
	return nil
}

func writeRequirements(reqs []string) (string, error) {
	f, err := os.CreateTemp("", "uvk-requirements-*.txt")
	if err != nil {
		return "", fmt.Errorf("failed to create requirements file: %w", err)
	}
	_, werr := f.WriteString(strings.Join(reqs, "\n") + "\n")
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write requirements file %s: %w", f.Name(), err)
	}
	return f.Name(), nil
}

var _ Installer = &UV{}
