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

package log_test

import (
	"bytes"
	stdlog "log"
	"os"
	"strings"
	"testing"

	"github.com/google/uvk/log"
)

func TestLevelFromQuiet(t *testing.T) {
	tests := []struct {
		quiet int
		want  log.Level
	}{
		{quiet: -1, want: log.LevelDebug},
		{quiet: 0, want: log.LevelInfo},
		{quiet: 1, want: log.LevelWarn},
		{quiet: 2, want: log.LevelError},
		{quiet: 3, want: log.LevelCritical},
		{quiet: 12, want: log.LevelCritical},
	}
	for _, tc := range tests {
		if got := log.LevelFromQuiet(tc.quiet); got != tc.want {
			t.Errorf("LevelFromQuiet(%d) = %v, want %v", tc.quiet, got, tc.want)
		}
	}
}

func TestDefaultLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	stdlog.SetOutput(&buf)
	flags := stdlog.Flags()
	stdlog.SetFlags(0)
	defer func() {
		stdlog.SetOutput(os.Stderr)
		stdlog.SetFlags(flags)
	}()

	l := &log.DefaultLogger{Level: log.LevelWarn}
	l.Debugf("debug %d", 1)
	l.Infof("info %d", 2)
	l.Warnf("warn %d", 3)
	l.Error("error", 4)

	got := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{"warn 3", "error 4"}
	if len(got) != len(want) {
		t.Fatalf("DefaultLogger printed %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCriticalLevelStillPrintsErrors(t *testing.T) {
	l := &log.DefaultLogger{Level: log.LevelCritical}
	if l.Enabled(log.LevelWarn) {
		t.Errorf("Enabled(LevelWarn) = true at LevelCritical, want false")
	}
	if !l.Enabled(log.LevelError) {
		t.Errorf("Enabled(LevelError) = false at LevelCritical, want true")
	}
}
