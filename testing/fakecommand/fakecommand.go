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

// Package fakecommand provides a command.Client that answers from canned outputs
// instead of running programs.
package fakecommand

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// HandlerFunc computes the result of a command.
type HandlerFunc func(name string, args []string) ([]byte, error)

// Client implements command.Client. Commands are looked up in Outputs by their
// command line (name and args joined by spaces); unknown ones go to Handler.
type Client struct {
	Outputs map[string]string
	Handler HandlerFunc

	mu    sync.Mutex
	calls [][]string
}

// New returns a fake client answering the given command lines.
func New(outputs map[string]string) *Client {
	return &Client{Outputs: outputs}
}

// Output implements command.Client.
func (c *Client) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	c.mu.Lock()
	c.calls = append(c.calls, append([]string{name}, args...))
	c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cmdline := strings.Join(append([]string{name}, args...), " ")
	if out, ok := c.Outputs[cmdline]; ok {
		return []byte(out), nil
	}
	if c.Handler != nil {
		return c.Handler(name, args)
	}
	return nil, fmt.Errorf("fakecommand: unexpected command `%s`", cmdline)
}

// Calls returns every command run so far, name first.
func (c *Client) Calls() [][]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]string(nil), c.calls...)
}
