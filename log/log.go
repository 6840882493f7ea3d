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

// Package log defines uvk's logger interface. By default it uses the Go logger
// filtered by a verbosity level, but it can be replaced with user-defined loggers.
package log

import "log"

// Logger is uvk's logging interface.
type Logger interface {
	// Logs in different log levels, either formatted or unformatted.
	Errorf(format string, args ...any)
	Error(args ...any)
	Warnf(format string, args ...any)
	Warn(args ...any)
	Infof(format string, args ...any)
	Info(args ...any)
	Debugf(format string, args ...any)
	Debug(args ...any)
}

// Level is the minimum severity a DefaultLogger prints.
type Level int

const (
	// LevelDebug prints everything.
	LevelDebug Level = iota
	// LevelInfo is the default level.
	LevelInfo
	// LevelWarn hides informational chatter.
	LevelWarn
	// LevelError only prints errors.
	LevelError
	// LevelCritical only prints errors that abort the program.
	LevelCritical
)

// LevelFromQuiet maps the number of times the quiet flag was given to a Level.
// A negative count requests debug output.
func LevelFromQuiet(quiet int) Level {
	switch quiet {
	case -1:
		return LevelDebug
	case 0:
		return LevelInfo
	case 1:
		return LevelWarn
	case 2:
		return LevelError
	default:
		return LevelCritical
	}
}

var logger Logger = &DefaultLogger{Level: LevelInfo}

// SetLogger overwrites the default uvk logger with a user specified one.
func SetLogger(l Logger) { logger = l }

// Errorf is the static formatted error logging function.
func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
}

// Warnf is the static formatted warning logging function.
func Warnf(format string, args ...any) {
	logger.Warnf(format, args...)
}

// Infof is the static formatted info logging function.
func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

// Debugf is the static formatted debug logging function.
func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

// Error is the static error logging function.
func Error(args ...any) {
	logger.Error(args...)
}

// Warn is the static warning logging function.
func Warn(args ...any) {
	logger.Warn(args...)
}

// Info is the static info logging function.
func Info(args ...any) {
	logger.Info(args...)
}

// Debug is the static debug logging function.
func Debug(args ...any) {
	logger.Debug(args...)
}

// DefaultLogger is the Logger implementation used by default.
// It logs to stderr using the default Go logger, dropping messages below Level.
type DefaultLogger struct {
	Level Level
}

// Errorf is the formatted error logging function.
func (l *DefaultLogger) Errorf(format string, args ...any) {
	l.printf(LevelError, format, args...)
}

// Warnf is the formatted warning logging function.
func (l *DefaultLogger) Warnf(format string, args ...any) {
	l.printf(LevelWarn, format, args...)
}

// Infof is the formatted info logging function.
func (l *DefaultLogger) Infof(format string, args ...any) {
	l.printf(LevelInfo, format, args...)
}

// Debugf is the formatted debug logging function.
func (l *DefaultLogger) Debugf(format string, args ...any) {
	l.printf(LevelDebug, format, args...)
}

// Error is the error logging function.
func (l *DefaultLogger) Error(args ...any) {
	l.println(LevelError, args...)
}

// Warn is the warning logging function.
func (l *DefaultLogger) Warn(args ...any) {
	l.println(LevelWarn, args...)
}

// Info is the info logging function.
func (l *DefaultLogger) Info(args ...any) {
	l.println(LevelInfo, args...)
}

// Debug is the debug logging function.
func (l *DefaultLogger) Debug(args ...any) {
	l.println(LevelDebug, args...)
}

// Enabled reports whether messages of the given level are printed.
// Errors are always printed at LevelCritical since they abort the program.
func (l *DefaultLogger) Enabled(lvl Level) bool {
	if lvl == LevelError && l.Level == LevelCritical {
		return true
	}
	return lvl >= l.Level
}

func (l *DefaultLogger) printf(lvl Level, format string, args ...any) {
	if l.Enabled(lvl) {
		log.Printf(format, args...)
	}
}

func (l *DefaultLogger) println(lvl Level, args ...any) {
	if l.Enabled(lvl) {
		log.Println(args...)
	}
}
