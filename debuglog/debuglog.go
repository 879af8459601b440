//
// Copyright 2024 The dpmean Authors
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
//

// Package debuglog is a small diagnostic channel controlled by the DEBUG
// environment variable.
//
// DEBUG holds a comma separated list of options:
//
//	debug      enable debugging output ("1" is accepted as an alias)
//	context    prefix every debugging message with the caller's file:line
//	timestamp  prefix every debugging message with the current time
//	nocolor    do not use ANSI colors
//
// For example:
//
//	DEBUG=debug,context,timestamp dpmean gdp-2024.csv 2 -1000 1000
//
// Debugging output never changes computed results.
package debuglog

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// EnvVar is the environment variable read by FromEnvironment.
const EnvVar = "DEBUG"

const (
	timestampLayout = "2006-01-02 15:04:05.000000"
	maxContextFile  = 20
)

// Options controls what a Logger writes.
type Options struct {
	Enabled   bool
	Context   bool
	Timestamp bool
	Color     bool
}

// ParseOptions parses a DEBUG value such as "debug,context,nocolor".
// Unknown options are ignored.
func ParseOptions(value string) Options {
	opts := Options{Color: true}
	for _, o := range strings.Split(value, ",") {
		switch strings.TrimSpace(o) {
		case "debug", "1":
			opts.Enabled = true
		case "context":
			opts.Context = true
		case "timestamp":
			opts.Timestamp = true
		case "nocolor":
			opts.Color = false
		}
	}
	return opts
}

// FromEnvironment loads .env from the working directory, if present, and
// parses the DEBUG variable.
func FromEnvironment() Options {
	// A missing .env is not an error.
	_ = godotenv.Load()
	return ParseOptions(os.Getenv(EnvVar))
}

// Logger writes debugging messages to out and errors and notes to errOut.
// A nil *Logger discards everything.
type Logger struct {
	opts   Options
	out    io.Writer
	errOut io.Writer
	now    func() time.Time
}

// New returns a Logger. When debugging is enabled it announces itself with a
// first debugging message.
func New(opts Options, out, errOut io.Writer) *Logger {
	l := &Logger{opts: opts, out: out, errOut: errOut, now: time.Now}
	l.output(2, "Debugging is enabled")
	return l
}

// NewFromEnvironment returns a Logger configured by FromEnvironment that
// writes to standard output and standard error.
func NewFromEnvironment() *Logger {
	return New(FromEnvironment(), os.Stdout, os.Stderr)
}

// Enabled reports whether debugging messages are written.
func (l *Logger) Enabled() bool {
	return l != nil && l.opts.Enabled
}

// Debugf writes a debugging message if debugging is enabled.
func (l *Logger) Debugf(format string, args ...any) {
	l.output(2, format, args...)
}

func (l *Logger) output(calldepth int, format string, args ...any) {
	if !l.Enabled() {
		return
	}
	var b strings.Builder
	if l.opts.Color {
		b.WriteString("\x1b[32m\x1b[1mDEBUG\x1b[0m: ")
	} else {
		b.WriteString("DEBUG: ")
	}
	if l.opts.Timestamp {
		b.WriteString(l.now().Format(timestampLayout))
		b.WriteByte(' ')
	}
	if l.opts.Context {
		if _, file, line, ok := runtime.Caller(calldepth); ok {
			fmt.Fprintf(&b, "%s:%d: ", shortenFile(file), line)
		}
	}
	fmt.Fprintf(&b, format, args...)
	b.WriteByte('\n')
	io.WriteString(l.out, b.String())
}

// Errorf writes an error message, whether or not debugging is enabled.
func (l *Logger) Errorf(format string, args ...any) {
	if l == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if l.opts.Color {
		fmt.Fprintf(l.errOut, "\x1b[31m\x1b[1mError\x1b[0m\x1b[1m: %s\x1b[0m\n", msg)
		return
	}
	fmt.Fprintf(l.errOut, "Error: %s\n", msg)
}

// Notef writes an informational message under tag, whether or not debugging
// is enabled.
func (l *Logger) Notef(tag, format string, args ...any) {
	if l == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if l.opts.Color {
		fmt.Fprintf(l.errOut, "\x1b[34m\x1b[1m%s\x1b[0m: %s\x1b[0m\n", tag, msg)
		return
	}
	fmt.Fprintf(l.errOut, "%s: %s\n", tag, msg)
}

func shortenFile(file string) string {
	if len(file) > maxContextFile {
		return "..." + file[len(file)-maxContextFile:]
	}
	return file
}
