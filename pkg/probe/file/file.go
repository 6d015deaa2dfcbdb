// Copyright (c) 2025, Geowitness Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package file parses small line-oriented system files such as
// /proc/net/wireless, wpa_supplicant status output, and key=value
// configuration fragments.
package file

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Option configures the Parser.
type Option func(*Parser)

// Parser parses line-oriented files with customizable settings.
type Parser struct {
	maxSize      int
	skipComments bool
	kvDelimiter  string
	vTrimChars   string
	headerLines  int
}

// WithMaxSize sets the maximum size (in bytes) of the file to be parsed.
// Default is 1MB.
func WithMaxSize(size int) Option {
	return func(p *Parser) {
		p.maxSize = size
	}
}

// WithSkipComments sets whether to skip lines starting with '#'.
// Default is true.
func WithSkipComments(skip bool) Option {
	return func(p *Parser) {
		p.skipComments = skip
	}
}

// WithKVDelimiter sets the key-value delimiter used by GetMap.
// Default is "=".
func WithKVDelimiter(delim string) Option {
	return func(p *Parser) {
		p.kvDelimiter = delim
	}
}

// WithVTrimChars sets characters trimmed from values in GetMap.
// Default is no trimming.
func WithVTrimChars(chars string) Option {
	return func(p *Parser) {
		p.vTrimChars = chars
	}
}

// WithHeaderLines sets the number of leading lines skipped before parsing.
// Useful for fixed-header proc files such as /proc/net/wireless (2 header
// lines). Default is 0.
func WithHeaderLines(n int) Option {
	return func(p *Parser) {
		p.headerLines = n
	}
}

// NewParser creates a parser with the provided options.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		maxSize:      1 << 20,
		skipComments: true,
		kvDelimiter:  "=",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetLines reads the file at path and returns its non-empty lines, with
// header lines and (optionally) comments removed.
func (p *Parser) GetLines(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	// proc files report size 0; only enforce the cap on regular sizes.
	if info.Size() > int64(p.maxSize) {
		return nil, fmt.Errorf("file %s exceeds maximum size %d bytes", path, p.maxSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) > p.maxSize {
		return nil, fmt.Errorf("file %s exceeds maximum size %d bytes", path, p.maxSize)
	}

	return p.ParseLines(string(data)), nil
}

// ParseLines splits raw content into cleaned lines using the parser's
// settings. It is the non-I/O core of GetLines, usable on command output.
func (p *Parser) ParseLines(content string) []string {
	raw := strings.Split(content, "\n")
	lines := make([]string, 0, len(raw))

	for i, line := range raw {
		if i < p.headerLines {
			continue
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if p.skipComments && strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// GetMap reads the file at path and parses each line into a key-value pair
// split on the configured delimiter. Lines without the delimiter are skipped.
func (p *Parser) GetMap(path string) (map[string]string, error) {
	lines, err := p.GetLines(path)
	if err != nil {
		return nil, err
	}
	return p.ParseMap(lines), nil
}

// ParseMap converts cleaned lines into a key-value map.
func (p *Parser) ParseMap(lines []string) map[string]string {
	result := make(map[string]string, len(lines))
	for _, line := range lines {
		kv := strings.SplitN(line, p.kvDelimiter, 2)
		if len(kv) != 2 {
			slog.Debug("skipping line without delimiter",
				"line", line,
				"delimiter", p.kvDelimiter,
			)
			continue
		}
		key := strings.TrimSpace(kv[0])
		value := strings.TrimSpace(kv[1])
		if p.vTrimChars != "" {
			value = strings.Trim(value, p.vTrimChars)
		}
		result[key] = value
	}
	return result
}

// GetColumns reads the file at path and splits each line into
// whitespace-separated columns, as in fixed-column proc files.
func (p *Parser) GetColumns(path string) ([][]string, error) {
	lines, err := p.GetLines(path)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, strings.Fields(line))
	}
	return rows, nil
}
