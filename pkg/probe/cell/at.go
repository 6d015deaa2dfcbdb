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

package cell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/geowitness/geowitness/pkg/defaults"
)

// errATCommand is returned when the modem answers ERROR or +CME ERROR.
var errATCommand = errors.New("modem rejected command")

// session issues AT commands over an open modem port and collects the
// response lines. The underlying port provides read timeouts (serial
// inter-character timeout), so reads terminate even on a silent modem.
type session struct {
	rw io.ReadWriter
}

// command writes cmd to the modem and reads response lines until the final
// OK or ERROR result code. The echoed command and blank lines are dropped.
// Each round trip is bounded by defaults.ModemCommandTimeout.
func (s *session) command(ctx context.Context, cmd string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.ModemCommandTimeout)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := io.WriteString(s.rw, cmd+"\r\n"); err != nil {
		return nil, fmt.Errorf("failed to write %q: %w", cmd, err)
	}

	var lines []string
	scanner := bufio.NewScanner(s.rw)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "" || line == cmd:
			continue
		case line == "OK":
			return lines, nil
		case line == "ERROR" || strings.HasPrefix(line, "+CME ERROR") || strings.HasPrefix(line, "+CMS ERROR"):
			return nil, fmt.Errorf("%w: %s -> %s", errATCommand, cmd, line)
		default:
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("modem read error: %w", err)
	}
	return nil, fmt.Errorf("modem closed stream before final result for %q", cmd)
}
