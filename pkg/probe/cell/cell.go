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

// Package cell counts the cell towers currently visible to the device's
// cellular modem.
//
// The modem is queried over its AT command port. Quectel-style engineering
// queries (AT+QENG) report the serving cell and each neighbour cell as one
// response line; the count of those lines is the visible-cell count. Modems
// without QENG support fall back to network registration state (AT+CREG?),
// which can at least attest the serving cell. When no AT port is configured
// at all, ModemManager (mmcli) is consulted as a last resort.
package cell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	serial "github.com/jacobsa/go-serial/serial"

	"github.com/geowitness/geowitness/pkg/defaults"
	"github.com/geowitness/geowitness/pkg/probe"
)

// Modem probes a cellular modem for visible cells over its AT port.
type Modem struct {
	// Device is the modem AT command port, e.g. /dev/ttyUSB2.
	// An empty device means no modem is configured.
	Device string

	// Baud is the line rate; defaults.ModemBaudRate is used when zero.
	Baud uint

	// Open overrides serial port opening, used in tests.
	Open func() (io.ReadWriteCloser, error)

	// RunMMCLI overrides mmcli execution, used in tests.
	RunMMCLI func(ctx context.Context) (string, error)
}

// VisibleCells implements probe.CellProbe.
func (m *Modem) VisibleCells(ctx context.Context) (int, error) {
	if m.Device == "" && m.Open == nil {
		return countMMCLI(ctx, m.RunMMCLI)
	}

	open := m.Open
	if open == nil {
		open = m.openSerial
	}
	port, err := open()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, probe.ErrUnavailable
		}
		return 0, fmt.Errorf("failed to open modem port %s: %w", m.Device, err)
	}
	defer port.Close()

	s := &session{rw: port}

	count, err := countQENG(ctx, s)
	if err == nil {
		return count, nil
	}
	if !errors.Is(err, errATCommand) {
		return 0, err
	}

	// Engineering query unsupported on this modem; fall back to the
	// registration state, which attests at least the serving cell.
	slog.Debug("QENG unsupported, falling back to CREG", "device", m.Device)
	return countCREG(ctx, s)
}

func (m *Modem) openSerial() (io.ReadWriteCloser, error) {
	baud := m.Baud
	if baud == 0 {
		baud = defaults.ModemBaudRate
	}
	return serial.Open(serial.OpenOptions{
		PortName:              m.Device,
		BaudRate:              baud,
		DataBits:              8,
		StopBits:              1,
		ParityMode:            serial.PARITY_NONE,
		MinimumReadSize:       0,
		InterCharacterTimeout: 500,
	})
}

// countQENG counts serving plus neighbour cells from Quectel engineering
// queries. Each visible cell is one "+QENG:" line.
func countQENG(ctx context.Context, s *session) (int, error) {
	count := 0
	for _, query := range []string{`AT+QENG="servingcell"`, `AT+QENG="neighbourcell"`} {
		lines, err := s.command(ctx, query)
		if err != nil {
			return 0, err
		}
		for _, line := range lines {
			if strings.HasPrefix(line, "+QENG:") {
				count++
			}
		}
	}
	return count, nil
}

// countCREG maps network registration state to a cell count: registered
// (home or roaming) means the serving cell is visible.
func countCREG(ctx context.Context, s *session) (int, error) {
	lines, err := s.command(ctx, "AT+CREG?")
	if err != nil {
		return 0, err
	}

	for _, line := range lines {
		if !strings.HasPrefix(line, "+CREG:") {
			continue
		}
		// Response format: +CREG: <n>,<stat>[,...]
		parts := strings.Split(strings.TrimPrefix(line, "+CREG:"), ",")
		if len(parts) < 2 {
			continue
		}
		stat := strings.TrimSpace(parts[1])
		if stat == "1" || stat == "5" {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("no +CREG response from modem")
}
