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

package location

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	nmea "github.com/adrianmo/go-nmea"
	serial "github.com/jacobsa/go-serial/serial"

	"github.com/geowitness/geowitness/pkg/defaults"
	"github.com/geowitness/geowitness/pkg/probe"
)

// hdopUERE converts HDOP to an accuracy radius estimate in meters,
// using a typical GPS user-equivalent range error of 5m.
const hdopUERE = 5.0

// SerialGPS reads NMEA sentences from a serial GPS receiver and yields the
// first valid fix seen within the read window.
type SerialGPS struct {
	// Port is the serial device path, e.g. /dev/ttyUSB0 or /dev/serial0.
	// An empty port means no GPS is configured.
	Port string

	// Baud is the line rate; defaults.GPSBaudRate is used when zero.
	Baud uint

	// ReadWindow bounds how long LastKnown listens for a fix.
	ReadWindow time.Duration
}

// LastKnown implements probe.LocationProbe. It opens the serial port, reads
// sentences until a valid RMC is seen or the window elapses, and returns the
// fix. A missing or unconfigured device reports probe.ErrUnavailable.
func (g *SerialGPS) LastKnown(ctx context.Context) (*probe.Fix, error) {
	if g.Port == "" {
		return nil, probe.ErrUnavailable
	}

	baud := g.Baud
	if baud == 0 {
		baud = defaults.GPSBaudRate
	}

	port, err := serial.Open(serial.OpenOptions{
		PortName:              g.Port,
		BaudRate:              baud,
		DataBits:              8,
		StopBits:              1,
		ParityMode:            serial.PARITY_NONE,
		MinimumReadSize:       0,
		InterCharacterTimeout: 500,
	})
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, probe.ErrUnavailable
		}
		return nil, fmt.Errorf("failed to open GPS port %s: %w", g.Port, err)
	}
	defer port.Close()

	window := g.ReadWindow
	if window <= 0 {
		window = defaults.GPSReadWindow
	}

	return readFix(ctx, port, window)
}

// readFix scans NMEA sentences from r until a valid RMC is available or the
// window elapses. GGA sentences seen along the way contribute the HDOP-based
// accuracy estimate.
func readFix(ctx context.Context, r io.Reader, window time.Duration) (*probe.Fix, error) {
	deadline := time.Now().Add(window)
	scanner := bufio.NewScanner(r)

	var (
		fix      *probe.Fix
		accuracy float64
	)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if time.Now().After(deadline) {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.HasPrefix(line, "$") {
			continue
		}

		sentence, err := nmea.Parse(line)
		if err != nil {
			// Partial sentences are routine on a cold receiver.
			slog.Debug("skipping unparsable NMEA sentence", "error", err)
			continue
		}

		switch sentence.DataType() {
		case nmea.TypeRMC:
			rmc := sentence.(nmea.RMC)
			if rmc.Validity != nmea.ValidRMC {
				continue
			}
			fix = &probe.Fix{
				Latitude:  rmc.Latitude,
				Longitude: rmc.Longitude,
				Time:      rmcTime(rmc),
				Provider:  probe.ProviderGPS,
			}
			if accuracy > 0 {
				fix.Accuracy = accuracy
				return fix, nil
			}
			// Keep reading briefly in case a GGA with HDOP follows.

		case nmea.TypeGGA:
			gga := sentence.(nmea.GGA)
			if gga.HDOP > 0 {
				accuracy = gga.HDOP * hdopUERE
			}
			if fix != nil {
				fix.Accuracy = accuracy
				return fix, nil
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("GPS read error: %w", err)
	}
	if fix != nil {
		return fix, nil
	}
	return nil, probe.ErrUnavailable
}

// rmcTime combines the RMC date and time-of-day fields into a UTC timestamp.
// When the receiver has no date yet, the current time is used.
//
// The RMC date carries a two-digit year. Years 80-99 are read as 19xx:
// receivers that have fallen over a GPS week-number rollover report dates
// back in the 1980s-90s, and 20xx-only mapping would seal a fix time a
// century in the future.
func rmcTime(rmc nmea.RMC) time.Time {
	if !rmc.Date.Valid || !rmc.Time.Valid {
		return time.Now().UTC()
	}
	year := 2000 + rmc.Date.YY
	if rmc.Date.YY >= 80 {
		year = 1900 + rmc.Date.YY
	}
	return time.Date(
		year, time.Month(rmc.Date.MM), rmc.Date.DD,
		rmc.Time.Hour, rmc.Time.Minute, rmc.Time.Second,
		rmc.Time.Millisecond*int(time.Millisecond),
		time.UTC,
	)
}
