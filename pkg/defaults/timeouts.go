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

package defaults

import "time"

// Probe timeouts
const (
	// ProbeTimeout is the default timeout for a single hardware probe read.
	// Probes should respect parent context deadlines when shorter.
	ProbeTimeout = 10 * time.Second

	// GPSReadWindow bounds how long the GPS probe listens for a usable
	// NMEA sentence pair on the serial port.
	GPSReadWindow = 3 * time.Second

	// ModemCommandTimeout bounds a single AT command round trip.
	ModemCommandTimeout = 5 * time.Second
)

// Capture timeouts
const (
	// CaptureTimeout bounds assembly of one full snapshot across all probes.
	// Must exceed ProbeTimeout since probes run in parallel.
	CaptureTimeout = 15 * time.Second

	// CaptureHandlerTimeout is the timeout for snapshot capture requests
	// over the HTTP API. Longer than CaptureTimeout to allow error handling.
	CaptureHandlerTimeout = 20 * time.Second
)

// Hardware defaults
const (
	// GPSBaudRate is the NMEA 0183 standard serial rate.
	GPSBaudRate = 9600

	// ModemBaudRate is the usual rate for USB cellular modems.
	ModemBaudRate = 115200
)

// Server timeouts
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)
