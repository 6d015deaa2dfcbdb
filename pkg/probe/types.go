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

package probe

import (
	"context"
	"time"

	"github.com/geowitness/geowitness/pkg/errors"
)

// ErrUnavailable indicates the probed subsystem is absent, disabled, or not
// configured. Callers should treat it as "no reading" rather than a failure.
var ErrUnavailable error = errors.New(errors.ErrCodeProbeUnavailable, "subsystem unavailable")

// Provider names for location fixes.
const (
	ProviderGPS     = "gps"
	ProviderNetwork = "network"
)

// Fix is a single last-known position reading.
type Fix struct {
	// Latitude and Longitude are in decimal degrees.
	Latitude  float64
	Longitude float64

	// Accuracy is the horizontal accuracy radius in meters, 0 when the
	// source cannot estimate it.
	Accuracy float64

	// Time is when the fix was obtained.
	Time time.Time

	// Provider names the source that produced the fix.
	Provider string
}

// LocationProbe yields the device's last-known position.
type LocationProbe interface {
	// LastKnown returns the most recent fix, or ErrUnavailable when no
	// source could produce one.
	LastKnown(ctx context.Context) (*Fix, error)
}

// WifiProbe yields the current Wi-Fi association.
type WifiProbe interface {
	// Association returns "SSID:<ssid>,BSSID:<bssid>" for the currently
	// associated network. It returns ErrUnavailable when the interface is
	// absent, down, or not associated.
	Association(ctx context.Context) (string, error)
}

// CellProbe yields the number of currently visible cell towers.
type CellProbe interface {
	// VisibleCells returns the count of cells the modem currently sees.
	// It returns ErrUnavailable when no modem is configured.
	VisibleCells(ctx context.Context) (int, error)
}
