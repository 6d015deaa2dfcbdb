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

package capture

import (
	"github.com/geowitness/geowitness/pkg/probe"
	"github.com/geowitness/geowitness/pkg/probe/cell"
	"github.com/geowitness/geowitness/pkg/probe/location"
	"github.com/geowitness/geowitness/pkg/probe/wifi"
)

// DefaultFactory creates probes wired to real devices. Zero-value fields
// leave the corresponding subsystem unconfigured; its probe falls back to
// host discovery (wifi interface autodetect, ModemManager) or reports
// unavailable.
type DefaultFactory struct {
	// GPS receiver serial port and baud rate.
	GPSPort string
	GPSBaud uint

	// GeoIPDB is the path to a MaxMind city database for the network
	// location fallback.
	GeoIPDB string

	// WifiInterface is the wireless interface to query; autodetected from
	// /proc/net/wireless when empty.
	WifiInterface string

	// Cellular modem AT port and baud rate.
	ModemDevice string
	ModemBaud   uint
}

// CreateLocationProbe returns the satellite-then-network location chain.
func (f *DefaultFactory) CreateLocationProbe() probe.LocationProbe {
	return location.NewChain(
		&location.SerialGPS{Port: f.GPSPort, Baud: f.GPSBaud},
		&location.GeoIP{DBPath: f.GeoIPDB},
	)
}

// CreateWifiProbe returns the Wi-Fi association probe.
func (f *DefaultFactory) CreateWifiProbe() probe.WifiProbe {
	return &wifi.Station{Interface: f.WifiInterface}
}

// CreateCellProbe returns the cellular modem probe.
func (f *DefaultFactory) CreateCellProbe() probe.CellProbe {
	return &cell.Modem{Device: f.ModemDevice, Baud: f.ModemBaud}
}
