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
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/oschwald/geoip2-golang"

	"github.com/geowitness/geowitness/pkg/probe"
)

// GeoIP resolves a coarse network fix by looking up the device's outbound
// IP address in a local MaxMind city database. It is the fallback source
// when no satellite fix is available.
type GeoIP struct {
	// DBPath is the path to a GeoLite2/GeoIP2 City mmdb file. Empty means
	// the network source is not configured.
	DBPath string

	// LookupIP overrides outbound IP resolution, used in tests.
	LookupIP func() (net.IP, error)
}

// LastKnown implements probe.LocationProbe.
func (g *GeoIP) LastKnown(ctx context.Context) (*probe.Fix, error) {
	if g.DBPath == "" {
		return nil, probe.ErrUnavailable
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	db, err := geoip2.Open(g.DBPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, probe.ErrUnavailable
		}
		return nil, fmt.Errorf("failed to open geoip database %s: %w", g.DBPath, err)
	}
	defer db.Close()

	lookup := g.LookupIP
	if lookup == nil {
		lookup = outboundIP
	}
	ip, err := lookup()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve outbound address: %w", err)
	}

	city, err := db.City(ip)
	if err != nil {
		return nil, fmt.Errorf("geoip lookup failed for %s: %w", ip, err)
	}

	loc := city.Location
	if loc.Latitude == 0 && loc.Longitude == 0 {
		// Private or unmapped addresses resolve to the zero location.
		return nil, probe.ErrUnavailable
	}

	return &probe.Fix{
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		// AccuracyRadius is in kilometers.
		Accuracy: float64(loc.AccuracyRadius) * 1000,
		Time:     time.Now().UTC(),
		Provider: probe.ProviderNetwork,
	}, nil
}

// outboundIP returns the local address the kernel would use for outbound
// traffic. No packets are sent; the dial only selects a route.
func outboundIP() (net.IP, error) {
	conn, err := net.Dial("udp", "198.51.100.1:53")
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return nil, fmt.Errorf("unexpected local address type %T", conn.LocalAddr())
	}
	return addr.IP, nil
}
