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

// Package wifi reads the device's current Wi-Fi association.
//
// Wireless interfaces are discovered from /proc/net/wireless; the current
// association (BSSID and SSID) is read from `iw dev <interface> link`.
// An absent wireless subsystem or an unassociated interface reports
// probe.ErrUnavailable; a failing query reports a real error.
package wifi

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/geowitness/geowitness/pkg/probe"
	"github.com/geowitness/geowitness/pkg/probe/file"
)

const procNetWireless = "/proc/net/wireless"

// Station probes the current Wi-Fi association of one wireless interface.
type Station struct {
	// Interface is the wireless interface to query, e.g. "wlan0".
	// When empty, the first interface listed in /proc/net/wireless is used.
	Interface string

	// ProcPath overrides the /proc/net/wireless location, used in tests.
	ProcPath string

	// RunLink overrides `iw dev <interface> link` execution, used in tests.
	RunLink func(ctx context.Context, iface string) (string, error)
}

// Association implements probe.WifiProbe. It returns the current network
// formatted as "SSID:<ssid>,BSSID:<bssid>".
func (s *Station) Association(ctx context.Context) (string, error) {
	iface := s.Interface
	if iface == "" {
		detected, err := s.detectInterface()
		if err != nil {
			return "", err
		}
		iface = detected
	}

	run := s.RunLink
	if run == nil {
		run = runIWLink
	}
	out, err := run(ctx, iface)
	if err != nil {
		return "", fmt.Errorf("failed to query link on %s: %w", iface, err)
	}

	return parseLink(out)
}

// detectInterface returns the first wireless interface the kernel reports.
func (s *Station) detectInterface() (string, error) {
	path := s.ProcPath
	if path == "" {
		path = procNetWireless
	}

	// Two fixed header lines precede the per-interface rows.
	parser := file.NewParser(file.WithHeaderLines(2))
	rows, err := parser.GetColumns(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", probe.ErrUnavailable
		}
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		name := strings.TrimSuffix(row[0], ":")
		if name != "" {
			return name, nil
		}
	}
	return "", probe.ErrUnavailable
}

// parseLink extracts the BSSID and SSID from `iw dev <if> link` output:
//
//	Connected to aa:bb:cc:dd:ee:ff (on wlan0)
//	        SSID: field-network
//	        freq: 2437
//	        ...
//
// An unassociated interface prints "Not connected." instead.
func parseLink(out string) (string, error) {
	var bssid, ssid string

	for _, line := range file.NewParser().ParseLines(out) {
		switch {
		case strings.HasPrefix(line, "Not connected"):
			return "", probe.ErrUnavailable
		case strings.HasPrefix(line, "Connected to "):
			fields := strings.Fields(line)
			if len(fields) >= 3 {
				bssid = fields[2]
			}
		case strings.HasPrefix(line, "SSID:"):
			ssid = strings.TrimSpace(strings.TrimPrefix(line, "SSID:"))
		}
	}

	if bssid == "" {
		return "", probe.ErrUnavailable
	}
	return fmt.Sprintf("SSID:%s,BSSID:%s", ssid, bssid), nil
}

// runIWLink executes `iw dev <iface> link`. iw exits 0 even when the
// interface is not associated, so every non-zero exit is a real error.
func runIWLink(ctx context.Context, iface string) (string, error) {
	out, err := exec.CommandContext(ctx, "iw", "dev", iface, "link").Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}
