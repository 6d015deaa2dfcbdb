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
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/geowitness/geowitness/pkg/probe"
)

// countMMCLI queries ModemManager for the modem state. mmcli exposes no
// neighbour-cell survey, so a registered or connected modem attests only
// the serving cell.
func countMMCLI(ctx context.Context, run func(ctx context.Context) (string, error)) (int, error) {
	if run == nil {
		run = runMMCLI
	}
	out, err := run(ctx)
	if err != nil {
		// Neither a modem port nor ModemManager on this device.
		if errors.Is(err, exec.ErrNotFound) {
			return 0, probe.ErrUnavailable
		}
		return 0, fmt.Errorf("failed to query mmcli: %w", err)
	}
	return parseMMState(out)
}

// parseMMState reads the modem.generic.state key from the keyvalue output:
//
//	modem.generic.state                : connected
func parseMMState(out string) (int, error) {
	for _, line := range strings.Split(out, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found || strings.TrimSpace(key) != "modem.generic.state" {
			continue
		}
		switch strings.TrimSpace(value) {
		case "registered", "connected":
			return 1, nil
		default:
			return 0, probe.ErrUnavailable
		}
	}
	return 0, probe.ErrUnavailable
}

func runMMCLI(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "mmcli", "-m", "any", "--output-keyvalue").Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}
