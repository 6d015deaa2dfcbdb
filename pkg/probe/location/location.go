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
	"log/slog"

	"github.com/geowitness/geowitness/pkg/probe"
)

// Chain tries location sources in order and returns the first fix.
// The satellite source goes first, the network source last.
type Chain struct {
	Sources []probe.LocationProbe
}

// NewChain builds the standard satellite-then-network chain.
func NewChain(sources ...probe.LocationProbe) *Chain {
	return &Chain{Sources: sources}
}

// LastKnown implements probe.LocationProbe. Sources are tried in order;
// an unavailable source moves on silently, a failing source is logged and
// moved past. When no source yields a fix, probe.ErrUnavailable is returned.
func (c *Chain) LastKnown(ctx context.Context) (*probe.Fix, error) {
	for _, src := range c.Sources {
		fix, err := src.LastKnown(ctx)
		if err == nil {
			return fix, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		if !errors.Is(err, probe.ErrUnavailable) {
			slog.Warn("location source failed, trying next", "error", err)
		}
	}
	return nil, probe.ErrUnavailable
}
