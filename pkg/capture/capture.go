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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/geowitness/geowitness/pkg/defaults"
	"github.com/geowitness/geowitness/pkg/probe"
	"github.com/geowitness/geowitness/pkg/serializer"
	"github.com/geowitness/geowitness/pkg/snapshot"
)

// Capturer produces GeoSnapshot records from the device probes.
type Capturer struct {
	// Factory is the probe factory to use. If nil, an unconfigured
	// DefaultFactory is used.
	Factory probe.Factory

	// Serializer is the output serializer used by Run. If nil, a stdout
	// JSON serializer is used.
	Serializer serializer.Serializer
}

// Capture queries all probes concurrently and assembles the snapshot.
// It cannot fail: every probe failure degrades to a sentinel value.
func (c *Capturer) Capture(ctx context.Context) *snapshot.GeoSnapshot {
	if c.Factory == nil {
		c.Factory = &DefaultFactory{}
	}

	slog.Debug("starting capture")

	start := time.Now()
	defer func() {
		captureDuration.Observe(time.Since(start).Seconds())
	}()

	var (
		mu sync.Mutex
		f  = snapshot.Fields{
			Provider: snapshot.ProviderUnknown,
			WifiInfo: snapshot.SentinelWifiUnavailable,
			CellInfo: snapshot.SentinelCellUnavailable,
		}
	)

	// Probe errors are absorbed into sentinels inside each goroutine, so
	// the group never returns one; it only bounds the concurrent queries.
	// Each probe gets its own defaults.ProbeTimeout deadline.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		pctx, cancel := context.WithTimeout(gctx, defaults.ProbeTimeout)
		defer cancel()

		probeStart := time.Now()
		defer func() {
			probeDuration.WithLabelValues("location").Observe(time.Since(probeStart).Seconds())
		}()

		fix, err := c.Factory.CreateLocationProbe().LastKnown(pctx)
		if err != nil {
			if !errors.Is(err, probe.ErrUnavailable) {
				slog.Warn("location probe failed", "error", err)
			}
			probeDegraded.WithLabelValues("location").Inc()
			return nil
		}
		mu.Lock()
		f.Latitude = fix.Latitude
		f.Longitude = fix.Longitude
		f.Accuracy = fix.Accuracy
		f.Provider = fix.Provider
		f.Timestamp = fix.Time.UnixMilli()
		mu.Unlock()
		slog.Debug("obtained location fix", "provider", fix.Provider)
		return nil
	})

	g.Go(func() error {
		pctx, cancel := context.WithTimeout(gctx, defaults.ProbeTimeout)
		defer cancel()

		probeStart := time.Now()
		defer func() {
			probeDuration.WithLabelValues("wifi").Observe(time.Since(probeStart).Seconds())
		}()

		info, err := c.Factory.CreateWifiProbe().Association(pctx)
		mu.Lock()
		defer mu.Unlock()
		switch {
		case err == nil:
			f.WifiInfo = info
		case errors.Is(err, probe.ErrUnavailable):
			f.WifiInfo = snapshot.SentinelWifiUnavailable
			probeDegraded.WithLabelValues("wifi").Inc()
		default:
			slog.Warn("wifi probe failed", "error", err)
			f.WifiInfo = snapshot.SentinelWifiError
			probeDegraded.WithLabelValues("wifi").Inc()
		}
		return nil
	})

	g.Go(func() error {
		pctx, cancel := context.WithTimeout(gctx, defaults.ProbeTimeout)
		defer cancel()

		probeStart := time.Now()
		defer func() {
			probeDuration.WithLabelValues("cell").Observe(time.Since(probeStart).Seconds())
		}()

		count, err := c.Factory.CreateCellProbe().VisibleCells(pctx)
		mu.Lock()
		defer mu.Unlock()
		switch {
		case err == nil:
			f.CellInfo = "cells:" + strconv.Itoa(count)
		case errors.Is(err, probe.ErrUnavailable):
			f.CellInfo = snapshot.SentinelCellUnavailable
			probeDegraded.WithLabelValues("cell").Inc()
		default:
			slog.Warn("cell probe failed", "error", err)
			f.CellInfo = snapshot.SentinelCellError
			probeDegraded.WithLabelValues("cell").Inc()
		}
		return nil
	})

	// Wait cannot fail; see above.
	_ = g.Wait()

	if f.Timestamp == 0 {
		// No fix: the record carries the capture time instead.
		f.Timestamp = time.Now().UnixMilli()
	}

	captureTotal.Inc()

	s := snapshot.New(f)
	slog.Debug("capture complete",
		"id", s.ID,
		"provider", s.Provider,
		"digest", s.Digest[:16],
	)
	return s
}

// Run captures one snapshot and serializes it with the configured
// Serializer. This is the entry point used by the CLI.
func (c *Capturer) Run(ctx context.Context) (*snapshot.GeoSnapshot, error) {
	s := c.Capture(ctx)

	if c.Serializer == nil {
		c.Serializer = serializer.NewStdoutWriter(serializer.FormatJSON)
	}
	if err := c.Serializer.Serialize(ctx, s); err != nil {
		slog.Error("failed to serialize snapshot", "error", err)
		return nil, fmt.Errorf("failed to serialize: %w", err)
	}
	return s, nil
}
