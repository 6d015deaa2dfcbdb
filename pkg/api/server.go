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

package api

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/geowitness/geowitness/pkg/capture"
	"github.com/geowitness/geowitness/pkg/config"
	"github.com/geowitness/geowitness/pkg/ledger"
	"github.com/geowitness/geowitness/pkg/serializer"
	"github.com/geowitness/geowitness/pkg/server"
	"github.com/geowitness/geowitness/pkg/version"
)

const name = "geowitnessd"

// Serve starts the API server and blocks until shutdown. It opens the
// custody ledger, wires the device probes from cfg, and handles graceful
// shutdown on SIGINT/SIGTERM.
func Serve(cfg *config.Config) error {
	slog.Info("starting",
		"name", name,
		"version", version.BuildVersion,
		"commit", version.BuildCommit,
	)

	l, err := ledger.Open(cfg.Ledger.Path)
	if err != nil {
		return fmt.Errorf("failed to open custody ledger: %w", err)
	}
	defer l.Close()

	h := &Handlers{
		Capturer: &capture.Capturer{
			Factory: &capture.DefaultFactory{
				GPSPort:       cfg.GPS.Port,
				GPSBaud:       uint(cfg.GPS.Baud),
				GeoIPDB:       cfg.GeoIP.DBPath,
				WifiInterface: cfg.Wifi.Interface,
				ModemDevice:   cfg.Modem.Device,
				ModemBaud:     uint(cfg.Modem.Baud),
			},
		},
		Ledger: l,
	}

	// Daemon publication only makes sense for network destinations; file
	// and stdout outputs belong to the one-shot CLI capture path.
	if strings.HasPrefix(cfg.Output.Destination, serializer.MQTTURIScheme) {
		pub, err := serializer.NewMQTTWriterFromURI(
			cfg.Output.Destination, serializer.Format(cfg.Output.Format))
		if err != nil {
			return fmt.Errorf("failed to connect snapshot publisher: %w", err)
		}
		defer pub.Close()
		h.Publisher = pub
	}

	srvCfg := server.NewConfig()
	srvCfg.Name = name
	srvCfg.Version = version.BuildVersion
	srvCfg.Address = cfg.Server.Address
	srvCfg.Port = cfg.Server.Port
	srvCfg.Handlers = h.Routes()

	srv := server.New(srvCfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(gctx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
