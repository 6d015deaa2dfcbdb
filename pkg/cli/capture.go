/*
Copyright © 2025 Geowitness Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/geowitness/geowitness/pkg/capture"
	"github.com/geowitness/geowitness/pkg/config"
	"github.com/geowitness/geowitness/pkg/defaults"
	"github.com/geowitness/geowitness/pkg/ledger"
	"github.com/geowitness/geowitness/pkg/serializer"
)

func captureCmd() *cli.Command {
	return &cli.Command{
		Name:                  "capture",
		EnableShellCompletion: true,
		Usage:                 "Capture one snapshot of location and network context",
		Description: `Capture queries the configured device probes in parallel:
  - GPS receiver (serial NMEA), with GeoIP network fallback
  - Wi-Fi association (SSID and BSSID of the connected network)
  - Cellular modem (count of visible cell towers)

Probes that are absent or fail degrade to sentinel values; the capture
itself never fails. The assembled record is sealed with a SHA-512 digest
and written in JSON, YAML, or table format.

# Examples

Capture to stdout:
  geowitness capture

Capture to a file and append to the custody ledger:
  geowitness capture --output evidence.json --record

Publish to an MQTT broker:
  geowitness capture --output mqtt://broker:1883/geowitness/snapshots`,
		Flags: []cli.Flag{
			outputFlag,
			formatFlag,
			&cli.BoolFlag{
				Name:  "record",
				Usage: "Also append the snapshot to the custody ledger",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat := serializer.Format(cmd.String("format"))
			if outFormat.IsUnknown() {
				return fmt.Errorf("unknown output format: %q (supported: %v)",
					outFormat, serializer.SupportedFormats())
			}

			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				return err
			}

			out := serializer.NewWriterForOutput(outFormat, cmd.String("output"))
			defer func() {
				if err := serializer.CloseIfCloser(out); err != nil {
					slog.Warn("failed to close output", "error", err)
				}
			}()

			c := &capture.Capturer{
				Factory:    factoryFromConfig(cfg),
				Serializer: out,
			}

			captureCtx, cancel := context.WithTimeout(ctx, defaults.CaptureTimeout)
			defer cancel()

			s, err := c.Run(captureCtx)
			if err != nil {
				return err
			}

			if cmd.Bool("record") {
				l, err := ledger.Open(cfg.Ledger.Path)
				if err != nil {
					return fmt.Errorf("failed to open custody ledger: %w", err)
				}
				defer l.Close()

				entry, err := l.Append(ctx, s)
				if err != nil {
					return fmt.Errorf("failed to record snapshot: %w", err)
				}
				slog.Info("snapshot recorded",
					"snapshot", s.ID,
					"seq", entry.Seq,
				)
			}

			return nil
		},
	}
}

func factoryFromConfig(cfg *config.Config) *capture.DefaultFactory {
	return &capture.DefaultFactory{
		GPSPort:       cfg.GPS.Port,
		GPSBaud:       uint(cfg.GPS.Baud),
		GeoIPDB:       cfg.GeoIP.DBPath,
		WifiInterface: cfg.Wifi.Interface,
		ModemDevice:   cfg.Modem.Device,
		ModemBaud:     uint(cfg.Modem.Baud),
	}
}
