/*
Copyright © 2025 Geowitness Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/geowitness/geowitness/pkg/api"
	"github.com/geowitness/geowitness/pkg/config"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:                  "serve",
		EnableShellCompletion: true,
		Usage:                 "Run the snapshot API server",
		Description: `Serve runs the geowitness daemon: an HTTP API exposing on-demand
snapshot capture, custody ledger listing, and verification.

Endpoints:
  POST /v1/snapshots              capture and record a snapshot
  GET  /v1/snapshots              list recorded entries
  GET  /v1/snapshots/{id}/verify  re-verify one record
  GET  /v1/ledger/verify          verify the whole custody chain
  GET  /health, /ready, /metrics  operational endpoints`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "port",
				Usage: "Listen port (overrides config)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				return err
			}
			if port := cmd.Int("port"); port > 0 {
				cfg.Server.Port = int(port)
			}
			return api.Serve(cfg)
		},
	}
}
