/*
Copyright © 2025 Geowitness Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/geowitness/geowitness/pkg/logging"
	"github.com/geowitness/geowitness/pkg/version"
)

const name = "geowitness"

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to YAML config file (default: ./geowitness.yaml if present)",
		Sources: cli.EnvVars("GEOWITNESS_CONFIG"),
	}

	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output destination: stdout (-), file path, or mqtt://host:port/topic",
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: json, yaml, or table",
		Value:   "json",
	}

	logLevelFlag = &cli.StringFlag{
		Name:    "log-level",
		Usage:   "Log level: debug, info, warn, error",
		Sources: cli.EnvVars(logging.LevelEnvVar),
		Value:   "info",
	}
)

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               version.BuildVersion,
		EnableShellCompletion: true,
		Usage:                 "Tamper-evident location and network evidence capture",
		Description: `geowitness captures the device's last-known location together with its
Wi-Fi association and visible cell towers into an immutable, digest-sealed
snapshot record. Records can be written to stdout, files, or an MQTT
broker, and appended to a hash-chained custody ledger for later
verification.`,
		Flags: []cli.Flag{
			configFlag,
			logLevelFlag,
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(
				name, version.BuildVersion, cmd.String("log-level"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			captureCmd(),
			verifyCmd(),
			ledgerCmd(),
			serveCmd(),
		},
	}
}

// Execute runs the CLI. It is called by main and installs signal handling
// for graceful interruption of long captures.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
