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

	"github.com/geowitness/geowitness/pkg/config"
	"github.com/geowitness/geowitness/pkg/ledger"
	"github.com/geowitness/geowitness/pkg/serializer"
)

func ledgerCmd() *cli.Command {
	return &cli.Command{
		Name:                  "ledger",
		EnableShellCompletion: true,
		Usage:                 "Inspect and verify the custody ledger",
		Commands: []*cli.Command{
			ledgerListCmd(),
			ledgerVerifyCmd(),
		},
	}
}

func ledgerListCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List recorded snapshot entries in append order",
		Flags: []cli.Flag{
			outputFlag,
			formatFlag,
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of entries to list (0 = all)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat := serializer.Format(cmd.String("format"))
			if outFormat.IsUnknown() {
				return fmt.Errorf("unknown output format: %q (supported: %v)",
					outFormat, serializer.SupportedFormats())
			}

			l, err := openLedger(cmd)
			if err != nil {
				return err
			}
			defer l.Close()

			entries, err := l.List(ctx, int(cmd.Int("limit")))
			if err != nil {
				return err
			}

			out := serializer.NewWriterForOutput(outFormat, cmd.String("output"))
			defer func() {
				if err := serializer.CloseIfCloser(out); err != nil {
					slog.Warn("failed to close output", "error", err)
				}
			}()
			return out.Serialize(ctx, entries)
		},
	}
}

func ledgerVerifyCmd() *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "Verify the hash chain across all recorded entries",
		Description: `Walks every ledger entry in sequence, recomputing each snapshot
digest and each chain link. Any edited, removed, or reordered entry
breaks the chain and is reported with its sequence number.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			l, err := openLedger(cmd)
			if err != nil {
				return err
			}
			defer l.Close()

			n, err := l.Count(ctx)
			if err != nil {
				return err
			}
			if err := l.VerifyChain(ctx); err != nil {
				return err
			}

			fmt.Printf("custody chain verified: %d entries intact\n", n)
			return nil
		},
	}
}

func openLedger(cmd *cli.Command) (*ledger.Ledger, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	l, err := ledger.Open(cfg.Ledger.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open custody ledger: %w", err)
	}
	return l, nil
}
