/*
Copyright © 2025 Geowitness Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/geowitness/geowitness/pkg/serializer"
)

func verifyCmd() *cli.Command {
	return &cli.Command{
		Name:                  "verify",
		EnableShellCompletion: true,
		Usage:                 "Verify the integrity of a snapshot record file",
		ArgsUsage:             "<snapshot-file>",
		Description: `Verify recomputes the digest over a previously captured snapshot
record and compares it against the digest sealed into the record.
A mismatch means the record was altered after capture.

The file may be JSON or YAML (by extension).

# Examples

  geowitness verify evidence.json
  geowitness verify evidence.yaml`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return fmt.Errorf("expected exactly one snapshot file argument")
			}
			path := cmd.Args().First()

			s, err := serializer.ReadSnapshotFile(path)
			if err != nil {
				return err
			}

			if !s.Verify() {
				return fmt.Errorf("snapshot %s FAILED verification: record was modified after capture", s.ID)
			}

			fmt.Printf("snapshot %s verified: digest intact\n", s.ID)
			return nil
		},
	}
}
