// Copyright (C) 2018 Storj Labs, Inc.
// See LICENSE for copying information.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zeebo/errs"

	"storj.io/bridge/internal/process"
	"storj.io/bridge/pkg/client"
)

var rbCmd = &cobra.Command{
	Use:   "rb <bucket-id>",
	Short: "Remove a bucket",
	RunE:  removeBucket,
}

func init() {
	RootCmd.AddCommand(rbCmd)
}

func removeBucket(cmd *cobra.Command, args []string) error {
	ctx := process.Ctx(cmd)

	if len(args) == 0 {
		return errs.New("No bucket specified for removal")
	}

	env, err := getEnv()
	if err != nil {
		return err
	}

	if err := client.DeleteBucket(ctx, env, args[0]); err != nil {
		return err
	}

	fmt.Println("Removed", args[0])

	return nil
}
