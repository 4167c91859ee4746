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

var mbCmd = &cobra.Command{
	Use:   "mb <name>",
	Short: "Create a bucket",
	RunE:  makeBucket,
}

func init() {
	RootCmd.AddCommand(mbCmd)
}

func makeBucket(cmd *cobra.Command, args []string) error {
	ctx := process.Ctx(cmd)

	if len(args) == 0 {
		return errs.New("No bucket specified for creation")
	}

	env, err := getEnv()
	if err != nil {
		return err
	}

	bucket, err := client.CreateBucket(ctx, env, args[0])
	if err != nil {
		return err
	}

	fmt.Println("Created", bucket.ID)

	return nil
}
