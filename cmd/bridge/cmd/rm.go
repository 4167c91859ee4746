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

var rmCmd = &cobra.Command{
	Use:   "rm <bucket-id> <file-id>",
	Short: "Remove a file from a bucket",
	RunE:  removeFile,
}

func init() {
	RootCmd.AddCommand(rmCmd)
}

func removeFile(cmd *cobra.Command, args []string) error {
	ctx := process.Ctx(cmd)

	if len(args) < 2 {
		return errs.New("No bucket or file specified for removal")
	}

	env, err := getEnv()
	if err != nil {
		return err
	}

	if err := client.DeleteFile(ctx, env, args[0], args[1]); err != nil {
		return err
	}

	fmt.Println("Removed", args[1])

	return nil
}
