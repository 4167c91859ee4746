// Copyright (C) 2018 Storj Labs, Inc.
// See LICENSE for copying information.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"storj.io/bridge/internal/process"
	"storj.io/bridge/pkg/client"
)

var lsCmd = &cobra.Command{
	Use:   "ls [bucket-id]",
	Short: "List buckets, or the files in a bucket",
	RunE:  list,
}

func init() {
	RootCmd.AddCommand(lsCmd)
}

func list(cmd *cobra.Command, args []string) error {
	ctx := process.Ctx(cmd)

	env, err := getEnv()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		buckets, err := client.GetBuckets(ctx, env)
		if err != nil {
			return err
		}
		for _, bucket := range buckets {
			fmt.Println(bucket.ID, bucket.Created, bucket.Name)
		}
		return nil
	}

	files, err := client.ListFiles(ctx, env, args[0])
	if err != nil {
		return err
	}
	for _, file := range files {
		fmt.Println(file.ID, file.Created, file.Size, file.Name)
	}
	return nil
}
