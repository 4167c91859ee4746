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

var (
	listFramesCmd = &cobra.Command{
		Use:   "list-frames",
		Short: "List the open staging frames",
		RunE:  listFrames,
	}
	removeFrameCmd = &cobra.Command{
		Use:   "remove-frame <frame-id>",
		Short: "Discard a staging frame",
		RunE:  removeFrame,
	}
)

func init() {
	RootCmd.AddCommand(listFramesCmd)
	RootCmd.AddCommand(removeFrameCmd)
}

func listFrames(cmd *cobra.Command, args []string) error {
	ctx := process.Ctx(cmd)

	env, err := getEnv()
	if err != nil {
		return err
	}

	frames, err := client.GetFrames(ctx, env)
	if err != nil {
		return err
	}

	for _, frame := range frames {
		fmt.Println(frame.ID, frame.Created, len(frame.Shards))
	}

	return nil
}

func removeFrame(cmd *cobra.Command, args []string) error {
	ctx := process.Ctx(cmd)

	if len(args) == 0 {
		return errs.New("No frame specified for removal")
	}

	env, err := getEnv()
	if err != nil {
		return err
	}

	if err := client.DeleteFrame(ctx, env, args[0]); err != nil {
		return err
	}

	fmt.Println("Removed", args[0])

	return nil
}
