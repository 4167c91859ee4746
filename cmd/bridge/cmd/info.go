// Copyright (C) 2018 Storj Labs, Inc.
// See LICENSE for copying information.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"storj.io/bridge/internal/process"
	"storj.io/bridge/pkg/client"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print info about the bridge",
	RunE:  bridgeInfo,
}

func init() {
	RootCmd.AddCommand(infoCmd)
}

func bridgeInfo(cmd *cobra.Command, args []string) error {
	ctx := process.Ctx(cmd)

	env, err := getEnv()
	if err != nil {
		return err
	}

	info, err := client.GetInfo(ctx, env)
	if err != nil {
		return err
	}

	fmt.Println("Title:      ", info.Title)
	fmt.Println("Description:", info.Description)
	fmt.Println("Version:    ", info.Version)
	fmt.Println("Host:       ", info.Host)

	return nil
}
