// Copyright (C) 2018 Storj Labs, Inc.
// See LICENSE for copying information.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zeebo/errs"
)

var exportKeyCmd = &cobra.Command{
	Use:   "export-key",
	Short: "Print the public identity of the key file",
	RunE:  exportKey,
}

func init() {
	RootCmd.AddCommand(exportKeyCmd)
}

func exportKey(cmd *cobra.Command, args []string) error {
	env, err := getEnv()
	if err != nil {
		return err
	}
	if env.Key == nil {
		return errs.New("No key file found")
	}

	fmt.Println("Public key:", env.Key.PublicKey())
	fmt.Println("Node ID:   ", env.Key.NodeID())

	return nil
}
