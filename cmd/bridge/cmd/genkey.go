// Copyright (C) 2018 Storj Labs, Inc.
// See LICENSE for copying information.

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zeebo/errs"

	"storj.io/bridge/pkg/keypair"
)

var genkeyCmd = &cobra.Command{
	Use:   "generate-key",
	Short: "Generate a keypair and store it in the key file",
	RunE:  generateKey,
}

func init() {
	RootCmd.AddCommand(genkeyCmd)
}

func generateKey(cmd *cobra.Command, args []string) error {
	keyfile := viper.GetString("keyfile")

	if _, err := os.Stat(keyfile); err == nil {
		return errs.New("Key file %s already exists", keyfile)
	}

	kp, err := keypair.Generate()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(keyfile), 0700); err != nil {
		return errs.Wrap(err)
	}
	if err := os.WriteFile(keyfile, []byte(kp.PrivateKey()+"\n"), 0600); err != nil {
		return errs.Wrap(err)
	}

	fmt.Println("Key file:  ", keyfile)
	fmt.Println("Public key:", kp.PublicKey())
	fmt.Println("Node ID:   ", kp.NodeID())

	return nil
}
