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

var registerCmd = &cobra.Command{
	Use:   "register <email> <password>",
	Short: "Register a new account on the bridge",
	RunE:  registerUser,
}

func init() {
	RootCmd.AddCommand(registerCmd)
}

func registerUser(cmd *cobra.Command, args []string) error {
	ctx := process.Ctx(cmd)

	if len(args) < 2 {
		return errs.New("No email or password specified for registration")
	}

	env, err := getEnv()
	if err != nil {
		return err
	}

	if err := client.RegisterUser(ctx, env, args[0], args[1]); err != nil {
		return err
	}

	fmt.Println("Registered", args[0])

	return nil
}
