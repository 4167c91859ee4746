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
	listKeysCmd = &cobra.Command{
		Use:   "list-keys",
		Short: "List the public keys registered for the account",
		RunE:  listKeys,
	}
	addKeyCmd = &cobra.Command{
		Use:   "add-key [key]",
		Short: "Register a public key for the account",
		RunE:  addKey,
	}
	removeKeyCmd = &cobra.Command{
		Use:   "remove-key <key>",
		Short: "Revoke a registered public key",
		RunE:  removeKey,
	}
)

func init() {
	RootCmd.AddCommand(listKeysCmd)
	RootCmd.AddCommand(addKeyCmd)
	RootCmd.AddCommand(removeKeyCmd)
}

func listKeys(cmd *cobra.Command, args []string) error {
	ctx := process.Ctx(cmd)

	env, err := getEnv()
	if err != nil {
		return err
	}

	keys, err := client.GetKeys(ctx, env)
	if err != nil {
		return err
	}

	for _, key := range keys {
		fmt.Println(key.Key)
	}

	return nil
}

// addKey registers the given public key, or the key file's public key when
// none is given.
func addKey(cmd *cobra.Command, args []string) error {
	ctx := process.Ctx(cmd)

	env, err := getEnv()
	if err != nil {
		return err
	}

	var key string
	switch {
	case len(args) > 0:
		key = args[0]
	case env.Key != nil:
		key = env.Key.PublicKey()
	default:
		return errs.New("No key specified and no key file found")
	}

	if err := client.RegisterKey(ctx, env, key); err != nil {
		return err
	}

	fmt.Println("Registered", key)

	return nil
}

func removeKey(cmd *cobra.Command, args []string) error {
	ctx := process.Ctx(cmd)

	if len(args) == 0 {
		return errs.New("No key specified for removal")
	}

	env, err := getEnv()
	if err != nil {
		return err
	}

	if err := client.DeleteKey(ctx, env, args[0]); err != nil {
		return err
	}

	fmt.Println("Removed", args[0])

	return nil
}
