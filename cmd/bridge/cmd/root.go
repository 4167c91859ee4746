// Copyright (C) 2018 Storj Labs, Inc.
// See LICENSE for copying information.

package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"storj.io/bridge/internal/process"
	"storj.io/bridge/pkg/client"
	"storj.io/bridge/pkg/datachannel"
	"storj.io/bridge/pkg/keypair"
	"storj.io/bridge/pkg/transfer"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "bridge",
	Short: "Client for the Storj bridge API",
}

func init() {
	confDir := process.DefaultConfDir("bridge")
	RootCmd.PersistentFlags().String("bridge", "", "bridge API endpoint")
	RootCmd.PersistentFlags().String("user", "", "bridge account email")
	RootCmd.PersistentFlags().String("pass", "", "bridge account password")
	RootCmd.PersistentFlags().String("mnemonic", "", "encryption mnemonic")
	RootCmd.PersistentFlags().String("keyfile", filepath.Join(confDir, "bridge.key"), "path to the private key file")
}

// getEnv builds the client Env from the environment variables overridden by
// the command line flags. When the key file exists its keypair becomes the
// active credential.
func getEnv() (client.Env, error) {
	env := client.NewEnv()
	if u := viper.GetString("bridge"); u != "" {
		env.URL = u
	}
	if user := viper.GetString("user"); user != "" {
		env.User = user
	}
	if pass := viper.GetString("pass"); pass != "" {
		env.Password = client.HashPassword(pass)
	}
	if mnemonic := viper.GetString("mnemonic"); mnemonic != "" {
		env.Mnemonic = mnemonic
	}

	if data, err := os.ReadFile(viper.GetString("keyfile")); err == nil {
		kp, err := keypair.FromPrivateKey(strings.TrimSpace(string(data)))
		if err != nil {
			return env, err
		}
		env.Key = kp
	}
	return env, nil
}

func getUploader(env client.Env) (*transfer.Uploader, error) {
	log, err := process.NewLogger()
	if err != nil {
		return nil, err
	}
	return transfer.NewUploader(log, env,
		transfer.FixedDemuxer{}, transfer.ChallengeAuditor{}, datachannel.NewClient(log)), nil
}

func getDownloader(env client.Env) (*transfer.Downloader, error) {
	log, err := process.NewLogger()
	if err != nil {
		return nil, err
	}
	return transfer.NewDownloader(log, env, datachannel.NewClient(log)), nil
}
