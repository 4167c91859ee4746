// Copyright (C) 2018 Storj Labs, Inc.
// See LICENSE for copying information.

// Package process sets up the shared plumbing of the CLI: configuration
// loading, logging and signal-aware contexts.
package process

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zeebo/errs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Error is the default process error class.
var Error = errs.Class("process error")

// DefaultConfDir returns the resolved configuration directory for name.
func DefaultConfDir(name string) string {
	path := filepath.Join(".storj", name)
	home, err := homedir.Dir()
	if err != nil {
		log.Println(err)
		return path
	}
	return filepath.Join(home, path)
}

// Execute runs a *cobra.Command and sets up process-wide configuration:
// flags are mirrored into viper and overridable through STORJ_* environment
// variables.
func Execute(cmd *cobra.Command) {
	cobra.OnInitialize(func() {
		if err := viper.BindPFlags(cmd.PersistentFlags()); err != nil {
			log.Fatal(err)
		}
		viper.SetEnvPrefix("storj")
		viper.AutomaticEnv()
	})

	Must(cmd.Execute())
}

// Ctx returns a context for the command that is cancelled on SIGINT or
// SIGTERM, so in-flight transfers stop when the user interrupts the CLI.
func Ctx(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-c
		cancel()
	}()

	return ctx
}

// NewLogger creates the CLI logger. Console encoding without stack traces:
// this is an interactive tool, not a service.
func NewLogger() (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if os.Getenv("STORJ_LOG_LEVEL") == "debug" {
		level = zapcore.DebugLevel
	}

	config := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		DisableCaller:     true,
		DisableStacktrace: true,
		Encoding:          "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "T",
			LevelKey:       "L",
			NameKey:        "N",
			MessageKey:     "M",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	logger, err := config.Build()
	if err != nil {
		return nil, Error.Wrap(err)
	}
	return logger, nil
}

// Must can be used for default error handling in main.
func Must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
