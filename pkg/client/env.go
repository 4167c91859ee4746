// Copyright (C) 2018 Storj Labs, Inc.
// See LICENSE for copying information.

// Package client implements the HTTP client for the Storj bridge API.
package client

import (
	"crypto/sha256"
	"encoding/hex"
	"os"

	"storj.io/bridge/pkg/keypair"
)

// DefaultURL of the bridge API endpoint
const DefaultURL = "https://api.storj.io"

// Env contains parameters for accessing the bridge. Authentication is
// either a keypair or an email/password pair; when both are set the
// keypair wins.
type Env struct {
	URL      string
	User     string
	Password string
	Mnemonic string
	Key      *keypair.KeyPair
}

// NewEnv creates new Env struct with default values and overrides from the
// environment variables. The bridge password is stored hashed, never in
// clear.
func NewEnv() Env {
	env := Env{
		URL:      os.Getenv("STORJ_BRIDGE"),
		User:     os.Getenv("STORJ_BRIDGE_USER"),
		Mnemonic: os.Getenv("STORJ_ENCRYPTION_KEY"),
	}
	if env.URL == "" {
		env.URL = DefaultURL
	}
	if pass := os.Getenv("STORJ_BRIDGE_PASS"); pass != "" {
		env.Password = sha256Sum(pass)
	}
	if key := os.Getenv("STORJ_BRIDGE_KEY"); key != "" {
		if kp, err := keypair.FromPrivateKey(key); err == nil {
			env.Key = kp
		}
	}
	return env
}

// HashPassword returns the hex SHA-256 sum of a clear bridge password. The
// bridge expects basic-auth credentials in this form.
func HashPassword(password string) string {
	return sha256Sum(password)
}

func sha256Sum(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
