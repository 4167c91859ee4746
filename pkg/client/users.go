// Copyright (C) 2018 Storj Labs, Inc.
// See LICENSE for copying information.

package client

import "context"

// RegisterUser registers a new account on the bridge. The password is
// hashed before it goes on the wire. When the Env carries a keypair its
// public key is registered along with the account.
func RegisterUser(ctx context.Context, env Env, email, password string) error {
	body := map[string]interface{}{
		"email":    email,
		"password": sha256Sum(password),
	}
	if env.Key != nil {
		body["pubkey"] = env.Key.PublicKey()
	}
	return post(ctx, env, "/users", body, nil)
}
