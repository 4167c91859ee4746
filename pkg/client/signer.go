// Copyright (C) 2018 Storj Labs, Inc.
// See LICENSE for copying information.

package client

import "net/http"

// signRequest attaches authentication to a pending request. Exactly one
// branch fires: keypair credentials emit x-pubkey/x-signature headers,
// password credentials emit HTTP basic auth, and an Env with neither sends
// the request unauthenticated.
func signRequest(req *http.Request, env Env, method, path, payload string) {
	if env.Key != nil {
		req.Header.Set("x-pubkey", env.Key.PublicKey())
		req.Header.Set("x-signature", env.Key.Sign([]byte(signingMessage(method, path, payload))))
		return
	}
	if env.User != "" {
		req.SetBasicAuth(env.User, env.Password)
	}
}

// signingMessage builds the canonical string covered by the request
// signature. The payload is the URL-encoded query string for GET/DELETE
// requests and the JSON body otherwise.
func signingMessage(method, path, payload string) string {
	return method + "\n" + path + "\n" + payload
}
