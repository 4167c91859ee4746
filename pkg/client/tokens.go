// Copyright (C) 2018 Storj Labs, Inc.
// See LICENSE for copying information.

package client

import (
	"context"
	"net/url"
)

// Token operations understood by the bridge.
const (
	OperationPush = "PUSH"
	OperationPull = "PULL"
)

// Token authorizes one transfer operation on a bucket.
type Token struct {
	Token     string `json:"token"`
	Operation string `json:"operation"`
	Bucket    string `json:"bucket"`
	Expires   string `json:"expires"`
}

// CreateToken requests a PUSH or PULL token for a bucket.
func CreateToken(ctx context.Context, env Env, bucketID, operation string) (Token, error) {
	var token Token
	path := "/buckets/" + url.PathEscape(bucketID) + "/tokens"
	err := post(ctx, env, path, map[string]interface{}{"operation": operation}, &token)
	if err != nil {
		return Token{}, err
	}
	return token, nil
}
