// Copyright (C) 2018 Storj Labs, Inc.
// See LICENSE for copying information.

package client

import (
	"context"
	"net/url"
)

// Key is a public key registered for the authenticated user.
type Key struct {
	Key  string `json:"key"`
	User string `json:"user"`
}

// GetKeys returns the public keys registered for the authenticated user.
func GetKeys(ctx context.Context, env Env) ([]Key, error) {
	var keys []Key
	if err := get(ctx, env, "/keys", nil, &keys); err != nil {
		return nil, err
	}
	return keys, nil
}

// RegisterKey registers a public key for the authenticated user.
func RegisterKey(ctx context.Context, env Env, key string) error {
	return post(ctx, env, "/keys", map[string]interface{}{"key": key}, nil)
}

// DeleteKey revokes a registered public key.
func DeleteKey(ctx context.Context, env Env, key string) error {
	return del(ctx, env, "/keys/"+url.PathEscape(key), nil)
}
