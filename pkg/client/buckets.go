// Copyright (C) 2018 Storj Labs, Inc.
// See LICENSE for copying information.

package client

import (
	"context"
	"net/url"
)

// Bucket metadata. Name holds the decrypted name when decryption with the
// Env mnemonic succeeded, the raw name from the bridge otherwise.
type Bucket struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Created   string `json:"created"`
	Decrypted bool   `json:"-"`
}

// GetBuckets returns the list of buckets of the authenticated user.
func GetBuckets(ctx context.Context, env Env) ([]Bucket, error) {
	var buckets []Bucket
	if err := get(ctx, env, "/buckets", nil, &buckets); err != nil {
		return nil, err
	}
	for i := range buckets {
		maybeDecryptBucket(&buckets[i], env)
	}
	return buckets, nil
}

// GetBucket returns the metadata of a single bucket.
func GetBucket(ctx context.Context, env Env, bucketID string) (Bucket, error) {
	var bucket Bucket
	if err := get(ctx, env, "/buckets/"+url.PathEscape(bucketID), nil, &bucket); err != nil {
		return Bucket{}, err
	}
	maybeDecryptBucket(&bucket, env)
	return bucket, nil
}

// CreateBucket creates a bucket. The name is encrypted client-side when the
// Env has a mnemonic, so the bridge never sees it in clear.
func CreateBucket(ctx context.Context, env Env, name string) (Bucket, error) {
	wireName := name
	if env.Mnemonic != "" {
		encrypted, err := encryptBucketName(name, env.Mnemonic)
		if err != nil {
			return Bucket{}, err
		}
		wireName = encrypted
	}

	var bucket Bucket
	if err := post(ctx, env, "/buckets", map[string]interface{}{"name": wireName}, &bucket); err != nil {
		return Bucket{}, err
	}
	maybeDecryptBucket(&bucket, env)
	return bucket, nil
}

// DeleteBucket removes a bucket and all files in it.
func DeleteBucket(ctx context.Context, env Env, bucketID string) error {
	return del(ctx, env, "/buckets/"+url.PathEscape(bucketID), nil)
}

// UpdateBucket renames a bucket, encrypting the new name when the Env has a
// mnemonic.
func UpdateBucket(ctx context.Context, env Env, bucketID, name string) (Bucket, error) {
	wireName := name
	if env.Mnemonic != "" {
		encrypted, err := encryptBucketName(name, env.Mnemonic)
		if err != nil {
			return Bucket{}, err
		}
		wireName = encrypted
	}

	var bucket Bucket
	if err := patch(ctx, env, "/buckets/"+url.PathEscape(bucketID), map[string]interface{}{"name": wireName}, &bucket); err != nil {
		return Bucket{}, err
	}
	maybeDecryptBucket(&bucket, env)
	return bucket, nil
}

// maybeDecryptBucket decrypts the bucket name in place when the mnemonic
// can open it. Buckets created without encryption, or with a different
// mnemonic, keep their raw name and stay marked as not decrypted.
func maybeDecryptBucket(bucket *Bucket, env Env) {
	name, err := decryptBucketName(bucket.Name, env.Mnemonic)
	if err != nil {
		return
	}
	bucket.Name = name
	bucket.Decrypted = true
}
