// Copyright (C) 2018 Storj Labs, Inc.
// See LICENSE for copying information.

package client

import (
	"context"
	"net/url"
)

// Frame is a staging area for the shards of a file before the file entry is
// registered under a bucket.
type Frame struct {
	ID      string   `json:"id"`
	User    string   `json:"user"`
	Created string   `json:"created"`
	Shards  []string `json:"shards"`
}

// Shard describes one piece of a demuxed file when it is staged into a
// frame: its hash160, size, position and the audit material the farmers
// will be challenged with.
type Shard struct {
	Hash       string
	Size       int64
	Index      int
	Parity     bool
	Challenges []string
	Tree       []string
	Exclude    []string
}

// CreateFrame opens a new staging frame.
func CreateFrame(ctx context.Context, env Env) (Frame, error) {
	var frame Frame
	if err := post(ctx, env, "/frames", map[string]interface{}{}, &frame); err != nil {
		return Frame{}, err
	}
	return frame, nil
}

// GetFrames returns the open frames of the authenticated user.
func GetFrames(ctx context.Context, env Env) ([]Frame, error) {
	var frames []Frame
	if err := get(ctx, env, "/frames", nil, &frames); err != nil {
		return nil, err
	}
	return frames, nil
}

// GetFrame returns a single frame.
func GetFrame(ctx context.Context, env Env, frameID string) (Frame, error) {
	var frame Frame
	if err := get(ctx, env, "/frames/"+url.PathEscape(frameID), nil, &frame); err != nil {
		return Frame{}, err
	}
	return frame, nil
}

// DeleteFrame discards a staging frame.
func DeleteFrame(ctx context.Context, env Env, frameID string) error {
	return del(ctx, env, "/frames/"+url.PathEscape(frameID), nil)
}

// AddShardToFrame stages a shard into a frame. The bridge answers with a
// pointer carrying the storage token and the farmer the shard bytes must be
// pushed to.
func AddShardToFrame(ctx context.Context, env Env, frameID string, shard Shard) (Pointer, error) {
	exclude := shard.Exclude
	if exclude == nil {
		exclude = []string{}
	}
	body := map[string]interface{}{
		"hash":       shard.Hash,
		"size":       shard.Size,
		"index":      shard.Index,
		"parity":     shard.Parity,
		"challenges": shard.Challenges,
		"tree":       shard.Tree,
		"exclude":    exclude,
	}

	var pointer Pointer
	if err := put(ctx, env, "/frames/"+url.PathEscape(frameID), body, &pointer); err != nil {
		return Pointer{}, err
	}
	return pointer, nil
}

// CreateEntryFromFrame registers the staged frame as a file entry under a
// bucket. The file name is encrypted when the Env has a mnemonic, and the
// hmac over the ordered shard hashes lets other clients verify the entry.
func CreateEntryFromFrame(ctx context.Context, env Env, bucketID, frameID, name, mimetype string, shardHashes []string) (File, error) {
	wireName := name
	body := map[string]interface{}{
		"frame":    frameID,
		"mimetype": mimetype,
	}
	if env.Mnemonic != "" {
		encrypted, err := encryptFileName(name, env.Mnemonic, bucketID)
		if err != nil {
			return File{}, err
		}
		wireName = encrypted

		value, err := fileHMAC(env.Mnemonic, bucketID, shardHashes)
		if err != nil {
			return File{}, err
		}
		body["hmac"] = map[string]interface{}{"type": "sha512", "value": value}
	}
	body["filename"] = wireName

	var file File
	if err := post(ctx, env, "/buckets/"+url.PathEscape(bucketID)+"/files", body, &file); err != nil {
		return File{}, err
	}
	maybeDecryptFile(&file, env)
	return file, nil
}
