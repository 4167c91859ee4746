// Copyright (C) 2018 Storj Labs, Inc.
// See LICENSE for copying information.

package transfer

import (
	"context"
	"io"

	"go.uber.org/zap"

	"storj.io/bridge/pkg/client"
	"storj.io/bridge/pkg/keypair"
	"storj.io/bridge/pkg/utils"
)

// Uploader stores files in buckets by staging their shards into a frame
// and pushing the bytes to the farmers assigned by the bridge.
type Uploader struct {
	log       *zap.Logger
	env       client.Env
	demuxer   Demuxer
	auditor   AuditGenerator
	transport ShardTransport
}

// NewUploader creates an Uploader around the given capabilities.
func NewUploader(log *zap.Logger, env client.Env, demuxer Demuxer, auditor AuditGenerator, transport ShardTransport) *Uploader {
	return &Uploader{
		log:       log,
		env:       env,
		demuxer:   demuxer,
		auditor:   auditor,
		transport: transport,
	}
}

// Store uploads the stream as a file entry under the bucket: it creates a
// staging frame, demuxes the stream, stages and pushes every shard, and
// registers the entry once all shards are acknowledged.
//
// Shards transfer concurrently. The first shard failure fails the whole
// call, but pushes already in flight are not aborted beyond context
// cancellation.
func (u *Uploader) Store(ctx context.Context, bucketID, name, mimetype string, r io.Reader) (client.File, error) {
	frame, err := client.CreateFrame(ctx, u.env)
	if err != nil {
		return client.File{}, err
	}

	shards, err := u.demuxer.Demux(ctx, r)
	if err != nil {
		return client.File{}, err
	}
	if len(shards) == 0 {
		return client.File{}, Error.New("no shards to store")
	}

	u.log.Info("storing file",
		zap.String("bucket", bucketID),
		zap.String("frame", frame.ID),
		zap.Int("shards", len(shards)))

	hashes := make([]string, len(shards))
	errch := make(chan error, len(shards))
	for _, shard := range shards {
		shard := shard
		go func() {
			errch <- u.storeShard(ctx, frame.ID, shard, hashes)
		}()
	}

	// completion is counted against the expected shard count
	var group utils.ErrorGroup
	for range shards {
		group.Add(<-errch)
	}
	if err := group.Finish(); err != nil {
		return client.File{}, err
	}

	return client.CreateEntryFromFrame(ctx, u.env, bucketID, frame.ID, name, mimetype, hashes)
}

func (u *Uploader) storeShard(ctx context.Context, frameID string, shard Shard, hashes []string) error {
	if shard.Index < 0 || shard.Index >= len(hashes) {
		return Error.New("demuxer produced shard index %d out of %d shards", shard.Index, len(hashes))
	}

	hash := keypair.Hash160(shard.Data)
	hashes[shard.Index] = hash

	challenges, tree, err := u.auditor.Generate(shard.Data)
	if err != nil {
		return err
	}

	pointer, err := client.AddShardToFrame(ctx, u.env, frameID, client.Shard{
		Hash:       hash,
		Size:       int64(len(shard.Data)),
		Index:      shard.Index,
		Challenges: challenges,
		Tree:       tree,
	})
	if err != nil {
		return err
	}

	if err := u.transport.Push(ctx, pointer.Farmer, pointer.Token, hash, shard.Data); err != nil {
		return err
	}

	u.log.Debug("shard stored",
		zap.Int("index", shard.Index),
		zap.String("hash", hash),
		zap.String("farmer", pointer.Farmer.NodeID))
	return nil
}
