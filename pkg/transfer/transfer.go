// Copyright (C) 2018 Storj Labs, Inc.
// See LICENSE for copying information.

// Package transfer sequences uploads and downloads between the bridge and
// the farmers holding the shards.
//
// The heavy lifting — splitting files into shards, generating audit
// material, moving shard bytes — sits behind the Demuxer, AuditGenerator
// and ShardTransport interfaces, so the orchestration is independent of the
// codec and transport in use.
package transfer

import (
	"context"
	"io"

	"github.com/zeebo/errs"

	"storj.io/bridge/pkg/client"
)

// Error is the default transfer error class.
var Error = errs.Class("transfer error")

// Shard is one piece of a demuxed file. Demuxers must assign dense indexes
// starting at zero.
type Shard struct {
	Index int
	Data  []byte
}

// Demuxer splits a stream into shards.
type Demuxer interface {
	Demux(ctx context.Context, r io.Reader) ([]Shard, error)
}

// AuditGenerator produces the challenges and the Merkle tree leaves the
// bridge stores with a shard, so farmers can be audited later without
// re-reading the data.
type AuditGenerator interface {
	Generate(data []byte) (challenges, tree []string, err error)
}

// ShardTransport moves shard bytes between the client and a farmer.
type ShardTransport interface {
	Push(ctx context.Context, farmer client.Farmer, token, hash string, data []byte) error
	Pull(ctx context.Context, farmer client.Farmer, token, hash string, size int64) ([]byte, error)
}
