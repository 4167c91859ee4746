// Copyright (C) 2018 Storj Labs, Inc.
// See LICENSE for copying information.

package transfer

import (
	"context"
	"io"
	"sort"

	"go.uber.org/zap"

	"storj.io/bridge/pkg/client"
	"storj.io/bridge/pkg/keypair"
	"storj.io/bridge/pkg/utils"
)

// pointerPageSize is how many pointers are resolved per bridge request.
const pointerPageSize = 6

// Downloader resolves file entries back into a byte stream by pulling the
// shards named by the file pointers.
type Downloader struct {
	log       *zap.Logger
	env       client.Env
	transport ShardTransport
}

// NewDownloader creates a Downloader around the given transport.
func NewDownloader(log *zap.Logger, env client.Env, transport ShardTransport) *Downloader {
	return &Downloader{
		log:       log,
		env:       env,
		transport: transport,
	}
}

// Resolve downloads a file into w. Shards are pulled from their farmers
// concurrently, verified against the pointer hash, and written out strictly
// in shard index order.
func (d *Downloader) Resolve(ctx context.Context, bucketID, fileID string, w io.Writer) error {
	token, err := client.CreateToken(ctx, d.env, bucketID, client.OperationPull)
	if err != nil {
		return err
	}

	pointers, err := d.allPointers(ctx, bucketID, fileID, token.Token)
	if err != nil {
		return err
	}
	if len(pointers) == 0 {
		return Error.New("no pointers for file %s", fileID)
	}

	d.log.Info("resolving file",
		zap.String("bucket", bucketID),
		zap.String("file", fileID),
		zap.Int("shards", len(pointers)))

	sort.Slice(pointers, func(i, j int) bool { return pointers[i].Index < pointers[j].Index })

	shards := make([][]byte, len(pointers))
	errch := make(chan error, len(pointers))
	for i, pointer := range pointers {
		i, pointer := i, pointer
		go func() {
			data, err := d.pullShard(ctx, pointer)
			shards[i] = data
			errch <- err
		}()
	}

	var group utils.ErrorGroup
	for range pointers {
		group.Add(<-errch)
	}
	if err := group.Finish(); err != nil {
		return err
	}

	for _, data := range shards {
		if _, err := w.Write(data); err != nil {
			return Error.Wrap(err)
		}
	}
	return nil
}

// allPointers pages through the pointer listing until the bridge runs out.
func (d *Downloader) allPointers(ctx context.Context, bucketID, fileID, token string) ([]client.Pointer, error) {
	var pointers []client.Pointer
	for skip := 0; ; skip += pointerPageSize {
		page, err := client.GetFilePointers(ctx, d.env, bucketID, fileID, token, pointerPageSize, skip)
		if err != nil {
			return nil, err
		}

		// parity shards only matter for repair, not for resolution
		for _, pointer := range page {
			if !pointer.Parity {
				pointers = append(pointers, pointer)
			}
		}

		if len(page) < pointerPageSize {
			return pointers, nil
		}
	}
}

func (d *Downloader) pullShard(ctx context.Context, pointer client.Pointer) ([]byte, error) {
	data, err := d.transport.Pull(ctx, pointer.Farmer, pointer.Token, pointer.Hash, pointer.Size)
	if err != nil {
		return nil, err
	}
	if hash := keypair.Hash160(data); hash != pointer.Hash {
		return nil, Error.New("shard %d hash mismatch: expected %s got %s", pointer.Index, pointer.Hash, hash)
	}
	return data, nil
}
