// Copyright (C) 2018 Storj Labs, Inc.
// See LICENSE for copying information.

package transfer

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"io"

	"storj.io/bridge/pkg/keypair"
)

// DefaultShardSize is the shard size used when none is configured.
const DefaultShardSize = 2 * 1024 * 1024

// FixedDemuxer splits a stream into shards of a fixed size. The last shard
// carries the remainder.
type FixedDemuxer struct {
	ShardSize int
}

// Demux implements Demuxer.
func (d FixedDemuxer) Demux(ctx context.Context, r io.Reader) ([]Shard, error) {
	size := d.ShardSize
	if size <= 0 {
		size = DefaultShardSize
	}

	var shards []Shard
	for index := 0; ; index++ {
		if err := ctx.Err(); err != nil {
			return nil, Error.Wrap(err)
		}

		buf := make([]byte, size)
		n, err := io.ReadFull(r, buf)
		if n > 0 {
			shards = append(shards, Shard{Index: index, Data: buf[:n]})
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return shards, nil
		}
		if err != nil {
			return nil, Error.Wrap(err)
		}
	}
}

// challengeSize matches the challenge size the farmers expect.
const challengeSize = 32

// ChallengeAuditor generates random audit challenges for a shard along
// with the response leaves the bridge keeps: the double hash160 of the
// challenge prepended to the shard data.
type ChallengeAuditor struct {
	Challenges int
}

// Generate implements AuditGenerator.
func (a ChallengeAuditor) Generate(data []byte) (challenges, tree []string, err error) {
	count := a.Challenges
	if count <= 0 {
		count = 4
	}

	challenges = make([]string, 0, count)
	tree = make([]string, 0, count)
	for i := 0; i < count; i++ {
		challenge := make([]byte, challengeSize)
		if _, err := rand.Read(challenge); err != nil {
			return nil, nil, Error.Wrap(err)
		}

		input := make([]byte, 0, len(challenge)+len(data))
		input = append(input, challenge...)
		input = append(input, data...)
		leaf, err := hex.DecodeString(keypair.Hash160(input))
		if err != nil {
			return nil, nil, Error.Wrap(err)
		}

		challenges = append(challenges, hex.EncodeToString(challenge))
		tree = append(tree, keypair.Hash160(leaf))
	}
	return challenges, tree, nil
}
