// Copyright (C) 2018 Storj Labs, Inc.
// See LICENSE for copying information.

// Package datachannel moves shard bytes between the client and a farmer
// over the farmer's websocket data channel.
//
// The protocol is a single JSON auth frame carrying the storage token,
// followed by binary messages with the shard bytes. The farmer closes the
// channel with a JSON result frame.
package datachannel

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"storj.io/bridge/pkg/client"
)

// Error is the default datachannel error class.
var Error = errs.Class("datachannel error")

const (
	dialTimeout = 30 * time.Second
	// transfers run against a fixed long deadline rather than configurable
	// backpressure
	transferTimeout = 10 * time.Minute

	// writeChunkSize bounds the size of a single binary message during a
	// push
	writeChunkSize = 64 * 1024
)

// Client implements shard transfers over websocket data channels. The zero
// value is not usable; construct it with NewClient.
type Client struct {
	log    *zap.Logger
	dialer *websocket.Dialer
}

// NewClient creates a data channel client.
func NewClient(log *zap.Logger) *Client {
	return &Client{
		log: log,
		dialer: &websocket.Dialer{
			HandshakeTimeout: dialTimeout,
		},
	}
}

type authFrame struct {
	Token     string `json:"token"`
	Hash      string `json:"hash"`
	Operation string `json:"operation"`
}

type resultFrame struct {
	Error string `json:"error"`
}

// Push uploads shard bytes to the farmer named by the pointer. The farmer
// acknowledges the transfer with a result frame; a missing or negative
// acknowledgment fails the push.
func (c *Client) Push(ctx context.Context, farmer client.Farmer, token, hash string, data []byte) error {
	conn, err := c.dial(ctx, farmer)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	if err := conn.WriteJSON(authFrame{Token: token, Hash: hash, Operation: client.OperationPush}); err != nil {
		return Error.Wrap(err)
	}

	c.log.Debug("pushing shard",
		zap.String("hash", hash),
		zap.String("farmer", farmer.NodeID),
		zap.Int("size", len(data)))

	for offset := 0; offset < len(data); offset += writeChunkSize {
		end := offset + writeChunkSize
		if end > len(data) {
			end = len(data)
		}
		if err := conn.WriteMessage(websocket.BinaryMessage, data[offset:end]); err != nil {
			return Error.Wrap(err)
		}
	}

	return c.readResult(conn)
}

// Pull downloads a shard from the farmer named by the pointer. It reads
// binary messages until size bytes arrived and verifies nothing more
// follows the data.
func (c *Client) Pull(ctx context.Context, farmer client.Farmer, token, hash string, size int64) ([]byte, error) {
	conn, err := c.dial(ctx, farmer)
	if err != nil {
		return nil, err
	}
	defer func() { _ = conn.Close() }()

	if err := conn.WriteJSON(authFrame{Token: token, Hash: hash, Operation: client.OperationPull}); err != nil {
		return nil, Error.Wrap(err)
	}

	c.log.Debug("pulling shard",
		zap.String("hash", hash),
		zap.String("farmer", farmer.NodeID),
		zap.Int64("size", size))

	var buf bytes.Buffer
	for int64(buf.Len()) < size {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			return nil, Error.Wrap(err)
		}
		switch messageType {
		case websocket.BinaryMessage:
			buf.Write(message)
		case websocket.TextMessage:
			// a result frame before all bytes arrived means the farmer
			// aborted the transfer
			if err := resultError(message); err != nil {
				return nil, err
			}
			return nil, Error.New("incomplete shard: expected %d got %d", size, buf.Len())
		}
	}

	if int64(buf.Len()) != size {
		return nil, Error.New("shard size mismatch: expected %d got %d", size, buf.Len())
	}
	return buf.Bytes(), nil
}

func (c *Client) dial(ctx context.Context, farmer client.Farmer) (*websocket.Conn, error) {
	u := url.URL{
		Scheme: "ws",
		Host:   net.JoinHostPort(farmer.Address, strconv.Itoa(farmer.Port)),
	}
	conn, resp, err := c.dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, Error.New("failed to dial farmer %s at %s: %v", farmer.NodeID, u.Host, err)
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	_ = conn.SetReadDeadline(time.Now().Add(transferTimeout))
	_ = conn.SetWriteDeadline(time.Now().Add(transferTimeout))
	return conn, nil
}

func (c *Client) readResult(conn *websocket.Conn) error {
	_, message, err := conn.ReadMessage()
	if err != nil {
		return Error.Wrap(err)
	}
	return resultError(message)
}

func resultError(message []byte) error {
	var result resultFrame
	if err := json.Unmarshal(message, &result); err != nil {
		return Error.New("malformed result frame: %v", err)
	}
	if result.Error != "" {
		return errs.New("%s", result.Error)
	}
	return nil
}
