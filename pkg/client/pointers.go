// Copyright (C) 2018 Storj Labs, Inc.
// See LICENSE for copying information.

package client

// Farmer is the contact of the node a shard lives on, or is assigned to.
type Farmer struct {
	NodeID   string `json:"nodeID"`
	Address  string `json:"address"`
	Port     int    `json:"port"`
	Protocol string `json:"protocol"`
}

// Pointer locates one shard of a file: which farmer holds it and the token
// that authorizes the transfer.
type Pointer struct {
	Hash   string `json:"hash"`
	Token  string `json:"token"`
	Index  int    `json:"index"`
	Size   int64  `json:"size"`
	Parity bool   `json:"parity"`
	Farmer Farmer `json:"farmer"`
}
