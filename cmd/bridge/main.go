// Copyright (C) 2018 Storj Labs, Inc.
// See LICENSE for copying information.

package main

import (
	"storj.io/bridge/cmd/bridge/cmd"
	"storj.io/bridge/internal/process"
)

func main() {
	process.Execute(cmd.RootCmd)
}
