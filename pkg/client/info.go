// Copyright (C) 2018 Storj Labs, Inc.
// See LICENSE for copying information.

package client

import (
	"context"
	"encoding/json"

	"github.com/zeebo/errs"
)

// Info struct of the GetInfo() response
type Info struct {
	Title       string
	Description string
	Version     string
	Host        string
}

// UnmarshalJSON overrides the default unmarshalling to flatten the swagger
// document returned by the bridge and reject incomplete responses.
func (info *Info) UnmarshalJSON(b []byte) error {
	var response struct {
		Info *struct {
			Title       *string `json:"title"`
			Description *string `json:"description"`
			Version     *string `json:"version"`
		} `json:"info"`
		Host *string `json:"host"`
	}

	if err := json.Unmarshal(b, &response); err != nil {
		return err
	}

	if response.Info == nil {
		return errs.New("Missing info element in JSON response")
	}
	if response.Info.Title == nil {
		return errs.New("Missing title element in JSON response")
	}
	if response.Info.Description == nil {
		return errs.New("Missing description element in JSON response")
	}
	if response.Info.Version == nil {
		return errs.New("Missing version element in JSON response")
	}
	if response.Host == nil {
		return errs.New("Missing host element in JSON response")
	}

	info.Title = *response.Info.Title
	info.Description = *response.Info.Description
	info.Version = *response.Info.Version
	info.Host = *response.Host
	return nil
}

// GetInfo returns info about the bridge. No authentication is required.
func GetInfo(ctx context.Context, env Env) (Info, error) {
	var info Info
	err := get(ctx, env, "/", nil, &info)
	return info, err
}
