// Copyright (C) 2018 Storj Labs, Inc.
// See LICENSE for copying information.

package client

import (
	"context"
	"net/url"
	"strconv"
)

// File is a file entry registered under a bucket. Name holds the decrypted
// file name when decryption with the Env mnemonic succeeded.
type File struct {
	ID        string `json:"id"`
	Bucket    string `json:"bucket"`
	Name      string `json:"filename"`
	Mimetype  string `json:"mimetype"`
	Frame     string `json:"frame"`
	Size      int64  `json:"size"`
	Created   string `json:"created"`
	Decrypted bool   `json:"-"`
}

// ListFiles returns the file entries of a bucket.
func ListFiles(ctx context.Context, env Env, bucketID string) ([]File, error) {
	var files []File
	if err := get(ctx, env, "/buckets/"+url.PathEscape(bucketID)+"/files", nil, &files); err != nil {
		return nil, err
	}
	for i := range files {
		maybeDecryptFile(&files[i], env)
	}
	return files, nil
}

// GetFileInfo returns the metadata of a single file entry.
func GetFileInfo(ctx context.Context, env Env, bucketID, fileID string) (File, error) {
	var file File
	path := "/buckets/" + url.PathEscape(bucketID) + "/files/" + url.PathEscape(fileID) + "/info"
	if err := get(ctx, env, path, nil, &file); err != nil {
		return File{}, err
	}
	maybeDecryptFile(&file, env)
	return file, nil
}

// DeleteFile removes a file entry from a bucket.
func DeleteFile(ctx context.Context, env Env, bucketID, fileID string) error {
	return del(ctx, env, "/buckets/"+url.PathEscape(bucketID)+"/files/"+url.PathEscape(fileID), nil)
}

// GetFilePointers resolves the shard pointers of a file. The token must be
// a PULL token for the bucket; it travels in the x-token header, not in the
// signed payload.
func GetFilePointers(ctx context.Context, env Env, bucketID, fileID, token string, limit, skip int) ([]Pointer, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("skip", strconv.Itoa(skip))

	var pointers []Pointer
	path := "/buckets/" + url.PathEscape(bucketID) + "/files/" + url.PathEscape(fileID)
	headers := map[string]string{"x-token": token}
	if err := getWithHeaders(ctx, env, path, query, headers, &pointers); err != nil {
		return nil, err
	}
	return pointers, nil
}

func maybeDecryptFile(file *File, env Env) {
	name, err := decryptFileName(file.Name, env.Mnemonic, file.Bucket)
	if err != nil {
		return
	}
	file.Name = name
	file.Decrypted = true
}
