// Copyright (C) 2018 Storj Labs, Inc.
// See LICENSE for copying information.

package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBucketID = "e3eca45f4d294132c07b49f4"

func TestListFiles(t *testing.T) {
	files, err := ListFiles(context.Background(), NewMockEnv(), testBucketID)
	require.NoError(t, err)
	require.Len(t, files, 1)

	assert.Equal(t, mockFileID, files[0].ID)
	assert.Equal(t, mockFileName, files[0].Name)
	assert.True(t, files[0].Decrypted)
}

func TestListFilesNoMnemonic(t *testing.T) {
	files, err := ListFiles(context.Background(), NewMockNoMnemonicEnv(), testBucketID)
	require.NoError(t, err)
	require.Len(t, files, 1)

	// without the mnemonic the raw encrypted name is kept
	assert.NotEqual(t, mockFileName, files[0].Name)
	assert.False(t, files[0].Decrypted)
}

func TestCreateToken(t *testing.T) {
	token, err := CreateToken(context.Background(), NewMockEnv(), testBucketID, OperationPull)
	require.NoError(t, err)

	assert.Equal(t, mockToken, token.Token)
	assert.Equal(t, OperationPull, token.Operation)
	assert.Equal(t, testBucketID, token.Bucket)
}

func TestGetFilePointers(t *testing.T) {
	env := NewMockEnv()

	pointers, err := GetFilePointers(context.Background(), env, testBucketID, mockFileID, mockToken, 6, 0)
	require.NoError(t, err)
	require.Len(t, pointers, 1)
	assert.Equal(t, mockShardHash, pointers[0].Hash)
	assert.Equal(t, mockFarmerID, pointers[0].Farmer.NodeID)
	assert.Equal(t, 4000, pointers[0].Farmer.Port)

	// a bad token is rejected with the server's message
	_, err = GetFilePointers(context.Background(), env, testBucketID, mockFileID, "bad token", 6, 0)
	assert.EqualError(t, err, "Invalid token")
}
