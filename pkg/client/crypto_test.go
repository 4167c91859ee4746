// Copyright (C) 2018 Storj Labs, Inc.
// See LICENSE for copying information.

package client

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mockMnemonic = "uncle obtain april oxygen cover patient layer abuse off text royal normal"

func TestDecryptBucketName(t *testing.T) {
	for i, tt := range []struct {
		encryptedName string
		mnemonic      string
		decryptedName string
		errString     string
	}{
		{"", "", "", "Invalid mnemonic"},
		{"", mockMnemonic, "", "Invalid encrypted name"},
		{mockEncryptedBucketName, "", "", "Invalid mnemonic"},
		{mockEncryptedBucketName, mockMnemonic, mockDecryptedBucketName, ""},
		{mockEncryptedBucketNameDiffMnemonic, mockMnemonic, "", "cipher: message authentication failed"},
	} {
		decryptedName, err := decryptBucketName(tt.encryptedName, tt.mnemonic)
		errTag := fmt.Sprintf("Test case #%d", i)
		if tt.errString != "" {
			assert.EqualError(t, err, tt.errString, errTag)
			continue
		}
		if assert.NoError(t, err, errTag) {
			assert.Equal(t, tt.decryptedName, decryptedName, errTag)
		}
	}
}

func TestEncryptBucketNameRoundTrip(t *testing.T) {
	encrypted, err := encryptBucketName(mockDecryptedBucketName, mockMnemonic)
	require.NoError(t, err)
	assert.NotEqual(t, mockDecryptedBucketName, encrypted)

	// the IV derivation is deterministic, so the same name encrypts to the
	// same blob
	again, err := encryptBucketName(mockDecryptedBucketName, mockMnemonic)
	require.NoError(t, err)
	assert.Equal(t, encrypted, again)

	decrypted, err := decryptBucketName(encrypted, mockMnemonic)
	require.NoError(t, err)
	assert.Equal(t, mockDecryptedBucketName, decrypted)
}

func TestEncryptFileNameRoundTrip(t *testing.T) {
	const bucketID = "e3eca45f4d294132c07b49f4"

	encrypted, err := encryptFileName("test.txt", mockMnemonic, bucketID)
	require.NoError(t, err)

	decrypted, err := decryptFileName(encrypted, mockMnemonic, bucketID)
	require.NoError(t, err)
	assert.Equal(t, "test.txt", decrypted)

	// a name encrypted under one bucket must not open under another
	_, err = decryptFileName(encrypted, mockMnemonic, "0000000000000000000000000000000000000000")
	assert.EqualError(t, err, "cipher: message authentication failed")
}

func TestFileHMACDeterministic(t *testing.T) {
	const bucketID = "e3eca45f4d294132c07b49f4"
	hashes := []string{mockShardHash, mockFarmerID}

	first, err := fileHMAC(mockMnemonic, bucketID, hashes)
	require.NoError(t, err)
	second, err := fileHMAC(mockMnemonic, bucketID, hashes)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	reordered, err := fileHMAC(mockMnemonic, bucketID, []string{mockFarmerID, mockShardHash})
	require.NoError(t, err)
	assert.NotEqual(t, first, reordered)
}
