// Copyright (C) 2018 Storj Labs, Inc.
// See LICENSE for copying information.

package client

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"

	bip39 "github.com/tyler-smith/go-bip39"
	"github.com/zeebo/errs"
)

// bucketNameMagic is the derivation index for bucket name keys, shared with
// the other client implementations so names decrypt across them.
const bucketNameMagic = "398734aab3c4c30c9f22590e83a95f7e43556a45fc2b3060e0c39fde31f50272"

var bucketMetaMagic = []byte{
	66, 150, 71, 16, 50, 114, 88, 160, 163, 35, 154, 65, 162, 213, 226, 215,
	70, 138, 57, 61, 52, 19, 210, 170, 38, 164, 162, 200, 86, 201, 2, 81,
}

const (
	gcmTagSize   = 16
	gcmNonceSize = 32
)

// decryptBucketName decrypts a bucket name with the key derived from the
// mnemonic. The encrypted blob layout is base64(tag || iv || ciphertext).
func decryptBucketName(name, mnemonic string) (string, error) {
	key, err := bucketKey(mnemonic, bucketNameMagic)
	if err != nil {
		return "", err
	}
	return decryptMeta(name, metaKey(key))
}

// encryptBucketName is the inverse of decryptBucketName. The IV is derived
// deterministically from the name, so encrypting the same name twice yields
// the same blob and the bridge can deduplicate buckets.
func encryptBucketName(name, mnemonic string) (string, error) {
	key, err := bucketKey(mnemonic, bucketNameMagic)
	if err != nil {
		return "", err
	}
	return encryptMeta(name, metaKey(key), metaIV(key, name))
}

// decryptFileName decrypts a file name, which is keyed by the ID of the
// bucket holding the file.
func decryptFileName(name, mnemonic, bucketID string) (string, error) {
	key, err := bucketKey(mnemonic, bucketID)
	if err != nil {
		return "", err
	}
	return decryptMeta(name, metaKey(key))
}

func encryptFileName(name, mnemonic, bucketID string) (string, error) {
	key, err := bucketKey(mnemonic, bucketID)
	if err != nil {
		return "", err
	}
	return encryptMeta(name, metaKey(key), metaIV(key, name))
}

// bucketKey derives the 32-byte bucket key from the mnemonic seed and a hex
// derivation index.
func bucketKey(mnemonic, index string) ([]byte, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, errs.New("Invalid mnemonic")
	}
	seed := bip39.NewSeed(mnemonic, "")
	return deterministicKey(seed, index), nil
}

// deterministicKey is the first half of SHA-512 over the key material
// concatenated with the hex decoded index.
func deterministicKey(key []byte, index string) []byte {
	indexBytes, _ := hex.DecodeString(index)
	input := make([]byte, 0, len(key)+len(indexBytes))
	input = append(input, key...)
	input = append(input, indexBytes...)
	sum := sha512.Sum512(input)
	return sum[:32]
}

// metaKey turns a bucket key into the AES-256 key for name encryption.
func metaKey(bucketKey []byte) []byte {
	mac := hmac.New(sha512.New, bucketKey)
	_, _ = mac.Write(bucketMetaMagic)
	return mac.Sum(nil)[:32]
}

// metaIV derives the deterministic GCM nonce for a given name.
func metaIV(bucketKey []byte, meta string) []byte {
	mac := hmac.New(sha512.New, bucketKey)
	_, _ = mac.Write([]byte(meta))
	return mac.Sum(nil)[:gcmNonceSize]
}

func decryptMeta(encrypted string, key []byte) (string, error) {
	buf, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil || len(buf) <= gcmTagSize+gcmNonceSize {
		return "", errs.New("Invalid encrypted name")
	}

	tag := buf[:gcmTagSize]
	iv := buf[gcmTagSize : gcmTagSize+gcmNonceSize]
	ciphertext := buf[gcmTagSize+gcmNonceSize:]

	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plain, err := gcm.Open(nil, iv, sealed, nil)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

func encryptMeta(meta string, key, iv []byte) (string, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	sealed := gcm.Seal(nil, iv, []byte(meta), nil)
	ciphertext := sealed[:len(meta)]
	tag := sealed[len(meta):]

	buf := make([]byte, 0, len(sealed)+len(iv))
	buf = append(buf, tag...)
	buf = append(buf, iv...)
	buf = append(buf, ciphertext...)
	return base64.StdEncoding.EncodeToString(buf), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	return cipher.NewGCMWithNonceSize(block, gcmNonceSize)
}

// fileHMAC authenticates the ordered shard hashes of a file under the file
// key, as expected by the bridge in the hmac field of a file entry.
func fileHMAC(mnemonic, bucketID string, shardHashes []string) (string, error) {
	key, err := bucketKey(mnemonic, bucketID)
	if err != nil {
		return "", err
	}
	mac := hmac.New(sha512.New, key)
	for _, hash := range shardHashes {
		_, _ = mac.Write([]byte(hash))
	}
	return hex.EncodeToString(mac.Sum(nil)), nil
}
