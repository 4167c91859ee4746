// Copyright (C) 2018 Storj Labs, Inc.
// See LICENSE for copying information.

// Package keypair implements the secp256k1 identity used for authenticating
// requests against the bridge and for addressing nodes on the network.
package keypair

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/zeebo/errs"
	"golang.org/x/crypto/ripemd160"
)

// Error is the default keypair error class.
var Error = errs.Class("keypair error")

// KeyPair holds a secp256k1 private key and derives the public identity
// that is sent alongside signed requests.
type KeyPair struct {
	priv *btcec.PrivateKey
}

// Generate returns a fresh random keypair.
func Generate() (*KeyPair, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, Error.Wrap(err)
	}
	return &KeyPair{priv: priv}, nil
}

// FromPrivateKey restores a keypair from a hex encoded private scalar.
func FromPrivateKey(privHex string) (*KeyPair, error) {
	b, err := hex.DecodeString(privHex)
	if err != nil {
		return nil, Error.New("invalid private key encoding: %v", err)
	}
	if len(b) != btcec.PrivKeyBytesLen {
		return nil, Error.New("invalid private key length: %d", len(b))
	}
	priv, _ := btcec.PrivKeyFromBytes(b)
	return &KeyPair{priv: priv}, nil
}

// PrivateKey returns the private scalar, hex encoded.
func (kp *KeyPair) PrivateKey() string {
	return hex.EncodeToString(kp.priv.Serialize())
}

// PublicKey returns the compressed public point, hex encoded.
func (kp *KeyPair) PublicKey() string {
	return hex.EncodeToString(kp.priv.PubKey().SerializeCompressed())
}

// NodeID returns the hash160 of the compressed public key, hex encoded.
func (kp *KeyPair) NodeID() string {
	return Hash160(kp.priv.PubKey().SerializeCompressed())
}

// Sign signs the SHA-256 digest of message and returns the DER encoded
// signature, hex encoded.
func (kp *KeyPair) Sign(message []byte) string {
	digest := sha256.Sum256(message)
	return hex.EncodeToString(ecdsa.Sign(kp.priv, digest[:]).Serialize())
}

// Verify checks a hex DER signature over the SHA-256 digest of message
// against a hex compressed public key. A signature that does not match
// yields false with no error; malformed encodings yield an error.
func Verify(message []byte, pubHex, sigHex string) (bool, error) {
	pubBytes, err := hex.DecodeString(pubHex)
	if err != nil {
		return false, Error.New("invalid public key encoding: %v", err)
	}
	pub, err := btcec.ParsePubKey(pubBytes)
	if err != nil {
		return false, Error.Wrap(err)
	}
	sigBytes, err := hex.DecodeString(sigHex)
	if err != nil {
		return false, Error.New("invalid signature encoding: %v", err)
	}
	sig, err := ecdsa.ParseDERSignature(sigBytes)
	if err != nil {
		return false, Error.Wrap(err)
	}
	digest := sha256.Sum256(message)
	return sig.Verify(digest[:], pub), nil
}

// Hash160 returns RIPEMD-160 of SHA-256 of data, hex encoded. The network
// uses it both for node identifiers and for shard hashes.
func Hash160(data []byte) string {
	sha := sha256.Sum256(data)
	rip := ripemd160.New()
	_, _ = rip.Write(sha[:])
	return hex.EncodeToString(rip.Sum(nil))
}
