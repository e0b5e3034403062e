// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package crypto

import (
	"bytes"
	"errors"

	"github.com/btcsuite/btcd/btcec"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

const (
	PrivateKeyLength = 32
	// CompressedPubKeyLength is the length of a compressed secp256k1 key.
	CompressedPubKeyLength = 33
	// SignatureLength is the length of a compact recoverable signature.
	SignatureLength = 65
)

var (
	ErrInvalidPrivateKey = errors.New("invalid private key length")
	ErrInvalidSignature  = errors.New("invalid signature length")
	ErrSignatureMismatch = errors.New("signature does not match public key")
)

// GenerateKeyPair creates a new secp256k1 key pair and returns the raw
// private key and the compressed public key.
func GenerateKeyPair() ([]byte, []byte, error) {
	privateKey, err := btcec.NewPrivateKey(btcec.S256())
	if err != nil {
		return nil, nil, errors.New("Generate key pair error")
	}
	return privateKey.Serialize(), privateKey.PubKey().SerializeCompressed(), nil
}

// PublicKeyFromPrivate returns the compressed public key of priKey.
func PublicKeyFromPrivate(priKey []byte) ([]byte, error) {
	if len(priKey) != PrivateKeyLength {
		return nil, ErrInvalidPrivateKey
	}
	_, pub := btcec.PrivKeyFromBytes(btcec.S256(), priKey)
	return pub.SerializeCompressed(), nil
}

// MessageSigner signs and verifies text messages the way wallets sign
// messages: the digest is the double sha256 of the magic prefix followed by
// the message, both var-string encoded, and the signature is in compact
// recoverable form.
type MessageSigner struct {
	magic string
}

// NewMessageSigner returns a signer that prefixes every message with
// magic.
func NewMessageSigner(magic string) *MessageSigner {
	return &MessageSigner{magic: magic}
}

func (s *MessageSigner) digest(message string) []byte {
	var buf bytes.Buffer
	// Writes into a bytes.Buffer never fail.
	_ = wire.WriteVarString(&buf, 0, s.magic)
	_ = wire.WriteVarString(&buf, 0, message)
	return chainhash.DoubleHashB(buf.Bytes())
}

// SignMessage signs message with priKey.
func (s *MessageSigner) SignMessage(message string, priKey []byte) ([]byte, error) {
	if len(priKey) != PrivateKeyLength {
		return nil, ErrInvalidPrivateKey
	}
	privateKey, _ := btcec.PrivKeyFromBytes(btcec.S256(), priKey)
	return btcec.SignCompact(btcec.S256(), privateKey, s.digest(message), true)
}

// VerifyMessage checks that signature was produced over message by the
// owner of pubKey. pubKey may be compressed or uncompressed.
func (s *MessageSigner) VerifyMessage(pubKey []byte, signature []byte, message string) error {
	if len(signature) != SignatureLength {
		return ErrInvalidSignature
	}
	expected, err := btcec.ParsePubKey(pubKey, btcec.S256())
	if err != nil {
		return err
	}
	recovered, _, err := btcec.RecoverCompact(btcec.S256(), signature, s.digest(message))
	if err != nil {
		return err
	}
	if !recovered.IsEqual(expected) {
		return ErrSignatureMismatch
	}
	return nil
}
