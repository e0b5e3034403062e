// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package common

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"math"
	"math/big"
	"os"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/itchyny/base58-go"
	"golang.org/x/crypto/ripemd160"
)

// Hash160 returns RIPEMD160(SHA256(data)), the hash used by pay-to-pubkey-hash
// scripts.
func Hash160(data []byte) []byte {
	hash := sha256.Sum256(data)
	md160 := ripemd160.New()
	md160.Write(hash[:])
	return md160.Sum(nil)
}

// Sha256D returns the double sha256 of data as a chain hash.
func Sha256D(data []byte) chainhash.Hash {
	return chainhash.DoubleHashH(data)
}

func BytesReverse(u []byte) []byte {
	for i, j := 0, len(u)-1; i < j; i, j = i+1, j-1 {
		u[i], u[j] = u[j], u[i]
	}
	return u
}

func BytesToHexString(data []byte) string {
	return hex.EncodeToString(data)
}

func HexStringToBytes(value string) ([]byte, error) {
	return hex.DecodeString(value)
}

// PayToPubKeyHashScript builds the standard locking script paying to the
// hash160 of pubKey.
func PayToPubKeyHashScript(pubKey []byte) ([]byte, error) {
	return txscript.NewScriptBuilder().
		AddOp(txscript.OP_DUP).
		AddOp(txscript.OP_HASH160).
		AddData(Hash160(pubKey)).
		AddOp(txscript.OP_EQUALVERIFY).
		AddOp(txscript.OP_CHECKSIG).
		Script()
}

// ScriptString returns the disassembled form of script, used in signed
// messages and log output. Scripts that fail to parse fall back to hex.
func ScriptString(script []byte) string {
	str, err := txscript.DisasmString(script)
	if err != nil {
		return BytesToHexString(script)
	}
	return str
}

// ScriptToAddress renders a pay-to-pubkey-hash script as a base58check address
// with the given version byte. Other scripts are rendered as hex.
func ScriptToAddress(script []byte, version byte) string {
	if !isPayToPubKeyHash(script) {
		return BytesToHexString(script)
	}
	data := make([]byte, 0, 25)
	data = append(data, version)
	data = append(data, script[3:23]...)
	checksum := chainhash.DoubleHashB(data)
	data = append(data, checksum[:4]...)

	zeros := 0
	for zeros < len(data) && data[zeros] == 0 {
		zeros++
	}
	encoded, err := base58.BitcoinEncoding.Encode(
		[]byte(new(big.Int).SetBytes(data[zeros:]).String()))
	if err != nil {
		return BytesToHexString(script)
	}
	return string(bytes.Repeat([]byte{'1'}, zeros)) + string(encoded)
}

func isPayToPubKeyHash(script []byte) bool {
	return len(script) == 25 &&
		script[0] == txscript.OP_DUP &&
		script[1] == txscript.OP_HASH160 &&
		script[2] == txscript.OP_DATA_20 &&
		script[23] == txscript.OP_EQUALVERIFY &&
		script[24] == txscript.OP_CHECKSIG
}

// FileExisted reports whether the file exists.
func FileExisted(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil || os.IsExist(err)
}

// VarIntSerializeSize returns the number of bytes it would take to serialize
// val as a variable length integer.
func VarIntSerializeSize(val uint64) int {
	// The value is small enough to be represented by itself, so it's
	// just 1 byte.
	if val < 0xfd {
		return 1
	}

	// Discriminant 1 byte plus 2 bytes for the uint16.
	if val <= math.MaxUint16 {
		return 3
	}

	// Discriminant 1 byte plus 4 bytes for the uint32.
	if val <= math.MaxUint32 {
		return 5
	}

	// Discriminant 1 byte plus 8 bytes for the uint64.
	return 9
}
