// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package common

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/wire"
)

// pver is the protocol version passed to the wire var-length helpers, none of
// which change encoding across versions.
const pver = 0

// MaxVarBytes limits the size of variable length byte arrays read from disk
// or the network.
const MaxVarBytes = wire.MaxMessagePayload

// Serializable is the interface implemented by objects written to the wire
// or to disk.
type Serializable interface {
	Serialize(w io.Writer) error
	Deserialize(r io.Reader) error
}

func WriteUint32(w io.Writer, val uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], val)
	_, err := w.Write(buf[:])
	return err
}

func ReadUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func WriteInt32(w io.Writer, val int32) error {
	return WriteUint32(w, uint32(val))
}

func ReadInt32(r io.Reader) (int32, error) {
	val, err := ReadUint32(r)
	return int32(val), err
}

func WriteVarUint(w io.Writer, val uint64) error {
	return wire.WriteVarInt(w, pver, val)
}

// ReadVarUint reads a variable length integer. A non zero maxValue bounds
// the accepted value.
func ReadVarUint(r io.Reader, maxValue uint64) (uint64, error) {
	val, err := wire.ReadVarInt(r, pver)
	if err != nil {
		return 0, err
	}
	if maxValue != 0 && val > maxValue {
		return 0, FuncError("ReadVarUint",
			fmt.Sprintf("value %d exceeds limit %d", val, maxValue))
	}
	return val, nil
}

func WriteVarBytes(w io.Writer, bytes []byte) error {
	return wire.WriteVarBytes(w, pver, bytes)
}

func ReadVarBytes(r io.Reader, maxAllowed uint32, fieldName string) ([]byte, error) {
	return wire.ReadVarBytes(r, pver, maxAllowed, fieldName)
}

func WriteVarString(w io.Writer, str string) error {
	return wire.WriteVarString(w, pver, str)
}

func ReadVarString(r io.Reader) (string, error) {
	return wire.ReadVarString(r, pver)
}

// FuncError creates an error for a function call with the given description.
func FuncError(funcName, desc string) error {
	return fmt.Errorf("%s: %s", funcName, desc)
}
