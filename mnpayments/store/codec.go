// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package store

import (
	"bytes"
	"io"

	"github.com/nanucoin/mnpayments/common"
	"github.com/nanucoin/mnpayments/errors"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// MagicMessage identifies masternode payment snapshots.
const MagicMessage = "MasternodePayments"

// encode frames src as magic message, network magic, body and the double
// sha256 of everything before it.
func encode(src Snapshot, netMagic [4]byte) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := common.WriteVarString(buf, MagicMessage); err != nil {
		return nil, err
	}
	buf.Write(netMagic[:])
	if err := src.Serialize(buf); err != nil {
		return nil, errors.NewDetailErr(err, errors.ErrIO, "serialize snapshot")
	}
	hash := chainhash.DoubleHashH(buf.Bytes())
	buf.Write(hash[:])
	return buf.Bytes(), nil
}

// decode checks the checksum, magic message and network magic of data and
// reads the body into target. target is cleared when the body is invalid.
func decode(data []byte, netMagic [4]byte, target Snapshot) error {
	if len(data) < chainhash.HashSize {
		return errors.NewDetailErr(errors.NewErr("snapshot too short"),
			errors.ErrIO, "read checksum")
	}
	payload := data[:len(data)-chainhash.HashSize]
	var hashIn chainhash.Hash
	copy(hashIn[:], data[len(payload):])

	if chainhash.DoubleHashH(payload) != hashIn {
		return errors.NewDetailErr(errors.ErrChecksumMismatch,
			errors.ErrChecksumMismatch, "")
	}

	r := bytes.NewReader(payload)
	magic, err := common.ReadVarString(r)
	if err != nil || magic != MagicMessage {
		return errors.NewDetailErr(errors.ErrMagicMismatch,
			errors.ErrMagicMismatch, "")
	}

	var netMagicIn [4]byte
	if _, err := io.ReadFull(r, netMagicIn[:]); err != nil || netMagicIn != netMagic {
		return errors.NewDetailErr(errors.ErrNetworkMismatch,
			errors.ErrNetworkMismatch, "")
	}

	if err := target.Deserialize(r); err != nil {
		target.Clear()
		return errors.NewDetailErr(err, errors.ErrDeserialize,
			errors.ErrDeserialize.Error())
	}
	if r.Len() != 0 {
		target.Clear()
		return errors.NewDetailErr(errors.NewErr("trailing data"),
			errors.ErrDeserialize, errors.ErrDeserialize.Error())
	}
	return nil
}
