// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package mnpayments

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nanucoin/mnpayments/common"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

const (
	// maxPayeeScriptSize bounds payee scripts read from the network.
	maxPayeeScriptSize = 10000

	// maxSignatureSize bounds signatures read from the network.
	maxSignatureSize = 128
)

// PaymentVote is a masternode's signed statement of which payee should
// receive the masternode payment at a height. A vote must not be modified
// once it has been hashed or admitted.
type PaymentVote struct {
	Outpoint  wire.OutPoint
	Height    int32
	Payee     []byte
	Signature []byte
}

// NewPaymentVote returns an unsigned vote.
func NewPaymentVote(outpoint wire.OutPoint, height int32, payee []byte) *PaymentVote {
	return &PaymentVote{
		Outpoint: outpoint,
		Height:   height,
		Payee:    payee,
	}
}

// Hash identifies the vote for deduplication and inventory. The signature
// is not covered.
func (v *PaymentVote) Hash() chainhash.Hash {
	buf := new(bytes.Buffer)
	common.WriteVarBytes(buf, v.Payee)
	common.WriteInt32(buf, v.Height)
	writeOutpoint(buf, &v.Outpoint)
	return common.Sha256D(buf.Bytes())
}

// Message returns the canonical text covered by the signature.
func (v *PaymentVote) Message() string {
	return OutpointShortString(v.Outpoint) +
		strconv.FormatInt(int64(v.Height), 10) +
		common.ScriptString(v.Payee)
}

// Sign signs the vote with priKey.
func (v *PaymentVote) Sign(signer Signer, priKey []byte) error {
	sig, err := signer.SignMessage(v.Message(), priKey)
	if err != nil {
		return err
	}
	v.Signature = sig
	return nil
}

// Verify checks the signature against the voter's masternode key.
func (v *PaymentVote) Verify(signer Signer, pubKey []byte) error {
	return signer.VerifyMessage(pubKey, v.Signature, v.Message())
}

func (v *PaymentVote) Serialize(w io.Writer) error {
	if err := writeOutpoint(w, &v.Outpoint); err != nil {
		return err
	}
	if err := common.WriteInt32(w, v.Height); err != nil {
		return err
	}
	if err := common.WriteVarBytes(w, v.Payee); err != nil {
		return err
	}
	return common.WriteVarBytes(w, v.Signature)
}

func (v *PaymentVote) Deserialize(r io.Reader) (err error) {
	if err = readOutpoint(r, &v.Outpoint); err != nil {
		return err
	}
	if v.Height, err = common.ReadInt32(r); err != nil {
		return err
	}
	if v.Payee, err = common.ReadVarBytes(r, maxPayeeScriptSize, "payee"); err != nil {
		return err
	}
	v.Signature, err = common.ReadVarBytes(r, maxSignatureSize, "signature")
	return err
}

func (v *PaymentVote) String() string {
	return fmt.Sprintf("PaymentVote{%s height %d payee %s}",
		OutpointShortString(v.Outpoint), v.Height, common.ScriptString(v.Payee))
}

func writeOutpoint(w io.Writer, op *wire.OutPoint) error {
	if _, err := w.Write(op.Hash[:]); err != nil {
		return err
	}
	return common.WriteUint32(w, op.Index)
}

func readOutpoint(r io.Reader, op *wire.OutPoint) (err error) {
	if _, err = io.ReadFull(r, op.Hash[:]); err != nil {
		return err
	}
	op.Index, err = common.ReadUint32(r)
	return err
}

// OutpointShortString renders an outpoint as "txid-index".
func OutpointShortString(op wire.OutPoint) string {
	return op.Hash.String() + "-" + strconv.FormatUint(uint64(op.Index), 10)
}

// ParseOutpoint parses an outpoint in "txid:index" form.
func ParseOutpoint(s string) (wire.OutPoint, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return wire.OutPoint{}, errors.New("outpoint must be txid:index")
	}
	hash, err := chainhash.NewHashFromStr(parts[0])
	if err != nil {
		return wire.OutPoint{}, err
	}
	index, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return wire.OutPoint{}, err
	}
	return *wire.NewOutPoint(hash, uint32(index)), nil
}
