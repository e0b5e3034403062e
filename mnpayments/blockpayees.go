// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package mnpayments

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/nanucoin/mnpayments/common"
	"github.com/nanucoin/mnpayments/log"

	"github.com/btcsuite/btcd/wire"
)

// maxPayeesPerBlock bounds the payee list read from a snapshot.
const maxPayeesPerBlock = 1000

// Payee is one candidate payee of a height and its vote count.
type Payee struct {
	Script []byte
	Votes  int32
}

// BlockPayees tallies the admitted votes of one height. Payees keep the
// order they were first voted for. BlockPayees is not safe for concurrent
// use; the ledger guards it.
type BlockPayees struct {
	Height int32
	payees []*Payee
	index  map[string]int
}

func NewBlockPayees(height int32) *BlockPayees {
	return &BlockPayees{
		Height: height,
		index:  make(map[string]int),
	}
}

// AddPayee adds votes to script, creating the payee on first sight.
func (b *BlockPayees) AddPayee(script []byte, votes int32) {
	if i, ok := b.index[string(script)]; ok {
		b.payees[i].Votes += votes
		return
	}
	b.index[string(script)] = len(b.payees)
	b.payees = append(b.payees, &Payee{
		Script: append([]byte(nil), script...),
		Votes:  votes,
	})
}

// Payee returns the script with the most votes. Ties go to the payee seen
// first.
func (b *BlockPayees) Payee() ([]byte, bool) {
	var best *Payee
	for _, p := range b.payees {
		if best == nil || p.Votes > best.Votes {
			best = p
		}
	}
	if best == nil {
		return nil, false
	}
	return best.Script, true
}

// Votes returns the vote count of script.
func (b *BlockPayees) Votes(script []byte) int32 {
	if i, ok := b.index[string(script)]; ok {
		return b.payees[i].Votes
	}
	return 0
}

// Payees returns a copy of the payee list in first seen order.
func (b *BlockPayees) Payees() []Payee {
	payees := make([]Payee, 0, len(b.payees))
	for _, p := range b.payees {
		payees = append(payees, *p)
	}
	return payees
}

// TotalVotes returns the sum of all payee counts.
func (b *BlockPayees) TotalVotes() int32 {
	var total int32
	for _, p := range b.payees {
		total += p.Votes
	}
	return total
}

// IsTransactionValid checks that tx pays at least required to one of the
// payees holding signaturesRequired votes or more. Any such payee is
// accepted, not only the leader. Without a payee at the threshold every
// transaction is accepted.
func (b *BlockPayees) IsTransactionValid(tx *wire.MsgTx, required common.Fixed64,
	signaturesRequired int32, addressVersion byte) error {

	var maxSignatures int32
	for _, p := range b.payees {
		if p.Votes >= maxSignatures && p.Votes >= signaturesRequired {
			maxSignatures = p.Votes
		}
	}

	// no consensus on a payee, follow the longest chain
	if maxSignatures < signaturesRequired {
		return nil
	}

	var possible []string
	for _, p := range b.payees {
		found := false
		for _, out := range tx.TxOut {
			if !bytes.Equal(p.Script, out.PkScript) {
				continue
			}
			if common.Fixed64(out.Value) >= required {
				found = true
			} else {
				log.Infof("Masternode payment is out of drift range. Paid=%s Min=%s",
					common.Fixed64(out.Value), required)
			}
		}

		if p.Votes >= signaturesRequired {
			if found {
				return nil
			}
			possible = append(possible, common.ScriptToAddress(p.Script, addressVersion))
		}
	}

	return &PaymentError{Height: b.Height, Required: required, Payees: possible}
}

// RequiredPaymentsString lists every payee with its votes as
// "address:votes, address:votes", or "Unknown" when there is none.
func (b *BlockPayees) RequiredPaymentsString(addressVersion byte) string {
	if len(b.payees) == 0 {
		return "Unknown"
	}
	parts := make([]string, 0, len(b.payees))
	for _, p := range b.payees {
		parts = append(parts, common.ScriptToAddress(p.Script, addressVersion)+
			":"+strconv.FormatInt(int64(p.Votes), 10))
	}
	return strings.Join(parts, ", ")
}

func (b *BlockPayees) Serialize(w io.Writer) error {
	if err := common.WriteInt32(w, b.Height); err != nil {
		return err
	}
	if err := common.WriteVarUint(w, uint64(len(b.payees))); err != nil {
		return err
	}
	for _, p := range b.payees {
		if err := common.WriteVarBytes(w, p.Script); err != nil {
			return err
		}
		if err := common.WriteInt32(w, p.Votes); err != nil {
			return err
		}
	}
	return nil
}

func (b *BlockPayees) Deserialize(r io.Reader) (err error) {
	if b.Height, err = common.ReadInt32(r); err != nil {
		return err
	}
	count, err := common.ReadVarUint(r, maxPayeesPerBlock)
	if err != nil {
		return err
	}
	b.payees = make([]*Payee, 0, count)
	b.index = make(map[string]int, count)
	for i := uint64(0); i < count; i++ {
		script, err := common.ReadVarBytes(r, maxPayeeScriptSize, "payee")
		if err != nil {
			return err
		}
		votes, err := common.ReadInt32(r)
		if err != nil {
			return err
		}
		if _, ok := b.index[string(script)]; ok {
			return common.FuncError("BlockPayees.Deserialize", "duplicate payee")
		}
		b.index[string(script)] = len(b.payees)
		b.payees = append(b.payees, &Payee{Script: script, Votes: votes})
	}
	return nil
}
