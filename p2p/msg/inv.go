// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package msg

import (
	"fmt"
	"io"

	"github.com/nanucoin/mnpayments/common"
	"github.com/nanucoin/mnpayments/p2p"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

const (
	// MaxInvPerMsg is the maximum number of inventory vectors that can be in a
	// single inv message.
	MaxInvPerMsg = 50000

	// InvVectSize is the size of an inventory vector, type 4 bytes plus hash
	// 32 bytes.
	InvVectSize = 4 + chainhash.HashSize
)

// Ensure Inv implement p2p.Message interface.
var _ p2p.Message = (*Inv)(nil)

// InvVect announces an item by type and hash.
type InvVect struct {
	Type common.InventoryType
	Hash chainhash.Hash
}

// NewInvVect returns a new InvVect using the provided type and hash.
func NewInvVect(typ common.InventoryType, hash *chainhash.Hash) *InvVect {
	return &InvVect{
		Type: typ,
		Hash: *hash,
	}
}

func (vect *InvVect) Serialize(w io.Writer) error {
	if err := common.WriteUint32(w, uint32(vect.Type)); err != nil {
		return err
	}
	_, err := w.Write(vect.Hash[:])
	return err
}

func (vect *InvVect) Deserialize(r io.Reader) error {
	typ, err := common.ReadUint32(r)
	if err != nil {
		return err
	}
	vect.Type = common.InventoryType(typ)
	_, err = io.ReadFull(r, vect.Hash[:])
	return err
}

func (vect *InvVect) String() string {
	return fmt.Sprintf("%s %s", vect.Type, vect.Hash)
}

// Inv announces a list of inventory vectors.
type Inv struct {
	InvList []*InvVect
}

func NewInv(list []*InvVect) *Inv {
	return &Inv{InvList: list}
}

// AddInvVect adds an inventory vector to the message.
func (msg *Inv) AddInvVect(iv *InvVect) error {
	if len(msg.InvList)+1 > MaxInvPerMsg {
		str := fmt.Sprintf("too many invvect in message [max %v]",
			MaxInvPerMsg)
		return common.FuncError("Inv.AddInvVect", str)
	}

	msg.InvList = append(msg.InvList, iv)
	return nil
}

func (msg *Inv) CMD() string {
	return p2p.CmdInv
}

func (msg *Inv) MaxLength() uint32 {
	return 9 + (MaxInvPerMsg * InvVectSize)
}

func (msg *Inv) Serialize(w io.Writer) error {
	count := len(msg.InvList)
	if count > MaxInvPerMsg {
		str := fmt.Sprintf("too many invvect in message [%v]", count)
		return common.FuncError("Inv.Serialize", str)
	}

	if err := common.WriteVarUint(w, uint64(count)); err != nil {
		return err
	}

	for _, iv := range msg.InvList {
		if err := iv.Serialize(w); err != nil {
			return err
		}
	}
	return nil
}

func (msg *Inv) Deserialize(r io.Reader) error {
	count, err := common.ReadVarUint(r, MaxInvPerMsg)
	if err != nil {
		return err
	}

	// Create a contiguous slice of inventory vectors to deserialize into in
	// order to reduce the number of allocations.
	invList := make([]InvVect, count)
	msg.InvList = make([]*InvVect, 0, count)
	for i := uint64(0); i < count; i++ {
		iv := &invList[i]
		if err := iv.Deserialize(r); err != nil {
			return err
		}
		msg.InvList = append(msg.InvList, iv)
	}
	return nil
}
