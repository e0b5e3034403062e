// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package msg

import (
	"io"

	"github.com/nanucoin/mnpayments/common"
	"github.com/nanucoin/mnpayments/p2p"
)

// Ensure GetMNWinners implement p2p.Message interface.
var _ p2p.Message = (*GetMNWinners)(nil)

// GetMNWinners asks a peer for the payment votes it holds around its tip.
type GetMNWinners struct {
	CountNeeded int32
}

func NewGetMNWinners(countNeeded int32) *GetMNWinners {
	return &GetMNWinners{CountNeeded: countNeeded}
}

func (msg *GetMNWinners) CMD() string {
	return p2p.CmdGetMNWinners
}

func (msg *GetMNWinners) MaxLength() uint32 {
	return 4
}

func (msg *GetMNWinners) Serialize(w io.Writer) error {
	return common.WriteInt32(w, msg.CountNeeded)
}

func (msg *GetMNWinners) Deserialize(r io.Reader) (err error) {
	msg.CountNeeded, err = common.ReadInt32(r)
	return err
}
