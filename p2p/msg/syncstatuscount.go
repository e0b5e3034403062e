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

// Sync item identifiers carried by SyncStatusCount.
const (
	MasternodeSyncList   = 2
	MasternodeSyncMNW    = 3
	MasternodeSyncBudget = 4
)

// Ensure SyncStatusCount implement p2p.Message interface.
var _ p2p.Message = (*SyncStatusCount)(nil)

// SyncStatusCount tells a syncing peer how many items of a kind were
// announced in answer to its request.
type SyncStatusCount struct {
	ItemID int32
	Count  int32
}

func NewSyncStatusCount(itemID, count int32) *SyncStatusCount {
	return &SyncStatusCount{ItemID: itemID, Count: count}
}

func (msg *SyncStatusCount) CMD() string {
	return p2p.CmdSyncStatusCount
}

func (msg *SyncStatusCount) MaxLength() uint32 {
	return 8
}

func (msg *SyncStatusCount) Serialize(w io.Writer) error {
	if err := common.WriteInt32(w, msg.ItemID); err != nil {
		return err
	}
	return common.WriteInt32(w, msg.Count)
}

func (msg *SyncStatusCount) Deserialize(r io.Reader) (err error) {
	if msg.ItemID, err = common.ReadInt32(r); err != nil {
		return err
	}
	msg.Count, err = common.ReadInt32(r)
	return err
}
