// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package msg

import (
	"github.com/nanucoin/mnpayments/common"
	"github.com/nanucoin/mnpayments/p2p"
)

const (
	// winnerCacheSize indicates the limit size of winner message cache.
	winnerCacheSize = 100

	// maxWinnerSize is the upper bound of an encoded payment vote: outpoint,
	// height, payee script and compact signature with their length prefixes.
	maxWinnerSize = 36 + 4 + 9 + 10000 + 9 + 65
)

// Ensure MNWinner implement p2p.Message interface.
var _ p2p.Message = (*MNWinner)(nil)

var (
	toMNWinner = func(vote common.Serializable) p2p.Message {
		return &MNWinner{vote}
	}

	winnerCache = NewCache(winnerCacheSize, toMNWinner)
)

// MNWinner carries one masternode payment vote.
type MNWinner struct {
	common.Serializable
}

// NewMNWinner returns the message for vote, re-using the cached message of
// a vote relayed before.
func NewMNWinner(vote common.Serializable) *MNWinner {
	return winnerCache.Get(vote).(*MNWinner)
}

func (msg *MNWinner) CMD() string {
	return p2p.CmdMNWinner
}

func (msg *MNWinner) MaxLength() uint32 {
	return maxWinnerSize
}
