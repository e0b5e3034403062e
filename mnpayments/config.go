// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package mnpayments

import (
	"github.com/nanucoin/mnpayments/common/config"
)

// Config holds the parameters and collaborators shared by the ledger, the
// producer, the syncer and the consensus gate.
type Config struct {
	Params   *config.Configuration
	Registry Registry
	Signer   Signer
	Budget   Budget
	Chain    Chain
	Sync     SyncTracker
	Sporks   Sporks
	Schedule RewardSchedule
	Relayer  Relayer
}

func (c *Config) mn() *config.MasternodeConfiguration {
	return &c.Params.MasternodeConfiguration
}

// ActiveProtocol returns the minimum protocol version a voting masternode
// or a relaying peer must run.
func (c *Config) ActiveProtocol() uint32 {
	if c.Sporks != nil && c.Sporks.IsActive(SporkNewProtocolEnforcement) {
		return c.mn().MinPeerProtoVersionAfterEnforcement
	}
	return c.mn().MinPeerProtoVersionBeforeEnforcement
}

func (c *Config) sporkActive(id SporkID) bool {
	return c.Sporks != nil && c.Sporks.IsActive(id)
}

func (c *Config) isSynced() bool {
	return c.Sync != nil && c.Sync.IsSynced()
}

func (c *Config) isBudgetPaymentBlock(height int32) bool {
	return c.Budget != nil && c.Budget.IsBudgetPaymentBlock(height)
}

// setDefaults fills the optional collaborators left nil. Constructors call
// it before the config is shared between goroutines; nothing writes the
// config afterwards.
func (c *Config) setDefaults() {
	if c.Schedule == nil && c.Params != nil {
		c.Schedule = NewSchedule(c.Params)
	}
}

func (c *Config) schedule() RewardSchedule {
	return c.Schedule
}
