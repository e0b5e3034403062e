// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package mnpayments

import (
	"github.com/nanucoin/mnpayments/common"
	"github.com/nanucoin/mnpayments/common/config"
)

// Schedule is the flat reward schedule configured by RewardPerBlock and
// MasternodeRewardPercent. The masternode share does not depend on the
// node count.
type Schedule struct {
	reward  common.Fixed64
	percent int64
}

func NewSchedule(params *config.Configuration) *Schedule {
	return &Schedule{
		reward:  params.MasternodeConfiguration.RewardPerBlock,
		percent: int64(params.MasternodeConfiguration.MasternodeRewardPercent),
	}
}

func (s *Schedule) BlockValue(height int32) common.Fixed64 {
	return s.reward
}

func (s *Schedule) MasternodePayment(height int32, blockValue common.Fixed64,
	nodeCount int) common.Fixed64 {
	return blockValue * common.Fixed64(s.percent) / 100
}
