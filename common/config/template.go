// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package config

// Template is the sample configuration written by "mnpayctl template".
var Template = Config{
	Configuration: &Configuration{
		ActiveNet:      "testnet",
		Magic:          0xba657645,
		MessageMagic:   "DarkNet Signed Message:\n",
		AddressVersion: 139,
		DataDir:        DataDir,
		SnapshotFile:   SnapshotFile,
		LogLevel:       "info",
		MasternodeConfiguration: MasternodeConfiguration{
			LastPoWBlock:                         200,
			MasternodeCountDrift:                 4,
			BudgetPaymentCycleBlocks:             144,
			SignaturesRequired:                   6,
			SignaturesTotal:                      10,
			MinPeerProtoVersionBeforeEnforcement: 90040,
			MinPeerProtoVersionAfterEnforcement:  90050,
			RewardPerBlock:                       25000000000,
			MasternodeRewardPercent:              60,
			FulfilledRequestCacheSize:            1024,
		},
	},
}
