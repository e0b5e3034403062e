// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package config

import (
	"encoding/binary"
	"path/filepath"

	"github.com/nanucoin/mnpayments/common"
)

const (
	// ConfigFile for node config
	ConfigFile = "./config.json"
	// DataDir storing the node data.
	DataDir = "data"
	// SnapshotFile is the file name of the masternode payments snapshot.
	SnapshotFile = "mnpayments.dat"
	// SnapshotDB is the directory name of the LevelDB snapshot store.
	SnapshotDB = "mnpayments"
)

type Config struct {
	*Configuration `json:"Configuration"`
}

var (
	// DefaultParams defines the default network parameters.
	DefaultParams = *GetDefaultParams()

	Parameters *Configuration
)

func SetParameters(configuration *Configuration) {
	Parameters = configuration
}

func GetDefaultParams() *Configuration {
	return &Configuration{
		ActiveNet:      "mainnet",
		Magic:          0xe9fdc490,
		MessageMagic:   "DarkNet Signed Message:\n",
		AddressVersion: 30,
		DataDir:        DataDir,
		SnapshotFile:   SnapshotFile,
		LogLevel:       "info",
		MasternodeConfiguration: MasternodeConfiguration{
			LastPoWBlock:                         259200,
			MasternodeCountDrift:                 20,
			BudgetPaymentCycleBlocks:             43200,
			SignaturesRequired:                   6,
			SignaturesTotal:                      10,
			MinPeerProtoVersionBeforeEnforcement: 90040,
			MinPeerProtoVersionAfterEnforcement:  90050,
			RewardPerBlock:                       common.Fixed64(250 * 100000000),
			MasternodeRewardPercent:              60,
			FulfilledRequestCacheSize:            1024,
		},
	}
}

// TestNet returns the network parameters for the test network.
func (p *Configuration) TestNet() *Configuration {
	p.ActiveNet = "testnet"
	p.Magic = 0xba657645
	p.AddressVersion = 139
	p.MasternodeConfiguration.LastPoWBlock = 200
	p.MasternodeConfiguration.MasternodeCountDrift = 4
	p.MasternodeConfiguration.BudgetPaymentCycleBlocks = 144
	return p
}

// RegNet returns the network parameters for the regression test network.
func (p *Configuration) RegNet() *Configuration {
	p.ActiveNet = "regnet"
	p.Magic = 0xac7ecfa1
	p.AddressVersion = 139
	p.MasternodeConfiguration.LastPoWBlock = 250
	p.MasternodeConfiguration.MasternodeCountDrift = 4
	p.MasternodeConfiguration.BudgetPaymentCycleBlocks = 144
	return p
}

// IsMainNet reports whether the configuration selects the primary network,
// where sync requests are limited to one per peer session.
func (p *Configuration) IsMainNet() bool {
	switch p.ActiveNet {
	case "testnet", "test", "regnet", "regtest", "reg":
		return false
	}
	return true
}

// NetworkMagic returns the four network magic bytes as they appear on the
// wire and in snapshot files.
func (p *Configuration) NetworkMagic() [4]byte {
	var magic [4]byte
	binary.LittleEndian.PutUint32(magic[:], p.Magic)
	return magic
}

// SnapshotPath returns the full path of the snapshot file.
func (p *Configuration) SnapshotPath() string {
	return filepath.Join(p.DataDir, p.SnapshotFile)
}

// SnapshotDBPath returns the full path of the LevelDB snapshot store.
func (p *Configuration) SnapshotDBPath() string {
	return filepath.Join(p.DataDir, SnapshotDB)
}

// Configuration defines the configurable parameters of the masternode
// payments engine.
type Configuration struct {
	// ActiveNet selects the parameter preset, mainnet, testnet or regnet.
	ActiveNet string `json:"ActiveNet"`
	// Magic defines the magic number of the peer-to-peer network.
	Magic uint32 `json:"Magic"`
	// MessageMagic is prepended to every signed message.
	MessageMagic string `json:"MessageMagic"`
	// AddressVersion is the base58 version byte of pay-to-pubkey-hash
	// addresses, used in log output.
	AddressVersion byte `json:"AddressVersion"`
	// DataDir is the directory holding the snapshot files.
	DataDir string `json:"DataDir"`
	// SnapshotFile is the snapshot file name inside DataDir.
	SnapshotFile string `json:"SnapshotFile"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"LogLevel"`
	// LogFile redirects log output when set.
	LogFile string `json:"LogFile"`
	// MasternodeConfiguration holds the payment voting parameters.
	MasternodeConfiguration MasternodeConfiguration `json:"MasternodeConfiguration"`
}

// MasternodeConfiguration defines the consensus parameters of masternode
// payment voting.
type MasternodeConfiguration struct {
	// LastPoWBlock is the last height paid by proof of work. Coinbase fees
	// are added to the miner output up to this height.
	LastPoWBlock int32 `json:"LastPoWBlock"`
	// MasternodeCountDrift is added to the local masternode count when
	// computing the minimum required payment.
	MasternodeCountDrift int `json:"MasternodeCountDrift"`
	// BudgetPaymentCycleBlocks is the superblock cadence.
	BudgetPaymentCycleBlocks int32 `json:"BudgetPaymentCycleBlocks"`
	// SignaturesRequired is the vote count a payee needs before payments
	// to it are enforced.
	SignaturesRequired int `json:"SignaturesRequired"`
	// SignaturesTotal is the number of top ranked masternodes allowed to
	// vote for a height.
	SignaturesTotal int `json:"SignaturesTotal"`
	// MinPeerProtoVersionBeforeEnforcement is the active protocol while
	// the new protocol spork is off.
	MinPeerProtoVersionBeforeEnforcement uint32 `json:"MinPeerProtoVersionBeforeEnforcement"`
	// MinPeerProtoVersionAfterEnforcement is the active protocol once the
	// new protocol spork is on.
	MinPeerProtoVersionAfterEnforcement uint32 `json:"MinPeerProtoVersionAfterEnforcement"`
	// RewardPerBlock is the block value used by the default schedule.
	RewardPerBlock common.Fixed64 `json:"RewardPerBlock"`
	// MasternodeRewardPercent is the masternode share of the block value.
	MasternodeRewardPercent int `json:"MasternodeRewardPercent"`
	// FulfilledRequestCacheSize bounds the number of peers remembered as
	// having requested the winner list.
	FulfilledRequestCacheSize int `json:"FulfilledRequestCacheSize"`
	// MasternodePrivKey is the hex encoded key this node signs payment
	// votes with. Empty when the node is not a masternode.
	MasternodePrivKey string `json:"MasternodePrivKey"`
	// MasternodeOutpoint is the collateral outpoint of this masternode in
	// "txid:index" form.
	MasternodeOutpoint string `json:"MasternodeOutpoint"`
}
