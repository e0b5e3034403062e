// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package mnpayments

import (
	"github.com/nanucoin/mnpayments/common"
	"github.com/nanucoin/mnpayments/p2p"
	"github.com/nanucoin/mnpayments/p2p/msg"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// Masternode is the registry view of one service node.
type Masternode struct {
	Outpoint         wire.OutPoint
	PubKeyCollateral []byte
	PubKeyMasternode []byte
	ProtocolVersion  uint32
}

// PayeeScript returns the pay-to-pubkey-hash script paying the node's
// collateral key.
func (mn *Masternode) PayeeScript() ([]byte, error) {
	return common.PayToPubKeyHashScript(mn.PubKeyCollateral)
}

// Registry is the masternode list and ranking oracle.
type Registry interface {
	// Find returns the node with the given collateral outpoint or nil.
	Find(outpoint wire.OutPoint) *Masternode

	// Rank returns the deterministic rank of the node at height among nodes
	// running at least minProtocol. The second value is false when the node
	// is unknown.
	Rank(outpoint wire.OutPoint, height int32, minProtocol uint32) (int, bool)

	CountEnabled() int
	Size() int

	// NextInQueueForPayment returns the node due for payment at height or
	// nil when no node qualifies.
	NextInQueueForPayment(height int32) *Masternode

	// CurrentMasternode returns the highest ranked node or nil.
	CurrentMasternode() *Masternode

	// AskForMasternode requests the full record of a node from peer.
	AskForMasternode(peer Peer, outpoint wire.OutPoint)
}

// Signer signs and verifies text messages.
type Signer interface {
	SignMessage(message string, priKey []byte) ([]byte, error)
	VerifyMessage(pubKey []byte, signature []byte, message string) error
}

// Budget is the superblock subsystem that preempts masternode payments on
// budget heights.
type Budget interface {
	IsBudgetPaymentBlock(height int32) bool
	IsTransactionValid(tx *wire.MsgTx, height int32) bool
	FillBlockPayee(tx *wire.MsgTx, fees common.Fixed64, proofOfStake bool)
	RequiredPaymentsString(height int32) string
}

// Chain gives read access to the best chain.
type Chain interface {
	// TryTip returns the tip height and hash without blocking. The last
	// value is false when the chain state is busy or has no tip.
	TryTip() (int32, chainhash.Hash, bool)

	// Tip returns the tip height and hash, waiting for the chain state if
	// it is busy. The last value is false only when there is no tip yet.
	Tip() (int32, chainhash.Hash, bool)

	BlockHash(height int32) (chainhash.Hash, bool)
	BlockHeight(hash chainhash.Hash) (int32, bool)
}

// SyncTracker follows the masternode sync progress of this node.
type SyncTracker interface {
	IsBlockchainSynced() bool
	IsSynced() bool
	AddedMasternodeWinner(hash chainhash.Hash)
	ForgetMasternodeWinner(hash chainhash.Hash)
}

// SporkID identifies a network wide feature switch.
type SporkID int32

const (
	SporkMasternodePaymentEnforcement SporkID = 10007
	SporkMasternodeBudgetEnforcement  SporkID = 10008
	SporkNewProtocolEnforcement       SporkID = 10009
	SporkEnableSuperblocks            SporkID = 10012
)

// Sporks reports the state of feature switches.
type Sporks interface {
	IsActive(id SporkID) bool
}

// RewardSchedule computes block and masternode rewards.
type RewardSchedule interface {
	BlockValue(height int32) common.Fixed64
	MasternodePayment(height int32, blockValue common.Fixed64, nodeCount int) common.Fixed64
}

// Peer is a connected remote node.
type Peer interface {
	ID() uint64
	String() string
	ProtocolVersion() uint32
	PushInventory(inv *msg.InvVect)
	SendMessage(m p2p.Message)
	AddBanScore(score uint32, reason string)
}

// Relayer announces inventory to all connected peers.
type Relayer interface {
	RelayInventory(inv *msg.InvVect, data interface{})
}
