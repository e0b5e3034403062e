// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package mnpayments

import (
	"fmt"

	"github.com/nanucoin/mnpayments/common"
	"github.com/nanucoin/mnpayments/crypto"
	"github.com/nanucoin/mnpayments/log"

	"github.com/btcsuite/btcd/wire"
)

// LocalMasternode identifies the masternode run by this process.
type LocalMasternode struct {
	Outpoint wire.OutPoint
	PrivKey  []byte
	PubKey   []byte
}

// NewLocalMasternode parses the hex encoded key and the "txid:index"
// collateral outpoint.
func NewLocalMasternode(privKeyHex, outpoint string) (*LocalMasternode, error) {
	priv, err := common.HexStringToBytes(privKeyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid masternode private key: %v", err)
	}
	pub, err := crypto.PublicKeyFromPrivate(priv)
	if err != nil {
		return nil, fmt.Errorf("invalid masternode private key: %v", err)
	}
	op, err := ParseOutpoint(outpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid masternode outpoint: %v", err)
	}
	return &LocalMasternode{Outpoint: op, PrivKey: priv, PubKey: pub}, nil
}

// Producer casts the vote of the local masternode for upcoming heights.
type Producer struct {
	cfg    *Config
	ledger *Ledger
	syncer *Syncer
	local  *LocalMasternode
}

// NewProducer returns a producer for local, which may be nil when this
// process is not a masternode.
func NewProducer(cfg *Config, ledger *Ledger, syncer *Syncer,
	local *LocalMasternode) *Producer {
	return &Producer{cfg: cfg, ledger: ledger, syncer: syncer, local: local}
}

func abort(height int32, format string, a ...interface{}) *AbortError {
	return &AbortError{Height: height, Reason: fmt.Sprintf(format, a...)}
}

// ProcessBlock votes for the payee of height when the local masternode is
// among the top ranked nodes. Failures leave the last voted height
// untouched so the next tip retries.
func (p *Producer) ProcessBlock(height int32) error {
	if p.local == nil {
		return abort(height, "not a masternode")
	}

	params := p.cfg.mn()
	rank, ok := p.cfg.Registry.Rank(p.local.Outpoint, height-rankOffset,
		p.cfg.ActiveProtocol())
	if !ok {
		log.Debug("ProcessBlock - Unknown Masternode")
		return abort(height, "unknown masternode")
	}
	if rank > params.SignaturesTotal {
		log.Debugf("ProcessBlock - Masternode not in the top %d (%d)",
			params.SignaturesTotal, rank)
		return abort(height, "masternode not in the top %d (%d)",
			params.SignaturesTotal, rank)
	}

	if height <= p.ledger.LastLocalHeight() {
		return abort(height, "already voted up to height %d", p.ledger.LastLocalHeight())
	}

	// budget payment blocks are handled by the budgeting software
	if p.cfg.isBudgetPaymentBlock(height) {
		return abort(height, "budget payment block")
	}

	log.Infof("ProcessBlock Start nHeight %d - vin %s", height,
		OutpointShortString(p.local.Outpoint))

	// pay to the oldest masternode that still had no payment but its input
	// is old enough and it was active long enough
	mn := p.cfg.Registry.NextInQueueForPayment(height)
	if mn == nil {
		log.Info("ProcessBlock Failed to find masternode to pay")
		return abort(height, "no masternode to pay")
	}

	payee, err := mn.PayeeScript()
	if err != nil {
		return abort(height, "invalid payee: %v", err)
	}
	log.Infof("ProcessBlock Winner payee %s nHeight %d",
		common.ScriptToAddress(payee, p.cfg.Params.AddressVersion), height)

	vote := NewPaymentVote(p.local.Outpoint, height, payee)
	if err := vote.Sign(p.cfg.Signer, p.local.PrivKey); err != nil {
		return abort(height, "sign: %v", err)
	}
	if err := vote.Verify(p.cfg.Signer, p.local.PubKey); err != nil {
		return abort(height, "verify: %v", err)
	}

	tip, _, ok := p.cfg.Chain.TryTip()
	if !ok {
		return abort(height, "chain tip unavailable")
	}
	result, err := p.ledger.Admit(vote, tip, p.cfg.Registry.CountEnabled())
	if err != nil {
		return abort(height, "%v", err)
	}
	if result != Admitted {
		return abort(height, "vote %s", result)
	}

	p.ledger.SetLastLocalHeight(height)
	p.syncer.Relay(vote)
	return nil
}
