// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package mnpayments

import (
	"errors"
	"fmt"

	"github.com/nanucoin/mnpayments/common"
	"github.com/nanucoin/mnpayments/log"
	"github.com/nanucoin/mnpayments/p2p"
	"github.com/nanucoin/mnpayments/p2p/msg"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	lru "github.com/hashicorp/golang-lru"
)

// defaultFulfilledRequests is used when no cache size is configured.
const defaultFulfilledRequests = 1024

// Syncer answers winner list requests and admits votes relayed by peers.
type Syncer struct {
	cfg    *Config
	ledger *Ledger

	// fulfilled remembers the peers that already received the winner list
	// in this session.
	fulfilled *lru.Cache
}

func NewSyncer(cfg *Config, ledger *Ledger) (*Syncer, error) {
	size := cfg.mn().FulfilledRequestCacheSize
	if size <= 0 {
		size = defaultFulfilledRequests
	}
	fulfilled, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Syncer{cfg: cfg, ledger: ledger, fulfilled: fulfilled}, nil
}

// MakeEmptyMessage returns an empty message for the commands handled by
// the syncer.
func MakeEmptyMessage(cmd string) (p2p.Message, error) {
	switch cmd {
	case p2p.CmdGetMNWinners:
		return &msg.GetMNWinners{}, nil
	case p2p.CmdMNWinner:
		return &msg.MNWinner{Serializable: new(PaymentVote)}, nil
	case p2p.CmdSyncStatusCount:
		return &msg.SyncStatusCount{}, nil
	case p2p.CmdInv:
		return &msg.Inv{}, nil
	}
	return nil, fmt.Errorf("unhandled command [%s]", cmd)
}

// HandleMessage dispatches a message received from peer. Nothing is
// processed until the blockchain is synced.
func (s *Syncer) HandleMessage(peer Peer, m p2p.Message) {
	if s.cfg.Sync != nil && !s.cfg.Sync.IsBlockchainSynced() {
		return
	}

	switch m := m.(type) {
	case *msg.GetMNWinners:
		s.OnGetMNWinners(peer, m)
	case *msg.MNWinner:
		s.OnMNWinner(peer, m)
	}
}

// OnGetMNWinners answers a winner list request. On the main network a peer
// may ask once per session.
func (s *Syncer) OnGetMNWinners(peer Peer, m *msg.GetMNWinners) {
	if s.cfg.Params.IsMainNet() && s.fulfilled.Contains(peer.ID()) {
		log.Infof("mnget - peer %s already asked me for the list", peer)
		peer.AddBanScore(banScore, "mnget requested twice")
		return
	}

	s.fulfilled.Add(peer.ID(), struct{}{})
	s.Sync(peer, m.CountNeeded)
	log.Infof("mnget - Sent Masternode winners to %s", peer)
}

// PeerDisconnected ends the request session of peer.
func (s *Syncer) PeerDisconnected(peer Peer) {
	s.fulfilled.Remove(peer.ID())
}

// Sync announces every stored vote within
// [tip - min(countNeeded, enabled*1.25), tip + 20] to peer, followed by
// the number of announced votes.
func (s *Syncer) Sync(peer Peer, countNeeded int32) {
	tip, _, ok := s.cfg.Chain.TryTip()
	if !ok {
		return
	}

	count := int32(s.cfg.Registry.CountEnabled() * 5 / 4)
	if countNeeded > count {
		countNeeded = count
	}

	hashes := s.ledger.VotesInRange(tip-countNeeded, tip+futureWindow)
	for i := range hashes {
		peer.PushInventory(msg.NewInvVect(common.MASTERNODEWINNER, &hashes[i]))
	}
	peer.SendMessage(msg.NewSyncStatusCount(msg.MasternodeSyncMNW, int32(len(hashes))))
}

// OnMNWinner admits a vote relayed by peer.
func (s *Syncer) OnMNWinner(peer Peer, m *msg.MNWinner) {
	vote, ok := m.Serializable.(*PaymentVote)
	if !ok {
		return
	}

	if peer.ProtocolVersion() < s.cfg.ActiveProtocol() {
		return
	}

	tip, _, ok := s.cfg.Chain.TryTip()
	if !ok {
		return
	}

	hash := vote.Hash()
	result, err := s.ledger.Admit(vote, tip, s.cfg.Registry.CountEnabled())
	if err != nil {
		var rej *RejectError
		if !errors.As(err, &rej) {
			log.Warnf("mnw - %s", err)
			return
		}
		log.Debugf("mnw - %s from %s", rej.Reason, peer)
		if rej.BanScore > 0 {
			peer.AddBanScore(rej.BanScore, rej.Reason)
		}
		if rej.AskForNode {
			s.cfg.Registry.AskForMasternode(peer, vote.Outpoint)
		}
		return
	}

	switch result {
	case AlreadySeen:
		log.Debugf("mnw - Already seen - %s bestHeight %d", hash, tip)
	case Admitted:
		log.Debugf("mnw - winning vote - Addr %s Height %d bestHeight %d - %s",
			common.ScriptToAddress(vote.Payee, s.cfg.Params.AddressVersion),
			vote.Height, tip, OutpointShortString(vote.Outpoint))
		s.Relay(vote)
	}
	if s.cfg.Sync != nil {
		s.cfg.Sync.AddedMasternodeWinner(hash)
	}
}

// Relay announces vote to all peers.
func (s *Syncer) Relay(vote *PaymentVote) {
	if s.cfg.Relayer == nil {
		return
	}
	hash := vote.Hash()
	s.cfg.Relayer.RelayInventory(msg.NewInvVect(common.MASTERNODEWINNER, &hash),
		msg.NewMNWinner(vote))
}

// Winner returns the message carrying the stored vote with hash, used to
// answer data requests for announced inventory.
func (s *Syncer) Winner(hash chainhash.Hash) (*msg.MNWinner, bool) {
	vote, ok := s.ledger.Vote(hash)
	if !ok {
		return nil, false
	}
	return msg.NewMNWinner(vote), true
}
