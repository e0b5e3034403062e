// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package mnpayments

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"sort"
	"sync"

	"github.com/nanucoin/mnpayments/common"
	"github.com/nanucoin/mnpayments/log"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

const (
	// rankOffset is the distance between a voted height and the block whose
	// hash seeds the masternode ranking.
	rankOffset = 100

	// futureWindow is how far above the tip votes are accepted.
	futureWindow = 20

	// minRetention is the lowest number of heights kept by Prune.
	minRetention = 1000

	// scheduleLookAhead is the number of heights above the tip checked by
	// IsScheduled.
	scheduleLookAhead = 8

	// maxSnapshotEntries bounds vote and block counts read from a snapshot.
	maxSnapshotEntries = 1 << 22
)

// AdmitResult tells how an accepted vote was handled.
type AdmitResult int

const (
	// Admitted means the vote was stored and should be relayed.
	Admitted AdmitResult = iota

	// AlreadySeen means a vote with the same hash was stored before.
	AlreadySeen
)

func (r AdmitResult) String() string {
	switch r {
	case Admitted:
		return "admitted"
	case AlreadySeen:
		return "already seen"
	}
	return "unknown"
}

type voterKey struct {
	outpoint wire.OutPoint
	height   int32
}

// firstVotableHeight returns the lowest height accepted when count
// masternodes are enabled: tip - ceil(count * 1.25).
func firstVotableHeight(tip int32, count int) int32 {
	return tip - int32((count*5+3)/4)
}

// Ledger owns every admitted payment vote and the per height tallies built
// from them. One lock guards all of its maps, so a tally is never observed
// without the votes backing it.
type Ledger struct {
	cfg *Config

	mtx             sync.RWMutex
	votes           map[chainhash.Hash]*PaymentVote
	blocks          map[int32]*BlockPayees
	lastVotes       map[voterKey]chainhash.Hash
	lastLocalHeight int32
}

func NewLedger(cfg *Config) *Ledger {
	cfg.setDefaults()
	return &Ledger{
		cfg:       cfg,
		votes:     make(map[chainhash.Hash]*PaymentVote),
		blocks:    make(map[int32]*BlockPayees),
		lastVotes: make(map[voterKey]chainhash.Hash),
	}
}

// Admit runs vote through the admission gates and stores it on success.
// tip is the local chain height and enabled the number of enabled
// masternodes. Rejections are returned as *RejectError.
func (l *Ledger) Admit(vote *PaymentVote, tip int32, enabled int) (AdmitResult, error) {
	params := l.cfg.mn()
	hash := vote.Hash()

	firstBlock := firstVotableHeight(tip, enabled)
	if vote.Height < firstBlock || vote.Height > tip+futureWindow {
		return 0, reject("winner out of range - FirstBlock %d Height %d bestHeight %d",
			firstBlock, vote.Height, tip)
	}

	l.mtx.RLock()
	_, seen := l.votes[hash]
	_, voted := l.lastVotes[voterKey{vote.Outpoint, vote.Height}]
	l.mtx.RUnlock()
	if seen {
		return AlreadySeen, nil
	}

	mn := l.cfg.Registry.Find(vote.Outpoint)
	if mn == nil {
		err := reject("unknown masternode %s", OutpointShortString(vote.Outpoint))
		err.AskForNode = true
		return 0, err
	}

	protocol := l.cfg.ActiveProtocol()
	if mn.ProtocolVersion < protocol {
		return 0, reject("masternode protocol too old %d - req %d",
			mn.ProtocolVersion, protocol)
	}

	total := params.SignaturesTotal
	rank, ok := l.cfg.Registry.Rank(vote.Outpoint, vote.Height-rankOffset, protocol)
	if !ok {
		return 0, reject("unknown masternode rank %s", OutpointShortString(vote.Outpoint))
	}
	if rank > total {
		err := reject("masternode not in the top %d (%d)", total, rank)
		// Nodes that are only slightly off are common while lists
		// converge.
		if rank > total*2 && l.cfg.isSynced() {
			err.BanScore = banScore
		}
		return 0, err
	}

	if voted {
		return 0, reject("masternode already voted - %s", OutpointShortString(vote.Outpoint))
	}

	if err := vote.Verify(l.cfg.Signer, mn.PubKeyMasternode); err != nil {
		rej := reject("invalid signature: %v", err)
		rej.AskForNode = true
		if l.cfg.isSynced() {
			rej.BanScore = banScore
		}
		return 0, rej
	}

	if _, ok := l.cfg.Chain.BlockHash(vote.Height - rankOffset); !ok {
		return 0, reject("unknown block at height %d", vote.Height-rankOffset)
	}

	return l.add(hash, vote)
}

// add stores a verified vote.
func (l *Ledger) add(hash chainhash.Hash, vote *PaymentVote) (AdmitResult, error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	if _, ok := l.votes[hash]; ok {
		return AlreadySeen, nil
	}
	key := voterKey{vote.Outpoint, vote.Height}
	if _, ok := l.lastVotes[key]; ok {
		return 0, reject("masternode already voted - %s", OutpointShortString(vote.Outpoint))
	}

	l.votes[hash] = vote
	l.lastVotes[key] = hash
	block, ok := l.blocks[vote.Height]
	if !ok {
		block = NewBlockPayees(vote.Height)
		l.blocks[vote.Height] = block
	}
	block.AddPayee(vote.Payee, 1)
	return Admitted, nil
}

// Prune removes the votes older than the retention window and the tallies
// of their heights. The window is max(nodeCount * 1.25, 1000) heights. The
// hashes of removed votes are handed to the sync tracker.
func (l *Ledger) Prune(tip int32, nodeCount int) {
	limit := int32(nodeCount * 5 / 4)
	if limit < minRetention {
		limit = minRetention
	}

	var removed []chainhash.Hash
	l.mtx.Lock()
	for hash, vote := range l.votes {
		if tip-vote.Height <= limit {
			continue
		}
		log.Debugf("Removing old Masternode payment - block %d", vote.Height)
		delete(l.votes, hash)
		delete(l.lastVotes, voterKey{vote.Outpoint, vote.Height})
		delete(l.blocks, vote.Height)
		removed = append(removed, hash)
	}
	l.mtx.Unlock()

	if l.cfg.Sync == nil {
		return
	}
	for _, hash := range removed {
		l.cfg.Sync.ForgetMasternodeWinner(hash)
	}
}

// Clean prunes against the current tip and registry size. It does nothing
// while the chain tip is unavailable, the next tip prunes instead.
func (l *Ledger) Clean() {
	tip, _, ok := l.cfg.Chain.TryTip()
	if !ok {
		log.Debug("Chain tip unavailable, pruning deferred to the next tip")
		return
	}
	l.Prune(tip, l.cfg.Registry.Size())
}

// Clear drops every vote and tally.
func (l *Ledger) Clear() {
	l.mtx.Lock()
	l.votes = make(map[chainhash.Hash]*PaymentVote)
	l.blocks = make(map[int32]*BlockPayees)
	l.lastVotes = make(map[voterKey]chainhash.Hash)
	l.lastLocalHeight = 0
	l.mtx.Unlock()
}

// LastLocalHeight returns the last height the local masternode voted for.
func (l *Ledger) LastLocalHeight() int32 {
	l.mtx.RLock()
	defer l.mtx.RUnlock()
	return l.lastLocalHeight
}

// SetLastLocalHeight records a local vote. The height never decreases.
func (l *Ledger) SetLastLocalHeight(height int32) {
	l.mtx.Lock()
	if height > l.lastLocalHeight {
		l.lastLocalHeight = height
	}
	l.mtx.Unlock()
}

// HasVote reports whether the vote with hash is stored.
func (l *Ledger) HasVote(hash chainhash.Hash) bool {
	l.mtx.RLock()
	defer l.mtx.RUnlock()
	_, ok := l.votes[hash]
	return ok
}

// Vote returns the stored vote with hash.
func (l *Ledger) Vote(hash chainhash.Hash) (*PaymentVote, bool) {
	l.mtx.RLock()
	defer l.mtx.RUnlock()
	vote, ok := l.votes[hash]
	return vote, ok
}

// VotesInRange returns the hashes of the votes whose height lies in
// [from, to].
func (l *Ledger) VotesInRange(from, to int32) []chainhash.Hash {
	l.mtx.RLock()
	defer l.mtx.RUnlock()
	var hashes []chainhash.Hash
	for hash, vote := range l.votes {
		if vote.Height >= from && vote.Height <= to {
			hashes = append(hashes, hash)
		}
	}
	return hashes
}

// BlockPayee returns the leading payee voted for height.
func (l *Ledger) BlockPayee(height int32) ([]byte, bool) {
	l.mtx.RLock()
	defer l.mtx.RUnlock()
	block, ok := l.blocks[height]
	if !ok {
		return nil, false
	}
	payee, ok := block.Payee()
	return append([]byte(nil), payee...), ok
}

// Payees returns the tally of height in first seen order.
func (l *Ledger) Payees(height int32) []Payee {
	l.mtx.RLock()
	defer l.mtx.RUnlock()
	block, ok := l.blocks[height]
	if !ok {
		return nil
	}
	return block.Payees()
}

// IsTransactionValid checks the masternode payment of tx against the votes
// for height. Heights without votes accept any transaction.
func (l *Ledger) IsTransactionValid(tx *wire.MsgTx, height int32) error {
	params := l.cfg.mn()
	schedule := l.cfg.schedule()

	// Peers see different node counts. A larger count lowers the payment,
	// so the upper bound yields the minimum amount to require.
	reward := schedule.BlockValue(height)
	required := schedule.MasternodePayment(height, reward,
		l.cfg.Registry.Size()+params.MasternodeCountDrift)

	l.mtx.RLock()
	defer l.mtx.RUnlock()
	block, ok := l.blocks[height]
	if !ok {
		return nil
	}
	return block.IsTransactionValid(tx, required,
		int32(params.SignaturesRequired), l.cfg.Params.AddressVersion)
}

// RequiredPaymentsString describes the payees voted for height.
func (l *Ledger) RequiredPaymentsString(height int32) string {
	l.mtx.RLock()
	defer l.mtx.RUnlock()
	block, ok := l.blocks[height]
	if !ok {
		return "Unknown"
	}
	return block.RequiredPaymentsString(l.cfg.Params.AddressVersion)
}

// IsScheduled reports whether mn leads the votes of any height from the tip
// up to eight heights above it, skipping notHeight.
func (l *Ledger) IsScheduled(mn *Masternode, notHeight int32) bool {
	tip, _, ok := l.cfg.Chain.TryTip()
	if !ok {
		return false
	}
	script, err := mn.PayeeScript()
	if err != nil {
		return false
	}

	l.mtx.RLock()
	defer l.mtx.RUnlock()
	for h := tip; h <= tip+scheduleLookAhead; h++ {
		if h == notHeight {
			continue
		}
		block, ok := l.blocks[h]
		if !ok {
			continue
		}
		if payee, ok := block.Payee(); ok && bytes.Equal(payee, script) {
			return true
		}
	}
	return false
}

// OldestBlock returns the lowest height with a tally, math.MaxInt32 when
// there is none.
func (l *Ledger) OldestBlock() int32 {
	l.mtx.RLock()
	defer l.mtx.RUnlock()
	oldest := int32(math.MaxInt32)
	for height := range l.blocks {
		if height < oldest {
			oldest = height
		}
	}
	return oldest
}

// NewestBlock returns the highest height with a tally, zero when there is
// none.
func (l *Ledger) NewestBlock() int32 {
	l.mtx.RLock()
	defer l.mtx.RUnlock()
	var newest int32
	for height := range l.blocks {
		if height > newest {
			newest = height
		}
	}
	return newest
}

// Len returns the number of stored votes and tallies.
func (l *Ledger) Len() (votes int, blocks int) {
	l.mtx.RLock()
	defer l.mtx.RUnlock()
	return len(l.votes), len(l.blocks)
}

func (l *Ledger) String() string {
	votes, blocks := l.Len()
	return fmt.Sprintf("Votes: %d, Blocks: %d", votes, blocks)
}

// Serialize writes the votes ordered by height and hash, then the tallies
// ordered by height.
func (l *Ledger) Serialize(w io.Writer) error {
	l.mtx.RLock()
	defer l.mtx.RUnlock()

	type entry struct {
		hash chainhash.Hash
		vote *PaymentVote
	}
	entries := make([]entry, 0, len(l.votes))
	for hash, vote := range l.votes {
		entries = append(entries, entry{hash, vote})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].vote.Height != entries[j].vote.Height {
			return entries[i].vote.Height < entries[j].vote.Height
		}
		return bytes.Compare(entries[i].hash[:], entries[j].hash[:]) < 0
	})

	if err := common.WriteVarUint(w, uint64(len(entries))); err != nil {
		return err
	}
	for _, e := range entries {
		if err := e.vote.Serialize(w); err != nil {
			return err
		}
	}

	heights := make([]int32, 0, len(l.blocks))
	for height := range l.blocks {
		heights = append(heights, height)
	}
	sort.Slice(heights, func(i, j int) bool { return heights[i] < heights[j] })

	if err := common.WriteVarUint(w, uint64(len(heights))); err != nil {
		return err
	}
	for _, height := range heights {
		if err := l.blocks[height].Serialize(w); err != nil {
			return err
		}
	}
	return nil
}

// Deserialize replaces the ledger content with the one read from r. The
// tallies must agree with the votes. On error the ledger is left
// unchanged.
func (l *Ledger) Deserialize(r io.Reader) error {
	count, err := common.ReadVarUint(r, maxSnapshotEntries)
	if err != nil {
		return err
	}
	votes := make(map[chainhash.Hash]*PaymentVote, count)
	lastVotes := make(map[voterKey]chainhash.Hash, count)
	expected := make(map[int32]map[string]int32)
	for i := uint64(0); i < count; i++ {
		vote := new(PaymentVote)
		if err := vote.Deserialize(r); err != nil {
			return err
		}
		hash := vote.Hash()
		key := voterKey{vote.Outpoint, vote.Height}
		if _, ok := lastVotes[key]; ok {
			return common.FuncError("Ledger.Deserialize",
				"double vote by "+OutpointShortString(vote.Outpoint))
		}
		votes[hash] = vote
		lastVotes[key] = hash
		if expected[vote.Height] == nil {
			expected[vote.Height] = make(map[string]int32)
		}
		expected[vote.Height][string(vote.Payee)]++
	}

	count, err = common.ReadVarUint(r, maxSnapshotEntries)
	if err != nil {
		return err
	}
	blocks := make(map[int32]*BlockPayees, count)
	for i := uint64(0); i < count; i++ {
		block := new(BlockPayees)
		if err := block.Deserialize(r); err != nil {
			return err
		}
		if _, ok := blocks[block.Height]; ok {
			return common.FuncError("Ledger.Deserialize",
				fmt.Sprintf("duplicate block %d", block.Height))
		}
		blocks[block.Height] = block
	}

	for height, counts := range expected {
		block, ok := blocks[height]
		if !ok || len(block.payees) != len(counts) {
			return common.FuncError("Ledger.Deserialize",
				fmt.Sprintf("tally of block %d does not match votes", height))
		}
		for script, votes := range counts {
			if block.Votes([]byte(script)) != votes {
				return common.FuncError("Ledger.Deserialize",
					fmt.Sprintf("tally of block %d does not match votes", height))
			}
		}
	}
	for height := range blocks {
		if _, ok := expected[height]; !ok {
			return common.FuncError("Ledger.Deserialize",
				fmt.Sprintf("block %d has no votes", height))
		}
	}

	l.mtx.Lock()
	l.votes = votes
	l.blocks = blocks
	l.lastVotes = lastVotes
	l.mtx.Unlock()
	return nil
}
