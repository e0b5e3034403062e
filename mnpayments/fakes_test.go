// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package mnpayments

import (
	"encoding/binary"
	"sync"
	"testing"

	"github.com/nanucoin/mnpayments/common"
	"github.com/nanucoin/mnpayments/common/config"
	"github.com/nanucoin/mnpayments/crypto"
	"github.com/nanucoin/mnpayments/p2p"
	"github.com/nanucoin/mnpayments/p2p/msg"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"
)

const protocolVersion = 90050

type registry struct {
	mtx     sync.Mutex
	nodes   map[wire.OutPoint]*Masternode
	ranks   map[wire.OutPoint]int
	enabled int
	size    int
	next    *Masternode
	current *Masternode
	asked   []wire.OutPoint
}

func newRegistry() *registry {
	return &registry{
		nodes: make(map[wire.OutPoint]*Masternode),
		ranks: make(map[wire.OutPoint]int),
	}
}

func (r *registry) Find(op wire.OutPoint) *Masternode { return r.nodes[op] }

func (r *registry) Rank(op wire.OutPoint, height int32, minProtocol uint32) (int, bool) {
	rank, ok := r.ranks[op]
	return rank, ok
}

func (r *registry) CountEnabled() int                       { return r.enabled }
func (r *registry) Size() int                               { return r.size }
func (r *registry) NextInQueueForPayment(int32) *Masternode { return r.next }
func (r *registry) CurrentMasternode() *Masternode          { return r.current }

func (r *registry) AskForMasternode(peer Peer, op wire.OutPoint) {
	r.mtx.Lock()
	r.asked = append(r.asked, op)
	r.mtx.Unlock()
}

func heightHash(height int32) chainhash.Hash {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(height))
	return chainhash.DoubleHashH(buf[:])
}

// chain is busy while ready is false and has no tip at all while empty.
type chain struct {
	mtx   sync.Mutex
	tip   int32
	ready bool
	empty bool
}

func (c *chain) TryTip() (int32, chainhash.Hash, bool) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.tip, heightHash(c.tip), c.ready && !c.empty
}

func (c *chain) Tip() (int32, chainhash.Hash, bool) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.tip, heightHash(c.tip), !c.empty
}

func (c *chain) setReady(ready bool) {
	c.mtx.Lock()
	c.ready = ready
	c.mtx.Unlock()
}

func (c *chain) setTip(tip int32) {
	c.mtx.Lock()
	c.tip = tip
	c.mtx.Unlock()
}

func (c *chain) BlockHash(height int32) (chainhash.Hash, bool) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if height < 0 || height > c.tip {
		return chainhash.Hash{}, false
	}
	return heightHash(height), true
}

func (c *chain) BlockHeight(hash chainhash.Hash) (int32, bool) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	for h := int32(0); h <= c.tip; h++ {
		if heightHash(h) == hash {
			return h, true
		}
	}
	return 0, false
}

type syncTracker struct {
	mtx              sync.Mutex
	blockchainSynced bool
	synced           bool
	added            []chainhash.Hash
	forgotten        []chainhash.Hash
}

func (s *syncTracker) IsBlockchainSynced() bool { return s.blockchainSynced }
func (s *syncTracker) IsSynced() bool           { return s.synced }

func (s *syncTracker) AddedMasternodeWinner(hash chainhash.Hash) {
	s.mtx.Lock()
	s.added = append(s.added, hash)
	s.mtx.Unlock()
}

func (s *syncTracker) ForgetMasternodeWinner(hash chainhash.Hash) {
	s.mtx.Lock()
	s.forgotten = append(s.forgotten, hash)
	s.mtx.Unlock()
}

type sporks map[SporkID]bool

func (s sporks) IsActive(id SporkID) bool { return s[id] }

type budget struct {
	heights map[int32]bool
	valid   bool
	filled  int
}

func (b *budget) IsBudgetPaymentBlock(height int32) bool           { return b.heights[height] }
func (b *budget) IsTransactionValid(*wire.MsgTx, int32) bool       { return b.valid }
func (b *budget) RequiredPaymentsString(height int32) string       { return "budget" }
func (b *budget) FillBlockPayee(*wire.MsgTx, common.Fixed64, bool) { b.filled++ }

type relayer struct {
	mtx  sync.Mutex
	invs []*msg.InvVect
	data []interface{}
}

func (r *relayer) RelayInventory(inv *msg.InvVect, data interface{}) {
	r.mtx.Lock()
	r.invs = append(r.invs, inv)
	r.data = append(r.data, data)
	r.mtx.Unlock()
}

func (r *relayer) count() int {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return len(r.invs)
}

type peer struct {
	id        uint64
	protocol  uint32
	inventory []*msg.InvVect
	messages  []p2p.Message
	banScore  uint32
}

func (p *peer) ID() uint64                              { return p.id }
func (p *peer) String() string                          { return "peer" }
func (p *peer) ProtocolVersion() uint32                 { return p.protocol }
func (p *peer) PushInventory(inv *msg.InvVect)          { p.inventory = append(p.inventory, inv) }
func (p *peer) SendMessage(m p2p.Message)               { p.messages = append(p.messages, m) }
func (p *peer) AddBanScore(score uint32, reason string) { p.banScore += score }

// voter is a registered masternode with its signing key.
type voter struct {
	mn      *Masternode
	privKey []byte
	payee   []byte
}

type testEnv struct {
	cfg     *Config
	reg     *registry
	chain   *chain
	sync    *syncTracker
	sporks  sporks
	budget  *budget
	relayer *relayer
	voters  []*voter
}

func newTestEnv(t *testing.T, tip int32, voters int) *testEnv {
	env := &testEnv{
		reg:     newRegistry(),
		chain:   &chain{tip: tip, ready: true},
		sync:    &syncTracker{blockchainSynced: true},
		sporks:  sporks{},
		budget:  &budget{heights: map[int32]bool{}},
		relayer: &relayer{},
	}
	env.cfg = &Config{
		Params:   config.GetDefaultParams(),
		Registry: env.reg,
		Signer:   crypto.NewMessageSigner("test signed message:\n"),
		Budget:   env.budget,
		Chain:    env.chain,
		Sync:     env.sync,
		Sporks:   env.sporks,
		Relayer:  env.relayer,
	}
	for i := 0; i < voters; i++ {
		env.addVoter(t, i+1)
	}
	env.reg.enabled = 100
	env.reg.size = 100
	return env
}

func (e *testEnv) addVoter(t *testing.T, rank int) *voter {
	priv, pub, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	_, collateral, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	payee, err := common.PayToPubKeyHashScript(collateral)
	require.NoError(t, err)

	op := wire.OutPoint{Hash: chainhash.DoubleHashH(pub), Index: uint32(rank)}
	mn := &Masternode{
		Outpoint:         op,
		PubKeyCollateral: collateral,
		PubKeyMasternode: pub,
		ProtocolVersion:  protocolVersion,
	}
	e.reg.nodes[op] = mn
	e.reg.ranks[op] = rank
	v := &voter{mn: mn, privKey: priv, payee: payee}
	e.voters = append(e.voters, v)
	return v
}

func (e *testEnv) vote(t *testing.T, v *voter, height int32, payee []byte) *PaymentVote {
	vote := NewPaymentVote(v.mn.Outpoint, height, payee)
	require.NoError(t, vote.Sign(e.cfg.Signer, v.privKey))
	return vote
}

func payeeScript(t *testing.T) []byte {
	_, pub, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	script, err := common.PayToPubKeyHashScript(pub)
	require.NoError(t, err)
	return script
}
