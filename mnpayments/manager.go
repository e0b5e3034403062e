// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package mnpayments

import (
	"errors"
	"sync"

	"github.com/nanucoin/mnpayments/common/config"
	elaerr "github.com/nanucoin/mnpayments/errors"
	"github.com/nanucoin/mnpayments/log"
	"github.com/nanucoin/mnpayments/mnpayments/store"
	"github.com/nanucoin/mnpayments/p2p"
)

const (
	// produceAhead is the distance between a new tip and the height the
	// local masternode votes for.
	produceAhead = 10

	messageQueueSize = 10000
	tipQueueSize     = 10
)

type messageItem struct {
	Peer    Peer
	Message p2p.Message
}

// Manager owns the payment ledger and the components working on it. It is
// created once per process, loads the snapshot on Start and saves it on
// Stop.
type Manager struct {
	Ledger   *Ledger
	Syncer   *Syncer
	Producer *Producer
	Gate     *Gate

	cfg   *Config
	store store.Store

	messageQueue chan *messageItem
	tipQueue     chan int32
	quit         chan struct{}
	wg           sync.WaitGroup
	stopOnce     sync.Once
}

// NewManager wires the payment components. s may be nil to run without a
// snapshot. The local masternode is read from the masternode
// configuration when a private key is set.
func NewManager(cfg *Config, s store.Store) (*Manager, error) {
	if cfg.Params == nil {
		cfg.Params = &config.DefaultParams
	}
	cfg.setDefaults()
	if cfg.Registry == nil || cfg.Chain == nil || cfg.Signer == nil {
		return nil, elaerr.NewDetailErr(errors.New("registry, chain and signer are required"),
			elaerr.ErrInvalidParams, "NewManager")
	}

	var local *LocalMasternode
	if key := cfg.mn().MasternodePrivKey; key != "" {
		var err error
		local, err = NewLocalMasternode(key, cfg.mn().MasternodeOutpoint)
		if err != nil {
			return nil, elaerr.NewDetailErr(err, elaerr.ErrInvalidParams, "NewManager")
		}
	}

	ledger := NewLedger(cfg)
	syncer, err := NewSyncer(cfg, ledger)
	if err != nil {
		return nil, err
	}

	return &Manager{
		Ledger:       ledger,
		Syncer:       syncer,
		Producer:     NewProducer(cfg, ledger, syncer, local),
		Gate:         NewGate(cfg, ledger),
		cfg:          cfg,
		store:        s,
		messageQueue: make(chan *messageItem, messageQueueSize),
		tipQueue:     make(chan int32, tipQueueSize),
		quit:         make(chan struct{}),
	}, nil
}

// Start loads the saved snapshot and starts processing queued messages and
// tips. A missing or unreadable snapshot leaves the ledger empty.
func (m *Manager) Start() {
	if m.store != nil {
		err := m.store.Load(m.Ledger, false)
		switch elaerr.Code(err) {
		case elaerr.Success:
		case elaerr.ErrFileMissing:
			log.Info("Missing masternode payments file, starting fresh")
		default:
			log.Errorf("Failed to load masternode payments: %s", err)
		}
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
	out:
		for {
			select {
			case item := <-m.messageQueue:
				m.Syncer.HandleMessage(item.Peer, item.Message)
			case height := <-m.tipQueue:
				m.processTip(height)
			case <-m.quit:
				break out
			}
		}
	}()
}

// Stop stops processing and saves the ledger. Calls after the first one
// do nothing and return nil.
func (m *Manager) Stop() error {
	var err error
	m.stopOnce.Do(func() {
		close(m.quit)
		m.wg.Wait()

		if m.store != nil {
			err = store.Dump(m.store, m.Ledger, NewLedger(m.cfg))
		}
	})
	return err
}

// HandleMessage queues a message received from peer.
func (m *Manager) HandleMessage(peer Peer, msg p2p.Message) {
	select {
	case m.messageQueue <- &messageItem{Peer: peer, Message: msg}:
	case <-m.quit:
	}
}

// NewTip queues a chain tip change.
func (m *Manager) NewTip(height int32) {
	select {
	case m.tipQueue <- height:
	case <-m.quit:
	}
}

// processTip prunes against the new tip, which also drops what a snapshot
// loaded while the chain was busy kept, and votes ahead when synced.
func (m *Manager) processTip(height int32) {
	m.Ledger.Prune(height, m.cfg.Registry.Size())

	if m.cfg.Sync != nil && !m.cfg.Sync.IsBlockchainSynced() {
		return
	}
	if err := m.Producer.ProcessBlock(height + produceAhead); err != nil {
		log.Debug(err)
	}
}
