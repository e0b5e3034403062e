// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package mnpayments

import (
	"github.com/nanucoin/mnpayments/common"
	"github.com/nanucoin/mnpayments/log"

	"github.com/btcsuite/btcd/wire"
)

// budgetExemptBlocks is the number of heights at the start of every budget
// cycle that may carry superblock payments.
const budgetExemptBlocks = 100

// Gate holds the checks the block validation pipeline calls into.
type Gate struct {
	cfg    *Config
	ledger *Ledger
}

func NewGate(cfg *Config, ledger *Ledger) *Gate {
	cfg.setDefaults()
	return &Gate{cfg: cfg, ledger: ledger}
}

func valueOut(tx *wire.MsgTx) common.Fixed64 {
	var total common.Fixed64
	for _, out := range tx.TxOut {
		total += common.Fixed64(out.Value)
	}
	return total
}

// IsBlockValueValid checks the coinbase value of block against expected.
// Superblock heights are exempt. It waits for a busy chain state, only a
// chain without any tip accepts the block unchecked.
func (g *Gate) IsBlockValueValid(block *wire.MsgBlock, expected common.Fixed64) bool {
	tip, tipHash, ok := g.cfg.Chain.Tip()
	if !ok {
		return true
	}
	if len(block.Transactions) == 0 {
		return false
	}

	var height int32
	if block.Header.PrevBlock == tipHash {
		height = tip + 1
	} else if prev, ok := g.cfg.Chain.BlockHeight(block.Header.PrevBlock); ok {
		height = prev + 1
	}
	if height == 0 {
		log.Warn("IsBlockValueValid: couldn't find previous block")
	}

	value := valueOut(block.Transactions[0])
	if !g.cfg.isSynced() {
		// there is no budget data to use, superblocks are always within
		// the first blocks of a cycle
		cycle := g.cfg.mn().BudgetPaymentCycleBlocks
		if cycle > 0 && height%cycle < budgetExemptBlocks {
			return true
		}
		return value <= expected
	}

	if !g.cfg.sporkActive(SporkEnableSuperblocks) {
		return value <= expected
	}
	if g.cfg.isBudgetPaymentBlock(height) {
		// the value of the block is evaluated by the budget
		return true
	}
	return value <= expected
}

// IsBlockPayeeValid checks that block carries the payment the network
// voted for height. Failures only reject the block while the matching
// enforcement spork is on.
func (g *Gate) IsBlockPayeeValid(block *wire.MsgBlock, height int32) bool {
	if !g.cfg.isSynced() {
		log.Debug("Client not synced, skipping block payee checks")
		return true
	}

	index := 0
	if height > g.cfg.mn().LastPoWBlock {
		index = 1
	}
	// a missing payment transaction pays nobody
	tx := wire.NewMsgTx(wire.TxVersion)
	if len(block.Transactions) > index {
		tx = block.Transactions[index]
	}

	if g.cfg.sporkActive(SporkEnableSuperblocks) && g.cfg.isBudgetPaymentBlock(height) {
		if g.cfg.Budget.IsTransactionValid(tx, height) {
			return true
		}
		log.Infof("Invalid budget payment detected %s", tx.TxHash())
		if g.cfg.sporkActive(SporkMasternodeBudgetEnforcement) {
			return false
		}
		log.Info("Budget enforcement is disabled, accepting block")
		return true
	}

	err := g.ledger.IsTransactionValid(tx, height)
	if err == nil {
		return true
	}
	log.Infof("Invalid mn payment detected %s: %s", tx.TxHash(), err)

	if g.cfg.sporkActive(SporkMasternodePaymentEnforcement) {
		return false
	}
	log.Info("Masternode payment enforcement is disabled, accepting block")
	return true
}

// FillBlockPayee adds the masternode payment for the block above the tip
// to tx. Proof of stake blocks take the payment from the last output.
// Otherwise output 0 carries the rest of the block value, and fees until
// LastPoWBlock.
func (g *Gate) FillBlockPayee(tx *wire.MsgTx, fees common.Fixed64, proofOfStake bool) {
	tip, _, ok := g.cfg.Chain.Tip()
	if !ok {
		return
	}
	height := tip + 1

	if g.cfg.sporkActive(SporkEnableSuperblocks) && g.cfg.isBudgetPaymentBlock(height) {
		g.cfg.Budget.FillBlockPayee(tx, fees, proofOfStake)
		return
	}

	payee, hasPayment := g.ledger.BlockPayee(height)
	if !hasPayment {
		// no masternode detected
		if mn := g.cfg.Registry.CurrentMasternode(); mn != nil {
			script, err := mn.PayeeScript()
			if err == nil {
				payee, hasPayment = script, true
			}
		}
		if !hasPayment {
			log.Info("CreateNewBlock: Failed to detect masternode to pay")
		}
	}

	schedule := g.cfg.schedule()
	blockValue := schedule.BlockValue(tip)
	payment := schedule.MasternodePayment(tip, blockValue, g.cfg.Registry.Size())
	preThreshold := height <= g.cfg.mn().LastPoWBlock

	if !hasPayment {
		if !proofOfStake {
			ensureOutputs(tx, 1)
			value := blockValue
			if preThreshold {
				value += fees
			}
			tx.TxOut[0].Value = int64(value)
		}
		return
	}

	if proofOfStake {
		last := len(tx.TxOut) - 1
		if last < 0 {
			log.Warn("FillBlockPayee: coinstake has no outputs")
			return
		}
		tx.AddTxOut(wire.NewTxOut(int64(payment), payee))
		// subtract the masternode payment from the stake reward
		tx.TxOut[last].Value -= int64(payment)
	} else {
		ensureOutputs(tx, 2)
		tx.TxOut = tx.TxOut[:2]
		tx.TxOut[1].PkScript = payee
		tx.TxOut[1].Value = int64(payment)
		value := blockValue - payment
		if preThreshold {
			value += fees
		}
		tx.TxOut[0].Value = int64(value)
	}

	log.Infof("Masternode payment of %s to %s", payment,
		common.ScriptToAddress(payee, g.cfg.Params.AddressVersion))
}

func ensureOutputs(tx *wire.MsgTx, n int) {
	for len(tx.TxOut) < n {
		tx.AddTxOut(wire.NewTxOut(0, nil))
	}
}

// RequiredPaymentsString describes the payments required at height,
// delegating superblock heights to the budget.
func (g *Gate) RequiredPaymentsString(height int32) string {
	if g.cfg.sporkActive(SporkEnableSuperblocks) && g.cfg.isBudgetPaymentBlock(height) {
		return g.cfg.Budget.RequiredPaymentsString(height)
	}
	return g.ledger.RequiredPaymentsString(height)
}
