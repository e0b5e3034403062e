// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package mnpayments

import (
	"bytes"
	"testing"

	"github.com/nanucoin/mnpayments/common"
	"github.com/nanucoin/mnpayments/crypto"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentVote_HashExcludesSignature(t *testing.T) {
	env := newTestEnv(t, 1000, 1)
	v := env.voters[0]

	unsigned := NewPaymentVote(v.mn.Outpoint, 1005, v.payee)
	signed := env.vote(t, v, 1005, v.payee)
	require.NotEmpty(t, signed.Signature)
	assert.Equal(t, unsigned.Hash(), signed.Hash())

	other := NewPaymentVote(v.mn.Outpoint, 1006, v.payee)
	assert.NotEqual(t, unsigned.Hash(), other.Hash())
}

func TestPaymentVote_Message(t *testing.T) {
	hash, err := chainhash.NewHashFromStr(
		"0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20")
	require.NoError(t, err)
	op := wire.OutPoint{Hash: *hash, Index: 3}

	_, pub, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	payee, err := common.PayToPubKeyHashScript(pub)
	require.NoError(t, err)

	vote := NewPaymentVote(op, 1234, payee)
	assert.Equal(t, hash.String()+"-3"+"1234"+common.ScriptString(payee), vote.Message())
	assert.Equal(t, hash.String()+"-3", OutpointShortString(op))
}

func TestPaymentVote_SignVerify(t *testing.T) {
	env := newTestEnv(t, 1000, 2)
	v, stranger := env.voters[0], env.voters[1]

	vote := env.vote(t, v, 1005, v.payee)
	assert.NoError(t, vote.Verify(env.cfg.Signer, v.mn.PubKeyMasternode))
	assert.Error(t, vote.Verify(env.cfg.Signer, stranger.mn.PubKeyMasternode))

	vote.Height++
	assert.Error(t, vote.Verify(env.cfg.Signer, v.mn.PubKeyMasternode))
}

func TestPaymentVote_Serialize(t *testing.T) {
	env := newTestEnv(t, 1000, 1)
	v := env.voters[0]
	vote := env.vote(t, v, 1005, v.payee)

	buf := new(bytes.Buffer)
	require.NoError(t, vote.Serialize(buf))
	assert.Equal(t, 36+4+1+len(v.payee)+1+len(vote.Signature), buf.Len())

	decoded := new(PaymentVote)
	require.NoError(t, decoded.Deserialize(buf))
	assert.Equal(t, vote, decoded)
	assert.NoError(t, decoded.Verify(env.cfg.Signer, v.mn.PubKeyMasternode))

	// truncated input
	buf.Reset()
	require.NoError(t, vote.Serialize(buf))
	truncated := bytes.NewReader(buf.Bytes()[:buf.Len()-1])
	assert.Error(t, new(PaymentVote).Deserialize(truncated))
}

func TestParseOutpoint(t *testing.T) {
	txid := "0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20"
	op, err := ParseOutpoint(txid + ":7")
	require.NoError(t, err)
	assert.Equal(t, txid, op.Hash.String())
	assert.Equal(t, uint32(7), op.Index)

	for _, s := range []string{"", txid, txid + ":x", "zz:1", txid + ":1:2", txid + ":-1"} {
		_, err := ParseOutpoint(s)
		assert.Error(t, err, s)
	}
}

func TestNewLocalMasternode(t *testing.T) {
	priv, pub, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	txid := "0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20"

	local, err := NewLocalMasternode(common.BytesToHexString(priv), txid+":1")
	require.NoError(t, err)
	assert.Equal(t, pub, local.PubKey)
	assert.Equal(t, uint32(1), local.Outpoint.Index)

	_, err = NewLocalMasternode("zz", txid+":1")
	assert.Error(t, err)
	_, err = NewLocalMasternode(common.BytesToHexString(priv), txid)
	assert.Error(t, err)
}
