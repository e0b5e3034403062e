// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNetworkMagic(t *testing.T) {
	params := GetDefaultParams()
	assert.Equal(t, [4]byte{0x90, 0xc4, 0xfd, 0xe9}, params.NetworkMagic())
	assert.NotEqual(t, params.NetworkMagic(), GetDefaultParams().TestNet().NetworkMagic())
	assert.NotEqual(t, GetDefaultParams().RegNet().NetworkMagic(),
		GetDefaultParams().TestNet().NetworkMagic())
}

func TestSnapshotPath(t *testing.T) {
	params := GetDefaultParams()
	params.DataDir = "/tmp/node"
	assert.Equal(t, filepath.Join("/tmp/node", "mnpayments.dat"), params.SnapshotPath())
	assert.Equal(t, filepath.Join("/tmp/node", "mnpayments"), params.SnapshotDBPath())
}

func TestTemplate(t *testing.T) {
	assert.Equal(t, "testnet", Template.ActiveNet)
	assert.Equal(t, GetDefaultParams().TestNet().Magic, Template.Magic)
	assert.Equal(t, GetDefaultParams().MasternodeConfiguration.SignaturesTotal,
		Template.MasternodeConfiguration.SignaturesTotal)
}
