// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoveGlobalFlags(t *testing.T) {
	args, err := MoveGlobalFlags([]string{"mnpayctl", "inspect", "--db", "d",
		"--config", "c.json", "--loglevel=debug"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"mnpayctl", "--config", "c.json", "--loglevel=debug",
		"inspect", "--db", "d"}, args)

	args, err = MoveGlobalFlags([]string{"mnpayctl", "-c", "c.json", "verify"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"mnpayctl", "-c", "c.json", "verify"}, args)

	_, err = MoveGlobalFlags([]string{"mnpayctl", "verify", "--config"})
	assert.Error(t, err)
}
