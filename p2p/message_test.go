// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package p2p

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMagic = 0xe9fdc490

func makeTestMessage(cmd string) (Message, error) {
	if cmd == "msg" {
		return &msg{}, nil
	}
	return nil, errors.New("unknown command " + cmd)
}

func TestWriteReadMessage(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, WriteMessage(buf, testMagic, &msg{i: 42}))
	assert.Equal(t, HeaderSize+4, buf.Len())

	m, err := ReadMessage(buf, testMagic, makeTestMessage)
	require.NoError(t, err)
	assert.Equal(t, &msg{i: 42}, m)
}

func TestReadMessage_Errors(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, WriteMessage(buf, testMagic, &msg{i: 7}))
	raw := buf.Bytes()

	_, err := ReadMessage(bytes.NewReader(raw), testMagic+1, makeTestMessage)
	assert.Error(t, err)

	corrupted := append([]byte{}, raw...)
	corrupted[len(corrupted)-1] ^= 0xff
	_, err = ReadMessage(bytes.NewReader(corrupted), testMagic, makeTestMessage)
	assert.Error(t, err)

	_, err = ReadMessage(bytes.NewReader(raw[:HeaderSize+2]), testMagic, makeTestMessage)
	assert.Error(t, err)

	_, err = ReadMessage(bytes.NewReader(raw), testMagic,
		func(string) (Message, error) { return nil, errors.New("unknown") })
	assert.Error(t, err)
}
