// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package p2p

import (
	"io"
	"testing"

	"github.com/nanucoin/mnpayments/common"
	"github.com/stretchr/testify/assert"
)

var _ Message = (*msg)(nil)

type msg struct{ i uint32 }

func (m *msg) CMD() string                 { return "msg" }
func (m *msg) MaxLength() uint32           { return 4 }
func (m *msg) Serialize(w io.Writer) error { return common.WriteUint32(w, m.i) }
func (m *msg) Deserialize(r io.Reader) (err error) {
	m.i, err = common.ReadUint32(r)
	return err
}

func TestBuffer_GetPayload(t *testing.T) {
	pool := newBuffer(bufferPoolSize, maxBufferedPayloads)
	msgs := make([]*msg, 100)
	for i := uint32(0); i < 100; i++ {
		msg := &msg{i}
		msgs[i] = msg
		payload, err := pool.GetPayload(msg)
		assert.NoError(t, err)
		assert.Len(t, payload, 4)

		size := pool.payloads.Len()
		if size > maxBufferedPayloads {
			t.Fatalf("Too many buffered payloads(%d)", size)
		}

		if i > 9 {
			assert.False(t, pool.payloads.Contains(msgs[i-10]))
		}
	}

	quit := make(chan struct{})
	go func() {
		for i := 0; i < 10000; i++ {
			_, err := pool.GetPayload(msgs[i%100])
			assert.NoError(t, err)
		}
		quit <- struct{}{}
	}()

	go func() {
		for i := 0; i < 10000; i++ {
			_, err := pool.GetPayload(&msg{i: uint32(i)})
			assert.NoError(t, err)
		}
		quit <- struct{}{}
	}()

	<-quit
	<-quit
}
