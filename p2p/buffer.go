// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package p2p

import (
	"bytes"

	lru "github.com/hashicorp/golang-lru"
)

const (
	// bufferPoolSize defines the buffer pool size.
	bufferPoolSize = 10

	// maxBufferCap defines the maximum capacity of a buffer.
	maxBufferCap = 1024 * 100 // 100KB

	// maxBufferedPayloads defines the maximum buffered message payloads.
	maxBufferedPayloads = 10
)

var bufPool = newBuffer(bufferPoolSize, maxBufferedPayloads)

// buffer is a buffer pool to reduce memory use and allocation. It also keeps
// the encoded payloads of the most recently written messages, so relaying
// one vote to many peers encodes it once.
type buffer struct {
	bufChan  chan *bytes.Buffer
	payloads *lru.Cache
}

func newBuffer(poolSize, payloads int) *buffer {
	// lru.New only fails on a non positive size.
	cache, _ := lru.New(payloads)
	return &buffer{
		bufChan:  make(chan *bytes.Buffer, poolSize),
		payloads: cache,
	}
}

// Get gets a Buffer from the buffer pool, or creates a new one if none are
// available in the pool. Buffers have a pre-allocated capacity.
func (b *buffer) Get() (buf *bytes.Buffer) {
	select {
	case buf = <-b.bufChan:
		// reuse existing buffer
	default:
		// create new buffer
		buf = bytes.NewBuffer(make([]byte, 0, maxBufferCap))
	}
	return
}

// Put returns the given Buffer to the buffer pool.
func (b *buffer) Put(buf *bytes.Buffer) {
	buf.Reset()

	// Release buffers over our maximum capacity and re-create a pre-sized
	// buffer to replace it.
	if cap(buf.Bytes()) > maxBufferCap {
		buf = bytes.NewBuffer(make([]byte, 0, maxBufferCap))
	}

	select {
	case b.bufChan <- buf:
	default: // Discard the buffer if the pool is full.
	}
}

// GetPayload returns the payload bytes of the message, the buffer will return
// buffered bytes if the same message pointer comes.
func (b *buffer) GetPayload(msg Message) ([]byte, error) {
	if payload, ok := b.payloads.Get(msg); ok {
		return payload.([]byte), nil
	}

	buf := b.Get()
	defer b.Put(buf)
	if err := msg.Serialize(buf); err != nil {
		return nil, err
	}
	payload := make([]byte, buf.Len())
	copy(payload, buf.Bytes())

	b.payloads.Add(msg, payload)
	return payload, nil
}
