// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package msg

import (
	"github.com/nanucoin/mnpayments/common"
	"github.com/nanucoin/mnpayments/p2p"

	lru "github.com/hashicorp/golang-lru"
)

// ToMsg defines the function to convert a serializable object to a p2p.Message.
type ToMsg func(obj common.Serializable) p2p.Message

// cache is a message cache associate with the origin serializable object, it is
// used to re-use the message of a vote, so the message buffer pool can
// re-use the cached message payload bytes.
type cache struct {
	toMsg ToMsg
	msgs  *lru.Cache
}

// Get returns the cached message according to the passed item, creates and
// cache a new message if cached message found.
//
// This function is safe for concurrent access.
func (m *cache) Get(obj common.Serializable) p2p.Message {
	if m.msgs == nil {
		return m.toMsg(obj)
	}
	if msg, ok := m.msgs.Get(obj); ok {
		return msg.(p2p.Message)
	}
	msg := m.toMsg(obj)
	m.msgs.Add(obj, msg)
	return msg
}

// NewCache creates a message cache with the given size limit and the message
// convert function. A zero limit disables caching.
func NewCache(limit int, toMsg ToMsg) *cache {
	c := &cache{toMsg: toMsg}
	if limit > 0 {
		c.msgs, _ = lru.New(limit)
	}
	return c
}
