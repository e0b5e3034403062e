// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package mnpayments

import (
	"fmt"
	"strings"

	"github.com/nanucoin/mnpayments/common"
	"github.com/nanucoin/mnpayments/errors"
)

// banScore is the misbehavior score given to peers relaying hostile votes
// or repeating sync requests.
const banScore = 20

// RejectError is returned when a vote fails admission. It never affects
// other votes.
type RejectError struct {
	Reason string

	// BanScore is the misbehavior score the relaying peer earned, zero when
	// the rejection is not the peer's fault.
	BanScore uint32

	// AskForNode is set when the voter's full record should be requested
	// from the relaying peer.
	AskForNode bool
}

func (e *RejectError) Error() string {
	return "vote rejected: " + e.Reason
}

func (e *RejectError) Unwrap() error {
	return errors.ErrVoteRejected
}

func reject(format string, a ...interface{}) *RejectError {
	return &RejectError{Reason: fmt.Sprintf(format, a...)}
}

// AbortError is returned when the local masternode did not produce a vote
// for a height. The next tip retries.
type AbortError struct {
	Height int32
	Reason string
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("winner production for height %d aborted: %s",
		e.Height, e.Reason)
}

func (e *AbortError) Unwrap() error {
	return errors.ErrProducerAborted
}

// PaymentError is returned when a transaction misses the masternode
// payment required by the votes of its height.
type PaymentError struct {
	Height   int32
	Required common.Fixed64
	Payees   []string
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("missing required payment of %s to %s at height %d",
		e.Required, strings.Join(e.Payees, ","), e.Height)
}
