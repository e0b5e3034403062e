// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package store

// DataEntryPrefix
type DataEntryPrefix byte

const (
	// Masternode payments
	MNPaymentsSnapshot DataEntryPrefix = 0x21
	MNPaymentsSummary  DataEntryPrefix = 0x22
)

func (p DataEntryPrefix) Key() []byte {
	return []byte{byte(p)}
}
