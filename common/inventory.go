// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package common

type InventoryType uint32

const (
	TRANSACTION      InventoryType = 0x01
	BLOCK            InventoryType = 0x02
	MASTERNODEWINNER InventoryType = 0x07
)

func (t InventoryType) String() string {
	switch t {
	case TRANSACTION:
		return "tx"
	case BLOCK:
		return "block"
	case MASTERNODEWINNER:
		return "mnw"
	}
	return "unknown"
}
