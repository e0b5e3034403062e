// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package common

import (
	"fmt"
	"io"
)

// Fixed64 is a coin amount in the smallest unit, 1e8 units per coin.
type Fixed64 int64

const coin = 100000000

func (f Fixed64) String() string {
	sign := ""
	value := int64(f)
	if value < 0 {
		sign = "-"
		value = -value
	}
	return fmt.Sprintf("%s%d.%08d", sign, value/coin, value%coin)
}

func (f Fixed64) Serialize(w io.Writer) error {
	var buf [8]byte
	for i := uint(0); i < 8; i++ {
		buf[i] = byte(uint64(f) >> (8 * i))
	}
	_, err := w.Write(buf[:])
	return err
}

func (f *Fixed64) Deserialize(r io.Reader) error {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	var v uint64
	for i := uint(0); i < 8; i++ {
		v |= uint64(buf[i]) << (8 * i)
	}
	*f = Fixed64(v)
	return nil
}
