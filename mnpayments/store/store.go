// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package store

import (
	"github.com/nanucoin/mnpayments/common"
	"github.com/nanucoin/mnpayments/errors"
	"github.com/nanucoin/mnpayments/log"
)

// Snapshot is the state persisted by a store.
type Snapshot interface {
	common.Serializable

	// Clear drops the whole state, used when a snapshot body is invalid.
	Clear()

	// Clean prunes the state against the current chain, used after a load
	// that is not a dry run.
	Clean()

	String() string
}

// Store saves and loads snapshots.
type Store interface {
	// Load reads the saved snapshot into target. A dry run only checks the
	// saved data and skips the cleaning of target.
	Load(target Snapshot, dryRun bool) error

	// Save replaces the saved snapshot with src.
	Save(src Snapshot) error
}

// Dump saves live after checking that the data it replaces is a snapshot
// of this network. scratch receives the dry run load. Missing or badly
// formatted data is overwritten. Corrupted data or data of another
// application or network is left in place and the error is returned.
func Dump(s Store, live Snapshot, scratch Snapshot) error {
	log.Info("Verifying mnpayments.dat format...")
	err := s.Load(scratch, true)
	switch errors.Code(err) {
	case errors.Success:
	case errors.ErrFileMissing:
		log.Info("Missing payments file - mnpayments.dat, will try to recreate")
	case errors.ErrDeserialize:
		log.Info("Error reading mnpayments.dat: magic is ok but data has invalid format, will try to recreate")
	default:
		log.Error("Error reading mnpayments.dat: file format is unknown or invalid, please fix it manually")
		return err
	}

	log.Info("Writing info to mnpayments.dat...")
	return s.Save(live)
}
