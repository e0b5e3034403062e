// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package store

import (
	"time"

	"github.com/nanucoin/mnpayments/errors"
	"github.com/nanucoin/mnpayments/log"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// DBStore keeps the snapshot in a LevelDB database, next to a one line
// summary of its content. The snapshot value uses the same framing as the
// snapshot file.
type DBStore struct {
	db       *leveldb.DB
	netMagic [4]byte
}

// NewDBStore opens or creates the database at path.
func NewDBStore(path string, netMagic [4]byte) (*DBStore, error) {
	db, err := leveldb.OpenFile(path, &opt.Options{
		BlockCacheCapacity: 8 * opt.MiB,
		WriteBuffer:        4 * opt.MiB,
	})
	if err != nil {
		return nil, errors.NewDetailErr(err, errors.ErrIO, "open database "+path)
	}
	return &DBStore{db: db, netMagic: netMagic}, nil
}

func (s *DBStore) Close() error {
	return s.db.Close()
}

func (s *DBStore) Save(src Snapshot) error {
	start := time.Now()
	data, err := encode(src, s.netMagic)
	if err != nil {
		return err
	}

	batch := new(leveldb.Batch)
	batch.Put(MNPaymentsSnapshot.Key(), data)
	batch.Put(MNPaymentsSummary.Key(), []byte(src.String()))
	if err := s.db.Write(batch, &opt.WriteOptions{Sync: true}); err != nil {
		return errors.NewDetailErr(err, errors.ErrIO, "write snapshot")
	}

	log.Infof("Written snapshot to database  %dms", time.Since(start).Milliseconds())
	return nil
}

func (s *DBStore) Load(target Snapshot, dryRun bool) error {
	data, err := s.db.Get(MNPaymentsSnapshot.Key(), nil)
	if err == leveldb.ErrNotFound {
		return errors.NewDetailErr(err, errors.ErrFileMissing, "")
	}
	if err != nil {
		return errors.NewDetailErr(err, errors.ErrIO, "read snapshot")
	}

	if err := decode(data, s.netMagic, target); err != nil {
		return err
	}
	if !dryRun {
		target.Clean()
	}
	return nil
}

// Summary returns the description of the saved snapshot.
func (s *DBStore) Summary() (string, error) {
	data, err := s.db.Get(MNPaymentsSummary.Key(), nil)
	if err == leveldb.ErrNotFound {
		return "", errors.NewDetailErr(err, errors.ErrFileMissing, "")
	}
	if err != nil {
		return "", errors.NewDetailErr(err, errors.ErrIO, "read summary")
	}
	return string(data), nil
}
