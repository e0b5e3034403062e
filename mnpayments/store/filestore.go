// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package store

import (
	"os"
	"path/filepath"
	"time"

	"github.com/nanucoin/mnpayments/errors"
	"github.com/nanucoin/mnpayments/log"

	"github.com/google/renameio/v2"
	"go.uber.org/multierr"
)

// FileStore keeps the snapshot in a single file. Saves replace the file
// atomically.
type FileStore struct {
	path     string
	netMagic [4]byte
}

func NewFileStore(path string, netMagic [4]byte) *FileStore {
	return &FileStore{path: path, netMagic: netMagic}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Save(src Snapshot) error {
	start := time.Now()
	data, err := encode(src, s.netMagic)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.NewDetailErr(err, errors.ErrIO, "failed to create directory")
	}
	pending, err := renameio.NewPendingFile(s.path, renameio.WithPermissions(0644))
	if err != nil {
		return errors.NewDetailErr(err, errors.ErrIO, "failed to open file "+s.path)
	}
	if _, err = pending.Write(data); err == nil {
		err = pending.CloseAtomicallyReplace()
	}
	if err != nil {
		err = multierr.Append(err, pending.Cleanup())
		return errors.NewDetailErr(err, errors.ErrIO, "failed to write file "+s.path)
	}

	log.Infof("Written info to %s  %dms", s.path, time.Since(start).Milliseconds())
	return nil
}

func (s *FileStore) Load(target Snapshot, dryRun bool) error {
	start := time.Now()
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewDetailErr(err, errors.ErrFileMissing, "")
		}
		return errors.NewDetailErr(err, errors.ErrIO, "failed to read file "+s.path)
	}

	if err := decode(data, s.netMagic, target); err != nil {
		log.Errorf("Loading %s: %s", s.path, err)
		return err
	}

	log.Infof("Loaded info from %s  %dms", s.path, time.Since(start).Milliseconds())
	log.Infof("  %s", target)
	if !dryRun {
		log.Info("Masternode payments manager - cleaning....")
		target.Clean()
		log.Info("Masternode payments manager - result:")
		log.Infof("  %s", target)
	}
	return nil
}
