// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package store

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/nanucoin/mnpayments/common"
	"github.com/nanucoin/mnpayments/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	mainMagic = [4]byte{0x90, 0xc4, 0xfd, 0xe9}
	testMagic = [4]byte{0x45, 0x76, 0x65, 0xba}
)

type snapshot struct {
	items   []uint32
	cleared int
	cleaned int
}

func (s *snapshot) Serialize(w io.Writer) error {
	if err := common.WriteVarUint(w, uint64(len(s.items))); err != nil {
		return err
	}
	for _, item := range s.items {
		if err := common.WriteUint32(w, item); err != nil {
			return err
		}
	}
	return nil
}

func (s *snapshot) Deserialize(r io.Reader) error {
	count, err := common.ReadVarUint(r, 1000)
	if err != nil {
		return err
	}
	s.items = make([]uint32, 0, count)
	for i := uint64(0); i < count; i++ {
		item, err := common.ReadUint32(r)
		if err != nil {
			return err
		}
		s.items = append(s.items, item)
	}
	return nil
}

func (s *snapshot) Clear() {
	s.items = nil
	s.cleared++
}

func (s *snapshot) Clean() { s.cleaned++ }

func (s *snapshot) String() string { return fmt.Sprintf("Items: %d", len(s.items)) }

func newFileStore(t *testing.T) *FileStore {
	return NewFileStore(filepath.Join(t.TempDir(), "mnpayments.dat"), mainMagic)
}

func TestFileStore_RoundTrip(t *testing.T) {
	s := newFileStore(t)
	src := &snapshot{items: []uint32{1, 2, 3}}
	require.NoError(t, s.Save(src))

	dst := &snapshot{}
	require.NoError(t, s.Load(dst, true))
	assert.Equal(t, src.items, dst.items)
	assert.Equal(t, 0, dst.cleaned)

	require.NoError(t, s.Load(dst, false))
	assert.Equal(t, 1, dst.cleaned)
}

func TestFileStore_Layout(t *testing.T) {
	s := newFileStore(t)
	require.NoError(t, s.Save(&snapshot{items: []uint32{7}}))
	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	buf := new(bytes.Buffer)
	require.NoError(t, common.WriteVarString(buf, MagicMessage))
	buf.Write(mainMagic[:])
	require.NoError(t, common.WriteVarUint(buf, 1))
	require.NoError(t, common.WriteUint32(buf, 7))
	checksum := common.Sha256D(buf.Bytes())
	buf.Write(checksum[:])
	assert.Equal(t, buf.Bytes(), data)
}

func TestFileStore_Missing(t *testing.T) {
	s := newFileStore(t)
	err := s.Load(&snapshot{}, false)
	assert.Equal(t, errors.ErrFileMissing, errors.Code(err))
}

func TestFileStore_ChecksumMismatch(t *testing.T) {
	s := newFileStore(t)
	require.NoError(t, s.Save(&snapshot{items: []uint32{1, 2, 3}}))
	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	for i := range data {
		corrupted := append([]byte(nil), data...)
		corrupted[i] ^= 0x01
		require.NoError(t, os.WriteFile(s.Path(), corrupted, 0644))

		dst := &snapshot{items: []uint32{9}}
		err := s.Load(dst, true)
		assert.Equal(t, errors.ErrChecksumMismatch, errors.Code(err), "byte %d", i)
		assert.Equal(t, []uint32{9}, dst.items)
	}
}

func TestFileStore_MagicMismatch(t *testing.T) {
	s := newFileStore(t)
	require.NoError(t, NewFileStore(s.Path(), testMagic).Save(&snapshot{}))

	err := s.Load(&snapshot{}, true)
	assert.Equal(t, errors.ErrNetworkMismatch, errors.Code(err))

	buf := new(bytes.Buffer)
	require.NoError(t, common.WriteVarString(buf, "MasternodeCache"))
	buf.Write(mainMagic[:])
	require.NoError(t, common.WriteVarUint(buf, 0))
	checksum := common.Sha256D(buf.Bytes())
	buf.Write(checksum[:])
	require.NoError(t, os.WriteFile(s.Path(), buf.Bytes(), 0644))

	err = s.Load(&snapshot{}, true)
	assert.Equal(t, errors.ErrMagicMismatch, errors.Code(err))
}

func TestFileStore_DeserializeError(t *testing.T) {
	s := newFileStore(t)
	buf := new(bytes.Buffer)
	require.NoError(t, common.WriteVarString(buf, MagicMessage))
	buf.Write(mainMagic[:])
	// claims two items, carries one
	require.NoError(t, common.WriteVarUint(buf, 2))
	require.NoError(t, common.WriteUint32(buf, 1))
	checksum := common.Sha256D(buf.Bytes())
	buf.Write(checksum[:])
	require.NoError(t, os.WriteFile(s.Path(), buf.Bytes(), 0644))

	dst := &snapshot{items: []uint32{5}}
	err := s.Load(dst, false)
	assert.Equal(t, errors.ErrDeserialize, errors.Code(err))
	assert.Empty(t, dst.items)
	assert.Equal(t, 1, dst.cleared)
	assert.Equal(t, 0, dst.cleaned)
}

func TestDump(t *testing.T) {
	s := newFileStore(t)

	// missing file is created
	require.NoError(t, Dump(s, &snapshot{items: []uint32{1}}, &snapshot{}))
	dst := &snapshot{}
	require.NoError(t, s.Load(dst, true))
	assert.Equal(t, []uint32{1}, dst.items)

	// valid file is replaced
	require.NoError(t, Dump(s, &snapshot{items: []uint32{2}}, &snapshot{}))
	require.NoError(t, s.Load(dst, true))
	assert.Equal(t, []uint32{2}, dst.items)

	// corrupted file is kept
	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	data[len(data)-1] ^= 0xff
	require.NoError(t, os.WriteFile(s.Path(), data, 0644))
	err = Dump(s, &snapshot{items: []uint32{3}}, &snapshot{})
	assert.Equal(t, errors.ErrChecksumMismatch, errors.Code(err))
	kept, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, data, kept)

	// file of another network is kept
	other := NewFileStore(s.Path(), testMagic)
	require.NoError(t, other.Save(&snapshot{}))
	err = Dump(s, &snapshot{items: []uint32{4}}, &snapshot{})
	assert.Equal(t, errors.ErrNetworkMismatch, errors.Code(err))
}

func TestDBStore(t *testing.T) {
	s, err := NewDBStore(filepath.Join(t.TempDir(), "mnpayments"), mainMagic)
	require.NoError(t, err)
	defer s.Close()

	err = s.Load(&snapshot{}, true)
	assert.Equal(t, errors.ErrFileMissing, errors.Code(err))
	_, err = s.Summary()
	assert.Equal(t, errors.ErrFileMissing, errors.Code(err))

	src := &snapshot{items: []uint32{4, 5}}
	require.NoError(t, Dump(s, src, &snapshot{}))

	dst := &snapshot{}
	require.NoError(t, s.Load(dst, false))
	assert.Equal(t, src.items, dst.items)
	assert.Equal(t, 1, dst.cleaned)

	summary, err := s.Summary()
	require.NoError(t, err)
	assert.Equal(t, "Items: 2", summary)
}
