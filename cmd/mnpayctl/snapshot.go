// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package main

import (
	"errors"
	"fmt"

	cmdcom "github.com/nanucoin/mnpayments/cmd/common"
	"github.com/nanucoin/mnpayments/common/config"
	elaerr "github.com/nanucoin/mnpayments/errors"
	"github.com/nanucoin/mnpayments/mnpayments"
	"github.com/nanucoin/mnpayments/mnpayments/store"

	"github.com/urfave/cli"
)

var snapshotCommands = []cli.Command{
	{
		Category: "Snapshot",
		Name:     "inspect",
		Usage:    "Show the content of a payments snapshot",
		Flags: []cli.Flag{
			cmdcom.SnapshotFileFlag,
			cmdcom.SnapshotDBFlag,
		},
		Action: inspectSnapshot,
	},
	{
		Category: "Snapshot",
		Name:     "verify",
		Usage:    "Check the framing and content of a payments snapshot",
		Flags: []cli.Flag{
			cmdcom.SnapshotFileFlag,
			cmdcom.SnapshotDBFlag,
		},
		Action: verifySnapshot,
	},
	{
		Category: "Snapshot",
		Name:     "payees",
		Usage:    "List the payees voted for a height or a range of heights",
		Flags: []cli.Flag{
			cmdcom.SnapshotFileFlag,
			cmdcom.SnapshotDBFlag,
			cmdcom.HeightFlag,
			cmdcom.FromFlag,
			cmdcom.ToFlag,
		},
		Action: listPayees,
	},
	{
		Category: "Snapshot",
		Name:     "export",
		Usage:    "Copy the snapshot file into the snapshot database",
		Flags: []cli.Flag{
			cmdcom.SnapshotFileFlag,
			cmdcom.SnapshotDBFlag,
		},
		Action: func(c *cli.Context) error {
			return copySnapshot(c, false)
		},
	},
	{
		Category: "Snapshot",
		Name:     "import",
		Usage:    "Write the snapshot database back to the snapshot file",
		Flags: []cli.Flag{
			cmdcom.SnapshotFileFlag,
			cmdcom.SnapshotDBFlag,
		},
		Action: func(c *cli.Context) error {
			return copySnapshot(c, true)
		},
	},
}

func fileStore(c *cli.Context, params *config.Configuration) *store.FileStore {
	path := c.String("file")
	if path == "" {
		path = params.SnapshotPath()
	}
	return store.NewFileStore(path, params.NetworkMagic())
}

func dbStore(c *cli.Context, params *config.Configuration) (*store.DBStore, error) {
	path := c.String("db")
	if path == "" {
		path = params.SnapshotDBPath()
	}
	return store.NewDBStore(path, params.NetworkMagic())
}

// openStore returns the database store when --db is given and the file
// store otherwise.
func openStore(c *cli.Context, params *config.Configuration) (store.Store, func(), error) {
	if c.String("db") == "" {
		return fileStore(c, params), func() {}, nil
	}
	db, err := dbStore(c, params)
	if err != nil {
		return nil, nil, err
	}
	return db, func() { db.Close() }, nil
}

func newLedger(params *config.Configuration) *mnpayments.Ledger {
	return mnpayments.NewLedger(&mnpayments.Config{Params: params})
}

// loadSnapshot reads the snapshot selected by the flags without pruning
// it, the chain being unknown to this tool.
func loadSnapshot(c *cli.Context) (*mnpayments.Ledger, error) {
	params, err := cmdcom.LoadParams(c)
	if err != nil {
		return nil, err
	}
	s, closeStore, err := openStore(c, params)
	if err != nil {
		return nil, err
	}
	defer closeStore()

	ledger := newLedger(params)
	if err := s.Load(ledger, true); err != nil {
		return nil, err
	}
	return ledger, nil
}

func inspectSnapshot(c *cli.Context) error {
	ledger, err := loadSnapshot(c)
	if err != nil {
		return err
	}

	fmt.Println(ledger)
	if _, blocks := ledger.Len(); blocks > 0 {
		fmt.Printf("Heights: %d - %d\n", ledger.OldestBlock(), ledger.NewestBlock())
	}
	return nil
}

func verifySnapshot(c *cli.Context) error {
	_, err := loadSnapshot(c)
	code := elaerr.Code(err)
	if desc, ok := elaerr.ErrMap[code]; ok {
		fmt.Println(desc)
	}
	return err
}

func listPayees(c *cli.Context) error {
	from, to := int32(c.Int64("from")), int32(c.Int64("to"))
	if c.IsSet("height") {
		from = int32(c.Int64("height"))
		to = from
	}
	if !c.IsSet("height") && !c.IsSet("from") && !c.IsSet("to") {
		cli.ShowSubcommandHelp(c)
		return nil
	}

	ledger, err := loadSnapshot(c)
	if err != nil {
		return err
	}
	if !c.IsSet("to") && !c.IsSet("height") {
		to = ledger.NewestBlock()
	}
	if to < from {
		return errors.New("the range ends before it starts")
	}

	for height := from; height <= to; height++ {
		if len(ledger.Payees(height)) == 0 && from != to {
			continue
		}
		fmt.Printf("%d: %s\n", height, ledger.RequiredPaymentsString(height))
	}
	return nil
}

// copySnapshot moves a snapshot between the file and the database. The
// destination is only overwritten when it holds a snapshot of this network
// or nothing at all.
func copySnapshot(c *cli.Context, toFile bool) error {
	params, err := cmdcom.LoadParams(c)
	if err != nil {
		return err
	}
	db, err := dbStore(c, params)
	if err != nil {
		return err
	}
	defer db.Close()

	var src, dst store.Store = fileStore(c, params), db
	if toFile {
		src, dst = dst, src
	}

	ledger := newLedger(params)
	if err := src.Load(ledger, true); err != nil {
		return err
	}
	if err := store.Dump(dst, ledger, newLedger(params)); err != nil {
		return err
	}
	fmt.Println(ledger)
	return nil
}
