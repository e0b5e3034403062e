// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package main

import (
	"fmt"
	"os"
	"sort"

	cmdcom "github.com/nanucoin/mnpayments/cmd/common"
	"github.com/nanucoin/mnpayments/log"

	"github.com/urfave/cli"
)

var Version string

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "mnpayctl"
	app.Version = Version
	app.HelpName = "mnpayctl"
	app.Usage = "command line tool for masternode payment snapshots"
	app.UsageText = "mnpayctl [global options] command [command options] [args]"
	app.HideHelp = false
	app.HideVersion = false
	app.Flags = []cli.Flag{
		cmdcom.ConfigFlag,
		cmdcom.LogLevelFlag,
	}
	//commands
	app.Commands = append(append([]cli.Command{}, snapshotCommands...), toolCommands...)
	sort.Sort(cli.CommandsByName(app.Commands))
	sort.Sort(cli.FlagsByName(app.Flags))
	return app
}

func main() {
	args, err := cmdcom.MoveGlobalFlags(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	err = newApp().Run(args)
	log.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
