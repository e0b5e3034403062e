// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package common

import (
	"errors"
	"strings"

	"github.com/nanucoin/mnpayments/common/config"
	"github.com/nanucoin/mnpayments/common/config/settings"
	"github.com/nanucoin/mnpayments/log"

	"github.com/urfave/cli"
)

var (
	// Global flags
	ConfigFlag = cli.StringFlag{
		Name:  "config, c",
		Usage: "configuration `<file>` path",
		Value: config.ConfigFile,
	}
	LogLevelFlag = cli.StringFlag{
		Name:  "loglevel",
		Usage: "log `<level>`: debug, info, warn or error, overrides the configuration",
	}

	// Snapshot flags
	SnapshotFileFlag = cli.StringFlag{
		Name:  "file, f",
		Usage: "snapshot `<file>` path, defaults to the data directory of the configuration",
	}
	SnapshotDBFlag = cli.StringFlag{
		Name:  "db",
		Usage: "snapshot database `<dir>` path, defaults to the data directory of the configuration",
	}

	// Query flags
	HeightFlag = cli.Int64Flag{
		Name:  "height",
		Usage: "the block `<height>` to query",
	}
	FromFlag = cli.Int64Flag{
		Name:  "from",
		Usage: "the first block `<height>` of the range",
	}
	ToFlag = cli.Int64Flag{
		Name:  "to",
		Usage: "the last block `<height>` of the range",
	}

	// Tool flags
	OutputFlag = cli.StringFlag{
		Name:  "out, o",
		Usage: "write to `<file>` instead of standard output",
	}
)

// MoveGlobalFlags moves the global flags found after the command name to
// the front of args, so they may be given anywhere on the command line.
func MoveGlobalFlags(args []string) ([]string, error) {
	newArgs := args[:1:1]
	cacheArgs := make([]string, 0)

	for i := 1; i < len(args); i++ {
		name := strings.SplitN(args[i], "=", 2)[0]
		switch name {
		case "--config", "-c", "--loglevel":
			newArgs = append(newArgs, args[i])
			if strings.Contains(args[i], "=") {
				continue
			}
			if i == len(args)-1 {
				return nil, errors.New("invalid flag " + args[i])
			}
			newArgs = append(newArgs, args[i+1])
			i++
		default:
			cacheArgs = append(cacheArgs, args[i])
		}
	}

	newArgs = append(newArgs, cacheArgs...)
	return newArgs, nil
}

// LoadParams reads the configuration named by the global flags and sets up
// logging from it.
func LoadParams(c *cli.Context) (*config.Configuration, error) {
	params := settings.NewSettings().SetupConfig(c.GlobalString("config"))

	level := c.GlobalString("loglevel")
	if level == "" {
		level = params.LogLevel
	}
	if err := log.Init(level, params.LogFile); err != nil {
		return nil, err
	}
	return params, nil
}
