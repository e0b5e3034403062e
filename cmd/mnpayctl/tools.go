// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package main

import (
	"encoding/json"
	"fmt"

	cmdcom "github.com/nanucoin/mnpayments/cmd/common"
	"github.com/nanucoin/mnpayments/common"
	"github.com/nanucoin/mnpayments/common/config"
	"github.com/nanucoin/mnpayments/crypto"

	"github.com/google/renameio/v2"
	"github.com/urfave/cli"
)

var toolCommands = []cli.Command{
	{
		Category: "Tools",
		Name:     "template",
		Usage:    "Print a sample configuration file",
		Flags: []cli.Flag{
			cmdcom.OutputFlag,
		},
		Action: writeTemplate,
	},
	{
		Category: "Tools",
		Name:     "keygen",
		Usage:    "Create a masternode signing key",
		Action:   generateKey,
	},
}

func writeTemplate(c *cli.Context) error {
	data, err := json.MarshalIndent(config.Template, "", "\t")
	if err != nil {
		return err
	}

	out := c.String("out")
	if out == "" {
		fmt.Println(string(data))
		return nil
	}
	return renameio.WriteFile(out, append(data, '\n'), 0644)
}

func generateKey(c *cli.Context) error {
	params, err := cmdcom.LoadParams(c)
	if err != nil {
		return err
	}

	priv, pub, err := crypto.GenerateKeyPair()
	if err != nil {
		return err
	}
	script, err := common.PayToPubKeyHashScript(pub)
	if err != nil {
		return err
	}

	fmt.Println("MasternodePrivKey:", common.BytesToHexString(priv))
	fmt.Println("PublicKey:        ", common.BytesToHexString(pub))
	fmt.Println("Address:          ", common.ScriptToAddress(script, params.AddressVersion))
	return nil
}
