// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package settings

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/nanucoin/mnpayments/common/config"
	"github.com/nanucoin/mnpayments/log"

	"github.com/spf13/viper"
)

type Settings struct {
	viper  *viper.Viper
	params *config.Configuration
}

func (s *Settings) Viper() *viper.Viper {
	return s.viper
}

// Params returns the configuration produced by the last SetupConfig call.
func (s *Settings) Params() *config.Configuration {
	return s.params
}

func (s *Settings) loadConfigFile(files string, cfg config.Config) (*config.Configuration, error) {
	paths, fileName := filepath.Split(files)
	fileExt := filepath.Ext(files)
	if paths == "" {
		paths = "."
	}
	s.viper.AddConfigPath(paths)
	s.viper.SetConfigName(strings.TrimSuffix(fileName, fileExt))
	s.viper.SetConfigType(strings.TrimPrefix(fileExt, "."))
	if err := s.viper.ReadInConfig(); err != nil {
		return cfg.Configuration, errors.New("cannot read configuration: " + err.Error())
	}
	if err := s.viper.Unmarshal(&cfg); err != nil {
		return cfg.Configuration, errors.New("configuration files can't be loaded: " + err.Error())
	}
	return cfg.Configuration, nil
}

// SetupConfig loads the configuration file over the main net defaults and
// reloads it over the test or regression presets when ActiveNet selects
// one of them. A missing file leaves the defaults in place.
func (s *Settings) SetupConfig(configFile string) *config.Configuration {
	if configFile == "" {
		configFile = config.ConfigFile
	}
	params := config.Config{
		Configuration: config.GetDefaultParams(),
	}
	// set mainNet params
	conf, err := s.loadConfigFile(configFile, params)
	if err != nil {
		log.Warn("loadConfigFile err ", err)
	}

	// switch activeNet params
	switch strings.ToLower(conf.ActiveNet) {
	case "testnet", "test":
		testnet := config.Config{
			Configuration: config.GetDefaultParams().TestNet(),
		}
		conf, err = s.loadConfigFile(configFile, testnet)
	case "regnet", "regtest", "reg":
		regnet := config.Config{
			Configuration: config.GetDefaultParams().RegNet(),
		}
		conf, err = s.loadConfigFile(configFile, regnet)
	}
	if err != nil {
		log.Debug("reload config with active net preset: ", err)
	}

	s.params = conf
	config.SetParameters(conf)
	return conf
}

func NewSettings() *Settings {
	settings := &Settings{
		viper: viper.New(),
	}
	return settings
}
