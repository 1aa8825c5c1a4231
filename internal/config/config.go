package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"headsupholdem-server/internal/util"
)

// Config provides configuration for the heads-up hold'em server
type Config struct {
	loaded bool
	JWT    struct {
		PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
	}
	Log struct {
		Level             string `yaml:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
	Game struct {
		StartingChips int  `yaml:"startingChips" envconfig:"starting_chips"`
		SmallBlind    int  `yaml:"smallBlind" envconfig:"small_blind"`
		BigBlind      int  `yaml:"bigBlind" envconfig:"big_blind"`
		BurnCard      bool `yaml:"burnCard" envconfig:"burn_card"`
		Rebuy         bool `yaml:"rebuy"`
		// BotDelayMS is how long a CPU seat pretends to think before acting
		BotDelayMS int `yaml:"botDelayMs" envconfig:"bot_delay_ms"`
	}
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// DefaultConfig returns a config with the default values set
func DefaultConfig() Config {
	var c Config
	c.Game.StartingChips = 1000
	c.Game.SmallBlind = 10
	c.Game.BigBlind = 20
	c.Game.Rebuy = true
	c.Game.BotDelayMS = 1500

	return c
}

// Load will load the configuration
func Load() error {
	config = DefaultConfig()

	configFile := util.Getenv("HUH_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("huh", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}
