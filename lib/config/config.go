package config

import (
	"os"
	"path/filepath"

	"github.com/go-i2p/logger"
	"github.com/spf13/viper"

	"github.com/ProjectGhostOS/aware/lib/util"
)

var (
	CfgFile string
	log     = logger.GetGoI2PLogger()
)

const AWARE_BASE_DIR = ".ghost-aware"

func InitConfig() {
	if CfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(CfgFile)
	} else {
		// Set up viper to use the default config path $HOME/.ghost-aware/
		viper.AddConfigPath(BuildAwareDirPath())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Load defaults
	setDefaults()

	// handle config file creating it if needed
	handleConfigFile()
}

func setDefaults() {
	defaults := DefaultAwareConfig()
	viper.SetDefault("gate.max_clients", defaults.MaxClients)
	viper.SetDefault("gate.rtt_supported", defaults.RTTSupported)
	viper.SetDefault("gate.connect_rate_limit", defaults.ConnectRateLimit)
	viper.SetDefault("gate.connect_rate_burst", defaults.ConnectRateBurst)
	viper.SetDefault("gate.verbose_logging", defaults.VerboseLogging)
}

// NewAwareConfigFromViper creates an AwareConfig from current viper settings.
func NewAwareConfigFromViper() *AwareConfig {
	return &AwareConfig{
		MaxClients:       viper.GetInt("gate.max_clients"),
		RTTSupported:     viper.GetBool("gate.rtt_supported"),
		ConnectRateLimit: viper.GetFloat64("gate.connect_rate_limit"),
		ConnectRateBurst: viper.GetInt("gate.connect_rate_burst"),
		VerboseLogging:   viper.GetBool("gate.verbose_logging"),
	}
}

func createDefaultConfig(defaultConfigDir string) {
	defaultConfigFile := filepath.Join(defaultConfigDir, "config.yaml")
	// Ensure directory exists
	if err := os.MkdirAll(defaultConfigDir, 0o755); err != nil {
		log.Fatalf("Could not create config directory: %s", err)
	}

	// Write current config file
	if err := viper.WriteConfigAs(defaultConfigFile); err != nil {
		log.Fatalf("Could not write default config file: %s", err)
	}

	log.Debugf("Created default configuration at: %s", defaultConfigFile)
}

func handleConfigFile() {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if CfgFile != "" {
				log.Fatalf("Config file %s is not found: %s", CfgFile, err)
			} else {
				createDefaultConfig(BuildAwareDirPath())
			}
		} else {
			log.Fatalf("Error reading config file: %s", err)
		}
	} else {
		log.Debugf("Using config file: %s", viper.ConfigFileUsed())
	}
}

func BuildAwareDirPath() string {
	return filepath.Join(util.UserHome(), AWARE_BASE_DIR)
}
