// Package config loads the discovery gate configuration via viper, from
// $HOME/.ghost-aware/config.yaml by default or from the file named by
// CfgFile. Missing files are created with defaults.
package config
