/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared utilities for the targetctl commands. Provides common
configuration loading and logging setup used across all command
implementations.
*/

package commands

import (
	"fmt"

	"github.com/kleascm/akaylee-targets/pkg/logging"
	"github.com/spf13/viper"
)

// LoadConfig loads configuration from files and environment
func LoadConfig() error {
	// Set config file if specified
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("AKAYLEE")
	viper.AutomaticEnv()

	return nil
}

// SetupLogging creates the logger from viper configuration
func SetupLogging() (*logging.Logger, error) {
	level := viper.GetString("log_level")
	if level == "" {
		level = string(logging.LogLevelInfo)
	}
	format := viper.GetString("log_format")
	if format == "" {
		format = string(logging.LogFormatCustom)
	}

	config := &logging.LoggerConfig{
		Level:     logging.LogLevel(level),
		Format:    logging.LogFormat(format),
		OutputDir: viper.GetString("log_dir"),
		MaxFiles:  10,
		Timestamp: true,
		Colors:    true,
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logging configuration: %w", err)
	}

	logger, err := logging.NewLogger(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}
