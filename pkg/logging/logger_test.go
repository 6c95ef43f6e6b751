/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logger_test.go
Description: Tests for the logging system. Tests logger creation, configuration
validation, formats, and file output.
*/

package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kleascm/akaylee-targets/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerCreation(t *testing.T) {
	// Test with default configuration
	logger, err := logging.NewLogger(nil)
	require.NoError(t, err)
	assert.NotNil(t, logger)
	defer logger.Close()

	// Test with custom configuration
	dir := t.TempDir()
	config := &logging.LoggerConfig{
		Level:     logging.LogLevelDebug,
		Format:    logging.LogFormatJSON,
		OutputDir: dir,
		MaxFiles:  5,
		Timestamp: true,
		Colors:    false,
	}

	custom, err := logging.NewLogger(config)
	require.NoError(t, err)
	assert.NotNil(t, custom)
	defer custom.Close()
}

func TestLoggerConfigValidation(t *testing.T) {
	valid := &logging.LoggerConfig{
		Level:    logging.LogLevelInfo,
		Format:   logging.LogFormatCustom,
		MaxFiles: 10,
	}
	require.NoError(t, valid.Validate())

	badLevel := &logging.LoggerConfig{
		Level:    "loud",
		Format:   logging.LogFormatText,
		MaxFiles: 10,
	}
	assert.Error(t, badLevel.Validate())

	badFormat := &logging.LoggerConfig{
		Level:    logging.LogLevelInfo,
		Format:   "xml",
		MaxFiles: 10,
	}
	assert.Error(t, badFormat.Validate())

	badMaxFiles := &logging.LoggerConfig{
		Level:    logging.LogLevelInfo,
		Format:   logging.LogFormatText,
		MaxFiles: 0,
	}
	assert.Error(t, badMaxFiles.Validate())
}

func TestLogFormats(t *testing.T) {
	formats := []logging.LogFormat{
		logging.LogFormatText,
		logging.LogFormatJSON,
		logging.LogFormatCustom,
	}

	for _, format := range formats {
		t.Run(string(format), func(t *testing.T) {
			logger, err := logging.NewLogger(&logging.LoggerConfig{
				Level:     logging.LogLevelDebug,
				Format:    format,
				OutputDir: "",
				MaxFiles:  10,
				Timestamp: true,
				Colors:    false,
			})
			require.NoError(t, err)
			defer logger.Close()

			logger.Debug("Debug message", map[string]interface{}{"key": "value"})
			logger.Info("Info message", map[string]interface{}{"key": "value"})
			logger.Warning("Warning message", nil)
			logger.Error("Error message", nil)
		})
	}
}

func TestFileOutput(t *testing.T) {
	dir := t.TempDir()
	logger, err := logging.NewLogger(&logging.LoggerConfig{
		Level:     logging.LogLevelInfo,
		Format:    logging.LogFormatText,
		OutputDir: dir,
		MaxFiles:  3,
		Timestamp: true,
		Colors:    false,
	})
	require.NoError(t, err)

	logger.Info("A message that must land in the file", nil)
	require.NoError(t, logger.Close())

	files, err := filepath.Glob(filepath.Join(dir, "akaylee-targets_*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "A message that must land in the file")
}

func TestFixtureLoggingMethods(t *testing.T) {
	logger, err := logging.NewLogger(nil)
	require.NoError(t, err)
	defer logger.Close()

	logger.LogRun("run-1", "/tmp/crash-on-string", "ok", 0, nil)
	logger.LogCrash("run-2", "segmentation fault", nil)
	logger.LogSegment(42, 65536, "created", map[string]interface{}{"probe": true})
}
