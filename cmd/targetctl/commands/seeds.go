/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: seeds.go
Description: Seeds command implementation for targetctl. Writes the canonical
crash-on-string inputs into a corpus directory so a harness campaign starts
with every interesting path already represented.
*/

package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kleascm/akaylee-targets/pkg/targets/crashfile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CanonicalSeeds returns the seed corpus for the crash-on-string fixture:
// one input per behavior path.
func CanonicalSeeds() map[string][]byte {
	return map[string][]byte{
		"spin_trigger":  append([]byte(nil), crashfile.SpinTrigger...),
		"crash_trigger": append([]byte(nil), crashfile.CrashTrigger...),
		"benign":        []byte("hello akaylee"),
	}
}

// WriteSeeds writes the canonical seed inputs into the corpus directory
func WriteSeeds(cmd *cobra.Command, args []string) error {
	fmt.Println("🌱 Akaylee Targets - Seed Corpus Generation")
	fmt.Println("===========================================")
	fmt.Println()

	// Load configuration first
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := SetupLogging()
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer logger.Close()

	corpusDir := viper.GetString("seeds.corpus_dir")
	if corpusDir == "" {
		corpusDir = "./corpus"
	}

	if err := os.MkdirAll(corpusDir, 0755); err != nil {
		return fmt.Errorf("failed to create corpus directory: %w", err)
	}

	for name, data := range CanonicalSeeds() {
		path := filepath.Join(corpusDir, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write seed %s: %w", name, err)
		}
		logger.Info("Seed written", map[string]interface{}{
			"seed": name,
			"path": path,
			"size": len(data),
		})
		fmt.Printf("✅ %s (%d bytes)\n", path, len(data))
	}

	fmt.Println()
	fmt.Printf("✨ Seed corpus ready in %s\n", corpusDir)
	return nil
}
