/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: check.go
Description: Self-check command for targetctl. Validates fixture binary
existence, corpus writability, and SysV shared-memory availability so a
harness setup fails fast instead of mid-campaign.
*/

package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kleascm/akaylee-targets/pkg/harness"
	"github.com/kleascm/akaylee-targets/pkg/targets/shmfill"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// PerformSelfCheck validates harness prerequisites
func PerformSelfCheck(cmd *cobra.Command, args []string) error {
	fmt.Println("🔍 Akaylee Targets - Environment Self-Check")
	fmt.Println("===========================================")
	fmt.Println()

	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	checks := []struct {
		name     string
		function func() error
	}{
		{"Fixture Binaries", checkFixtureBinaries},
		{"Corpus Directory", checkCorpusDirectory},
		{"Shared Memory", checkSharedMemory},
	}

	passed := 0
	for _, check := range checks {
		fmt.Printf("🔍 %s... ", check.name)
		if err := check.function(); err != nil {
			fmt.Printf("❌ FAILED: %v\n", err)
		} else {
			fmt.Println("✅ PASSED")
			passed++
		}
	}

	return summarize(passed, len(checks))
}

// checkFixtureBinaries verifies the configured fixture binaries exist and
// are executable. Unconfigured targets are skipped, not failed.
func checkFixtureBinaries() error {
	targets := []string{
		viper.GetString("check.crash_target"),
		viper.GetString("check.shm_target"),
	}

	configured := 0
	for _, target := range targets {
		if target == "" {
			continue
		}
		configured++
		info, err := os.Stat(target)
		if err != nil {
			return fmt.Errorf("%s: %w", target, err)
		}
		if info.IsDir() || info.Mode()&0111 == 0 {
			return fmt.Errorf("%s is not an executable file", target)
		}
	}
	if configured == 0 {
		return fmt.Errorf("no fixture binaries configured (use --crash-target / --shm-target)")
	}
	return nil
}

// checkCorpusDirectory verifies the corpus directory is writable
func checkCorpusDirectory() error {
	corpusDir := viper.GetString("check.corpus_dir")
	if corpusDir == "" {
		corpusDir = "./corpus"
	}
	if err := os.MkdirAll(corpusDir, 0755); err != nil {
		return fmt.Errorf("cannot create %s: %w", corpusDir, err)
	}

	probe := filepath.Join(corpusDir, ".writecheck")
	if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
		return fmt.Errorf("cannot write to %s: %w", corpusDir, err)
	}
	os.Remove(probe)
	return nil
}

// checkSharedMemory verifies a SysV segment can be created, attached, and
// removed, which is everything the shm handoff needs.
func checkSharedMemory() error {
	seg, err := harness.NewSegment(shmfill.MapSize)
	if err != nil {
		return fmt.Errorf("SysV shared memory unavailable: %w", err)
	}
	return seg.Close()
}
