/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Command-line interface for the Akaylee target fixtures. Provides
seed generation, fixture verification, and self-check commands so a fuzzing
harness setup can be validated before any real campaign starts.
*/

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/kleascm/akaylee-targets/cmd/targetctl/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Configuration
	configFile string
	logLevel   string
	logFormat  string
	logDir     string

	// Verification configuration
	crashTarget  string
	crashTimeout time.Duration
	shmTarget    string
	shmTimeout   time.Duration
	shmSize      int

	// Corpus configuration
	seedsCorpusDir string

	// Self-check configuration
	checkCrashTarget string
	checkShmTarget   string
	checkCorpusDir   string
)

// buildRootCmd assembles the targetctl command tree. Every viper key is
// bound to exactly one flag instance; subcommands that take the same kind
// of value use namespaced keys so they never shadow each other.
func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "targetctl",
		Short: "Akaylee Targets - Fixture suite for fuzzing-harness validation",
		Long: `Akaylee Targets ships two tiny fixture binaries for exercising a
coverage-guided fuzzing harness: a crash-on-string target and an AFL-style
shared-memory writer. targetctl generates their canonical seed inputs,
verifies the fixtures behave exactly as a harness expects, and self-checks
the environment the harness will run in.`,
		Version: "1.0.0",
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "custom", "Log format (text, json, custom)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Log output directory (empty = console only)")

	// Bind flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("log_dir", rootCmd.PersistentFlags().Lookup("log-dir"))

	// Add seeds command
	seedsCmd := &cobra.Command{
		Use:   "seeds",
		Short: "Write the canonical fixture inputs into a corpus directory",
		Long: `Write the three canonical crash-on-string inputs (spin trigger, crash
trigger, benign) into a corpus directory, ready to be handed to a harness.`,
		RunE: commands.WriteSeeds,
	}
	seedsCmd.Flags().StringVar(&seedsCorpusDir, "corpus", "./corpus", "Directory for seed inputs")
	viper.BindPFlag("seeds.corpus_dir", seedsCmd.Flags().Lookup("corpus"))
	rootCmd.AddCommand(seedsCmd)

	// Add verify command with per-fixture subcommands
	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify fixture behavior the way a harness would observe it",
	}

	verifyCrashCmd := &cobra.Command{
		Use:   "crash",
		Short: "Verify the crash-on-string fixture",
		Long: `Run the crash-on-string fixture through its full behavior table: the
spin input must complete normally, the crash input must die on a memory
fault, and any other input must be echoed back with exit code 0.`,
		RunE: commands.VerifyCrash,
	}
	verifyCrashCmd.Flags().StringVar(&crashTarget, "target", "", "Path to crash-on-string binary (required)")
	verifyCrashCmd.Flags().DurationVar(&crashTimeout, "timeout", 10*time.Second, "Per-run execution timeout")
	verifyCrashCmd.MarkFlagRequired("target")
	viper.BindPFlag("crash.target", verifyCrashCmd.Flags().Lookup("target"))
	viper.BindPFlag("crash.timeout", verifyCrashCmd.Flags().Lookup("timeout"))
	verifyCmd.AddCommand(verifyCrashCmd)

	verifyShmCmd := &cobra.Command{
		Use:   "shm",
		Short: "Verify the shared-memory writer fixture",
		Long: `Create a SysV shared-memory segment, publish its identifier via
__AFL_SHM_ID, run the writer fixture, and verify the offset pattern landed
in the segment. Also probes the unset-variable failure path.`,
		RunE: commands.VerifyShm,
	}
	verifyShmCmd.Flags().StringVar(&shmTarget, "target", "", "Path to shm-writer binary (required)")
	verifyShmCmd.Flags().DurationVar(&shmTimeout, "timeout", 10*time.Second, "Per-run execution timeout")
	verifyShmCmd.Flags().IntVar(&shmSize, "shm-size", 64*1024, "Shared-memory segment size in bytes")
	verifyShmCmd.MarkFlagRequired("target")
	viper.BindPFlag("shm.target", verifyShmCmd.Flags().Lookup("target"))
	viper.BindPFlag("shm.timeout", verifyShmCmd.Flags().Lookup("timeout"))
	viper.BindPFlag("shm.size", verifyShmCmd.Flags().Lookup("shm-size"))
	verifyCmd.AddCommand(verifyShmCmd)

	rootCmd.AddCommand(verifyCmd)

	// Add check command for built-in self-checks
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Perform built-in self-checks for harness prerequisites",
		Long: `Perform environment checks to validate fixture binary existence, corpus
writability, and SysV shared-memory availability before handing the fixtures
to a harness. Useful for CI integration.`,
		RunE: commands.PerformSelfCheck,
	}
	checkCmd.Flags().StringVar(&checkCrashTarget, "crash-target", "", "Path to crash-on-string binary")
	checkCmd.Flags().StringVar(&checkShmTarget, "shm-target", "", "Path to shm-writer binary")
	checkCmd.Flags().StringVar(&checkCorpusDir, "corpus", "./corpus", "Corpus directory to check")
	viper.BindPFlag("check.crash_target", checkCmd.Flags().Lookup("crash-target"))
	viper.BindPFlag("check.shm_target", checkCmd.Flags().Lookup("shm-target"))
	viper.BindPFlag("check.corpus_dir", checkCmd.Flags().Lookup("corpus"))
	rootCmd.AddCommand(checkCmd)

	return rootCmd
}

func main() {
	if err := buildRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
