/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main_test.go
Description: Tests for the targetctl command tree. Covers the flag-to-viper
bindings (each key must resolve to the flag the user actually set, with no
cross-talk between subcommands) and drives the verification commands end to
end against freshly built fixture binaries.
*/

package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/kleascm/akaylee-targets/pkg/harness"
	"github.com/kleascm/akaylee-targets/pkg/targets/shmfill"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagBindingsResolvePerSubcommand(t *testing.T) {
	root := buildRootCmd()

	crashCmd, _, err := root.Find([]string{"verify", "crash"})
	require.NoError(t, err)
	shmCmd, _, err := root.Find([]string{"verify", "shm"})
	require.NoError(t, err)
	checkCmd, _, err := root.Find([]string{"check"})
	require.NoError(t, err)
	seedsCmd, _, err := root.Find([]string{"seeds"})
	require.NoError(t, err)

	// Give every like-named flag a distinct value.
	require.NoError(t, crashCmd.Flags().Set("target", "/bin/crash"))
	require.NoError(t, crashCmd.Flags().Set("timeout", "3s"))
	require.NoError(t, shmCmd.Flags().Set("target", "/bin/writer"))
	require.NoError(t, shmCmd.Flags().Set("timeout", "7s"))
	require.NoError(t, shmCmd.Flags().Set("shm-size", "4096"))
	require.NoError(t, checkCmd.Flags().Set("crash-target", "/bin/check-crash"))
	require.NoError(t, checkCmd.Flags().Set("corpus", "/tmp/check-corpus"))
	require.NoError(t, seedsCmd.Flags().Set("corpus", "/tmp/seed-corpus"))

	// Each key must see its own flag, not another subcommand's.
	assert.Equal(t, "/bin/crash", viper.GetString("crash.target"))
	assert.Equal(t, 3*time.Second, viper.GetDuration("crash.timeout"))
	assert.Equal(t, "/bin/writer", viper.GetString("shm.target"))
	assert.Equal(t, 7*time.Second, viper.GetDuration("shm.timeout"))
	assert.Equal(t, 4096, viper.GetInt("shm.size"))
	assert.Equal(t, "/bin/check-crash", viper.GetString("check.crash_target"))
	assert.Equal(t, "/tmp/check-corpus", viper.GetString("check.corpus_dir"))
	assert.Equal(t, "/tmp/seed-corpus", viper.GetString("seeds.corpus_dir"))
}

func buildBinary(t *testing.T, importPath, name string) string {
	t.Helper()
	if _, err := exec.LookPath("go"); err != nil {
		t.Skipf("go toolchain unavailable: %v", err)
	}

	bin := filepath.Join(t.TempDir(), name)
	out, err := exec.Command("go", "build", "-o", bin, importPath).CombinedOutput()
	require.NoError(t, err, "build failed: %s", out)
	return bin
}

func TestVerifyCrashCommand(t *testing.T) {
	bin := buildBinary(t, "github.com/kleascm/akaylee-targets/cmd/crash-on-string", "crash-on-string")

	root := buildRootCmd()
	root.SetArgs([]string{"verify", "crash", "--target", bin})
	require.NoError(t, root.Execute())
}

func TestVerifyShmCommand(t *testing.T) {
	if seg, err := harness.NewSegment(shmfill.MapSize); err != nil {
		t.Skipf("SysV shared memory unavailable: %v", err)
	} else {
		seg.Close()
	}

	bin := buildBinary(t, "github.com/kleascm/akaylee-targets/cmd/shm-writer", "shm-writer")

	root := buildRootCmd()
	root.SetArgs([]string{"verify", "shm", "--target", bin})
	require.NoError(t, root.Execute())
}

func TestCheckCommand(t *testing.T) {
	if seg, err := harness.NewSegment(shmfill.MapSize); err != nil {
		t.Skipf("SysV shared memory unavailable: %v", err)
	} else {
		seg.Close()
	}

	crashBin := buildBinary(t, "github.com/kleascm/akaylee-targets/cmd/crash-on-string", "crash-on-string")

	root := buildRootCmd()
	root.SetArgs([]string{"check", "--crash-target", crashBin, "--corpus", t.TempDir()})
	require.NoError(t, root.Execute())
}

func TestSeedsCommand(t *testing.T) {
	corpusDir := filepath.Join(t.TempDir(), "corpus")

	root := buildRootCmd()
	root.SetArgs([]string{"seeds", "--corpus", corpusDir})
	require.NoError(t, root.Execute())

	for _, name := range []string{"spin_trigger", "crash_trigger", "benign"} {
		_, err := os.Stat(filepath.Join(corpusDir, name))
		assert.NoError(t, err, "seed %s missing", name)
	}
}
