/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: shmfill_test.go
Description: Tests for the shared-memory writer fixture core. Covers identifier
parsing with C atoi tolerance, environment handling, and the offset pattern
fill and verification. The real SysV attach path is covered in shm_linux_test.
*/

package shmfill_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/kleascm/akaylee-targets/pkg/targets/shmfill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected int
	}{
		{"plain number", "123", 123},
		{"zero", "0", 0},
		{"negative", "-7", -7},
		{"explicit plus", "+42", 42},
		{"leading whitespace", "  99", 99},
		{"trailing garbage ignored", "42abc", 42},
		{"pure garbage is zero", "abc", 0},
		{"empty is zero", "", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, shmfill.ParseID(tc.input))
		})
	}
}

func TestSegmentIDFromEnv(t *testing.T) {
	t.Setenv(shmfill.EnvVar, "1234")

	id, err := shmfill.SegmentIDFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 1234, id)
}

func TestSegmentIDFromEnvUnset(t *testing.T) {
	// t.Setenv registers restoration, the explicit unset creates the
	// missing-variable condition under test.
	t.Setenv(shmfill.EnvVar, "placeholder")
	os.Unsetenv(shmfill.EnvVar)

	_, err := shmfill.SegmentIDFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), shmfill.EnvVar)
}

func TestFillAndVerifyPattern(t *testing.T) {
	buf := make([]byte, 300)
	shmfill.FillPattern(buf)

	for _, offset := range []int{0, 1, 255, 256, 299} {
		assert.Equal(t, byte(offset), buf[offset], "offset %d", offset)
	}
	require.NoError(t, shmfill.VerifyPattern(buf))
}

func TestVerifyPatternReportsOffset(t *testing.T) {
	buf := make([]byte, shmfill.MapSize)
	shmfill.FillPattern(buf)
	buf[513] ^= 0xFF

	err := shmfill.VerifyPattern(buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "offset 513")
}

func TestVerifyPatternEmpty(t *testing.T) {
	require.NoError(t, shmfill.VerifyPattern(nil))
}

func TestRunWithoutEnv(t *testing.T) {
	t.Setenv(shmfill.EnvVar, "placeholder")
	os.Unsetenv(shmfill.EnvVar)

	var stderr bytes.Buffer
	code := shmfill.Run(&stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), shmfill.EnvVar)
}
