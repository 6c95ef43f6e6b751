/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: shmfill.go
Description: Shared-memory writer target fixture. Reads a SysV shared-memory
segment identifier from the AFL-style environment variable, attaches the
segment, and fills it with a deterministic byte pattern so the harness can
verify its instrumentation channel end to end.
*/

package shmfill

import (
	"fmt"
	"io"
	"os"
)

const (
	// EnvVar is the environment variable the external harness uses to hand
	// the segment identifier to the target (AFL convention).
	EnvVar = "__AFL_SHM_ID"

	// MapSize is the segment size convention shared with the harness.
	MapSize = 64 * 1024
)

// ParseID parses a segment identifier with C atoi tolerance: optional sign,
// leading digits, everything after the first non-digit ignored. A string with
// no leading digits parses as 0, exactly as atoi would hand it to shmat.
func ParseID(s string) int {
	i, n := 0, 0
	neg := false
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
	}
	if neg {
		return -n
	}
	return n
}

// SegmentIDFromEnv reads the segment identifier from EnvVar.
func SegmentIDFromEnv() (int, error) {
	id, ok := os.LookupEnv(EnvVar)
	if !ok {
		return 0, fmt.Errorf("env var %s not defined", EnvVar)
	}
	return ParseID(id), nil
}

// FillPattern writes the offset-derived pattern: byte i becomes i mod 256.
func FillPattern(buf []byte) {
	for i := range buf {
		buf[i] = byte(i)
	}
}

// VerifyPattern is the harness-side counterpart of FillPattern. It returns
// an error naming the first offset whose byte does not match.
func VerifyPattern(buf []byte) error {
	for i := range buf {
		if buf[i] != byte(i) {
			return fmt.Errorf("pattern mismatch at offset %d: got 0x%02x, want 0x%02x",
				i, buf[i], byte(i))
		}
	}
	return nil
}

// Run executes the full fixture behavior: resolve the segment identifier,
// attach, fill. Returns the process exit code; diagnostics go to stderr as
// the harness expects. The segment stays attached until process exit.
func Run(stderr io.Writer) int {
	id, err := SegmentIDFromEnv()
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}

	buf, err := Attach(id)
	if err != nil {
		fmt.Fprintf(stderr, "shmat failed: %v\n", err)
		return 1
	}

	// The handoff convention is a MapSize segment; never write past what
	// the kernel actually attached.
	if len(buf) > MapSize {
		buf = buf[:MapSize]
	}
	FillPattern(buf)
	return 0
}
