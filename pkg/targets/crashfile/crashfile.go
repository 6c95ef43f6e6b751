/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: crashfile.go
Description: Crash-on-string target fixture for harness validation. Loads a file
into a fixed-capacity buffer, matches it against two hard-coded trigger strings,
and either spins, faults, or echoes the input. Used to confirm that a fuzzing
harness detects crashes and distinguishes them from slow-but-clean runs.
*/

package crashfile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"unsafe"
)

const (
	// InputCapacity mirrors the 40-byte stack buffer of the classic C fixture.
	// Reads are bounded to this capacity; the original's unbounded fread is a
	// latent overflow on top of the intentional crash path and is not mirrored.
	InputCapacity = 40

	spinIterations = 1000

	// crashAddr is a small, never-mapped address. Writing through it raises
	// a fault signal on every platform we care about.
	crashAddr = uintptr(0x123)
)

// Trigger inputs recognized by the fixture. SpinTrigger exercises the
// slow-but-clean path, CrashTrigger the fault path. Both carry one byte
// outside printable ASCII so plain text corpora never hit them by accident.
var (
	SpinTrigger  = []byte("Hello Worl\xE4")
	CrashTrigger = []byte("Hell\xEF World")
)

// Outcome is the decision the fixture takes for a given input.
type Outcome int

const (
	OutcomePrint Outcome = iota
	OutcomeSpin
	OutcomeCrash
)

// String returns a human-readable outcome name
func (o Outcome) String() string {
	switch o {
	case OutcomeSpin:
		return "spin"
	case OutcomeCrash:
		return "crash"
	default:
		return "print"
	}
}

// LoadInput reads at most InputCapacity bytes from the file at path.
func LoadInput(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	buf := make([]byte, InputCapacity)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return buf[:n], nil
}

// Classify decides the outcome for the given input bytes. Comparison uses C
// string semantics: the input is cut at the first NUL before matching, so a
// trigger followed by a terminator still matches, the way strcmp saw it.
func Classify(data []byte) Outcome {
	s := data
	if i := bytes.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	switch {
	case bytes.Equal(s, SpinTrigger):
		return OutcomeSpin
	case bytes.Equal(s, CrashTrigger):
		return OutcomeCrash
	default:
		return OutcomePrint
	}
}

// SpinABunch burns a deterministic amount of CPU and completes normally.
// The harness should classify this run as slow, not hung and not crashed.
func SpinABunch() int {
	x := 20
	for i := 0; i < spinIterations; i++ {
		x++
	}
	return x
}

// Crash performs an invalid memory write and never returns normally. The
// runtime would turn the fault into an ordinary panic and exit with status
// 2, which a harness watching wait status would bucket as a clean nonzero
// exit; crash traceback mode makes the runtime abort instead, so the
// process dies signal-terminated the way the harness expects.
func Crash() {
	debug.SetTraceback("crash")
	*(*byte)(unsafe.Pointer(crashAddr)) = 5
}

// Run executes the full fixture behavior for the file at path: load the
// input, take the matching path, and echo the buffer on completion. The
// crash path does not return.
func Run(path string, stdout io.Writer) error {
	data, err := LoadInput(path)
	if err != nil {
		return err
	}

	switch Classify(data) {
	case OutcomeSpin:
		SpinABunch()
	case OutcomeCrash:
		Crash()
	}

	fmt.Fprintf(stdout, "%s\n", data)
	return nil
}
