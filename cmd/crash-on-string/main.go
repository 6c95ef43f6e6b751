/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Crash-on-string fixture binary. Invoked by an external fuzzing
harness as `crash-on-string <inputfile>`. No flags and no logging here: the
invocation contract (argv, exit codes, fault signals) belongs to the harness.
*/

package main

import (
	"os"

	"github.com/kleascm/akaylee-targets/pkg/targets/crashfile"
)

func main() {
	if len(os.Args) < 2 {
		os.Exit(1)
	}
	if err := crashfile.Run(os.Args[1], os.Stdout); err != nil {
		// The classic C fixture faulted here on an unreadable file; a clean
		// exit 1 keeps the harness's crash bucket free of setup noise.
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
