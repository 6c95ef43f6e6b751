/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Shared-memory writer fixture binary. Attaches the SysV segment
named by __AFL_SHM_ID and fills it with the offset pattern. Exit 0 on success,
exit 1 with a stderr diagnostic when the variable is unset or shmat fails.
*/

package main

import (
	"os"

	"github.com/kleascm/akaylee-targets/pkg/targets/shmfill"
)

func main() {
	os.Exit(shmfill.Run(os.Stderr))
}
