/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: shm_linux.go
Description: SysV shared-memory attach and detach for Linux. Thin wrappers over
the shmat/shmdt syscalls exposed by golang.org/x/sys/unix.
*/

//go:build linux

package shmfill

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Attach maps the SysV shared-memory segment with the given identifier into
// the process address space, read-write. The returned slice spans the whole
// segment as sized by the creator.
func Attach(id int) ([]byte, error) {
	buf, err := unix.SysvShmAttach(id, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("shmat(%d): %w", id, err)
	}
	return buf, nil
}

// Detach unmaps a segment previously returned by Attach. The fixture itself
// never calls this (the segment stays attached until process exit, matching
// the harness handoff protocol); it exists for harness-side callers.
func Detach(buf []byte) error {
	if err := unix.SysvShmDetach(buf); err != nil {
		return fmt.Errorf("shmdt: %w", err)
	}
	return nil
}
