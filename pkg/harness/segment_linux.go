/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: segment_linux.go
Description: Harness side of the shared-memory handoff on Linux. Creates a
private SysV segment, attaches it, and removes it on close, mirroring what a
coverage-guided fuzzer does before publishing the identifier to its target.
*/

//go:build linux

package harness

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Segment is a SysV shared-memory segment owned by the verification harness
type Segment struct {
	id  int
	buf []byte
}

// NewSegment creates and attaches a fresh private segment of the given size.
func NewSegment(size int) (*Segment, error) {
	id, err := unix.SysvShmGet(unix.IPC_PRIVATE, size, unix.IPC_CREAT|0600)
	if err != nil {
		return nil, fmt.Errorf("shmget(%d): %w", size, err)
	}

	buf, err := unix.SysvShmAttach(id, 0, 0)
	if err != nil {
		// Mark for removal so a failed attach does not leak the segment.
		unix.SysvShmCtl(id, unix.IPC_RMID, nil)
		return nil, fmt.Errorf("shmat(%d): %w", id, err)
	}

	return &Segment{id: id, buf: buf}, nil
}

// ID returns the segment identifier to publish via the environment.
func (s *Segment) ID() int {
	return s.id
}

// Bytes exposes the attached segment contents.
func (s *Segment) Bytes() []byte {
	return s.buf
}

// Close detaches and removes the segment.
func (s *Segment) Close() error {
	var firstErr error
	if s.buf != nil {
		if err := unix.SysvShmDetach(s.buf); err != nil {
			firstErr = fmt.Errorf("shmdt: %w", err)
		}
		s.buf = nil
	}
	if _, err := unix.SysvShmCtl(s.id, unix.IPC_RMID, nil); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("shmctl(IPC_RMID): %w", err)
	}
	return firstErr
}
