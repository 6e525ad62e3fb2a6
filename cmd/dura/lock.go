package main

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// lockFileName is the advisory lock dura's CLI takes around `backup`.
// The core (internal/archive, internal/band, ...) enforces no
// locking of its own: spec.md §5 calls the single-writer rule a
// convention, with "a filesystem-level lock... layered externally" as an
// option. This is that external layer.
const lockFileName = ".dura-lock"

// withArchiveLock runs fn while holding an exclusive flock(2) on a lock
// file inside archiveDir, so that two `dura backup` invocations against
// the same archive serialize instead of racing.
func withArchiveLock(archiveDir string, fn func() error) error {
	path := filepath.Join(archiveDir, lockFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		return err
	}
	defer unix.Flock(int(f.Fd()), unix.LOCK_UN)

	return fn()
}
