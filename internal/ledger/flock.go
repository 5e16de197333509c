package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

const lockFileName = "ledger.lock"

// FileLock serializes the ledger's read-modify-write cycle across cohort
// processes sharing one data directory, using flock(2) on a dedicated lock
// file.
type FileLock struct {
	path string
	file *os.File
}

// NewFileLock returns an unlocked FileLock for dir. The lock file itself is
// created inside dir on the first Lock.
func NewFileLock(dir string) *FileLock {
	return &FileLock{path: filepath.Join(dir, lockFileName)}
}

// Lock blocks until the exclusive lock is acquired.
func (fl *FileLock) Lock() error {
	f, err := os.OpenFile(fl.path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		_ = f.Close()
		return fmt.Errorf("flock %s: %w", fl.path, err)
	}
	fl.file = f
	return nil
}

// Unlock releases the lock and closes the lock file. Unlocking a lock that
// is not held is a no-op.
func (fl *FileLock) Unlock() error {
	if fl.file == nil {
		return nil
	}
	f := fl.file
	fl.file = nil

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_UN); err != nil {
		_ = f.Close()
		return fmt.Errorf("funlock %s: %w", fl.path, err)
	}
	return f.Close()
}
