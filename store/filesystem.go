package store

import (
	"context"
	"io/fs"
	"os"
	"time"

	"github.com/gofrs/flock"
)

// FileSystem abstracts the file operations workspace persistence needs, so
// tests can run against an in-memory implementation.
type FileSystem interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Rename(oldpath, newpath string) error
	Remove(name string) error
}

// OSFileSystem is the default FileSystem backed by the os package.
type OSFileSystem struct{}

func (OSFileSystem) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }
func (OSFileSystem) ReadFile(name string) ([]byte, error)  { return os.ReadFile(name) }
func (OSFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}
func (OSFileSystem) Rename(oldpath, newpath string) error { return os.Rename(oldpath, newpath) }
func (OSFileSystem) Remove(name string) error             { return os.Remove(name) }

// FileLock guards the workspace file against concurrent writers in other
// processes.
type FileLock interface {
	TryLockContext(ctx context.Context, retryInterval time.Duration) (bool, error)
	Unlock() error
}

// FileLockFactory creates FileLock instances.
type FileLockFactory interface {
	New(path string) FileLock
}

// FlockFactory is the default factory using github.com/gofrs/flock.
type FlockFactory struct{}

func (FlockFactory) New(path string) FileLock { return flock.New(path) }

// NoopLockFactory disables locking. Tests use it with the in-memory
// filesystem.
type NoopLockFactory struct{}

type noopLock struct{}

func (noopLock) TryLockContext(context.Context, time.Duration) (bool, error) { return true, nil }
func (noopLock) Unlock() error                                               { return nil }

func (NoopLockFactory) New(string) FileLock { return noopLock{} }
