// Package backing provides the byte store that simulated physical memory
// lives in. Stores are either anonymous mappings or mappings of a file that
// mirrors memory contents on disk.
package backing

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrSize indicates a non-positive store size.
	ErrSize = errors.New("backing: size must be positive")

	// ErrClosed indicates use of a store after Close.
	ErrClosed = errors.New("backing: store closed")

	// ErrRange indicates a sync range outside the store.
	ErrRange = errors.New("backing: range out of bounds")
)

// Store is a fixed-size, zero-initialized byte store.
//
// NOT thread-safe.
type Store struct {
	data  []byte
	file  *os.File
	unmap func() error
}

// Anonymous returns a store of size bytes that is not backed by any file.
func Anonymous(size int) (*Store, error) {
	if size <= 0 {
		return nil, ErrSize
	}
	data, unmap, err := mapAnon(size)
	if err != nil {
		return nil, fmt.Errorf("backing: map %d bytes: %w", size, err)
	}
	return &Store{data: data, unmap: unmap}, nil
}

// OpenFile creates (or truncates) the file at path to size zero bytes and
// maps it. Writes to Bytes() reach the file once Sync covers them.
func OpenFile(path string, size int) (*Store, error) {
	if size <= 0 {
		return nil, ErrSize
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("backing: open %s: %w", path, err)
	}
	// Drop any previous contents so the store starts zeroed.
	if err := f.Truncate(0); err != nil {
		f.Close()
		return nil, fmt.Errorf("backing: truncate %s: %w", path, err)
	}
	if err := f.Truncate(int64(size)); err != nil {
		f.Close()
		return nil, fmt.Errorf("backing: resize %s: %w", path, err)
	}
	data, unmap, err := mapFile(f, size)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("backing: map %s: %w", path, err)
	}
	return &Store{data: data, file: f, unmap: unmap}, nil
}

// Bytes returns the live store contents.
func (s *Store) Bytes() []byte {
	return s.data
}

// Len returns the store size in bytes.
func (s *Store) Len() int {
	return len(s.data)
}

// FileBacked reports whether the store mirrors a file.
func (s *Store) FileBacked() bool {
	return s.file != nil
}

// Path returns the backing file path, or "" for anonymous stores.
func (s *Store) Path() string {
	if s.file == nil {
		return ""
	}
	return s.file.Name()
}

// Sync writes bytes [off, off+n) through to the backing file.
// It is a no-op for anonymous stores.
func (s *Store) Sync(off, n int) error {
	if s.data == nil {
		return ErrClosed
	}
	if off < 0 || n < 0 || off+n > len(s.data) {
		return fmt.Errorf("%w: [%d,%d) of %d", ErrRange, off, off+n, len(s.data))
	}
	if s.file == nil || n == 0 {
		return nil
	}
	return syncRange(s, off, n)
}

// Close releases the mapping and closes the backing file, if any.
// Calling Close more than once is a no-op.
func (s *Store) Close() error {
	if s.data == nil {
		return nil
	}
	var errs []error
	if s.unmap != nil {
		errs = append(errs, s.unmap())
	}
	if s.file != nil {
		errs = append(errs, s.file.Close())
	}
	s.data = nil
	s.file = nil
	s.unmap = nil
	return errors.Join(errs...)
}
