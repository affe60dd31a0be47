//go:build !linux && !darwin && !freebsd

package backing

import (
	"io"
	"os"
)

// mapAnon falls back to a heap slice when mmap is not available.
func mapAnon(size int) ([]byte, func() error, error) {
	return make([]byte, size), func() error { return nil }, nil
}

// mapFile reads the file into a heap slice; syncRange writes it back.
func mapFile(f *os.File, size int) ([]byte, func() error, error) {
	data := make([]byte, size)
	if _, err := f.ReadAt(data, 0); err != nil && err != io.EOF {
		return nil, nil, err
	}
	return data, func() error { return nil }, nil
}

func syncRange(s *Store, off, n int) error {
	if _, err := s.file.WriteAt(s.data[off:off+n], int64(off)); err != nil {
		return err
	}
	return s.file.Sync()
}
