//go:build linux || darwin || freebsd

package backing

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"

	"github.com/joshuapare/pagesim/internal/pow2"
)

func mapAnon(size int) ([]byte, func() error, error) {
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, err
	}
	return data, munmapper(data), nil
}

func mapFile(f *os.File, size int) ([]byte, func() error, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}
	return data, munmapper(data), nil
}

func munmapper(data []byte) func() error {
	return func() error {
		err := unix.Munmap(data)
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		return err
	}
}

// syncRange msyncs the OS pages covering [off, off+n).
func syncRange(s *Store, off, n int) error {
	start := pow2.AlignDown(off, os.Getpagesize())
	end := off + n
	return unix.Msync(s.data[start:end], unix.MS_SYNC)
}
