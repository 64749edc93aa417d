//go:build linux || darwin

package arena

import (
	"errors"

	"golang.org/x/sys/unix"
)

const mappingSupported = true

// mapRegion returns an anonymous private read-write mapping of at least size
// bytes, rounded up to whole pages.
func mapRegion(size int) ([]byte, error) {
	page := unix.Getpagesize()
	length := (size + page - 1) / page * page
	if length == 0 {
		length = page
	}
	return unix.Mmap(-1, 0, length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
}

func protectRegion(mem []byte) error {
	return unix.Mprotect(mem[:cap(mem)], unix.PROT_READ)
}

func unmapRegion(mem []byte) error {
	err := unix.Munmap(mem[:cap(mem)])
	if errors.Is(err, unix.EINVAL) {
		// Treat double-unmap as no-op for callers.
		return nil
	}
	return err
}
