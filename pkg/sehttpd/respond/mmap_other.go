//go:build !linux

package respond

import (
	"io"
	"os"
)

// mmapFile falls back to a plain read on platforms without the mmap
// syscall wired up here. This provides a consistent API across all
// platforms.
func mmapFile(fd int, size int64) ([]byte, error) {
	if size == 0 {
		return nil, nil
	}
	f := os.NewFile(uintptr(fd), "")
	buf := make([]byte, size)
	if _, err := io.ReadFull(io.NewSectionReader(f, 0, size), buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func munmapFile(data []byte) error {
	return nil
}
