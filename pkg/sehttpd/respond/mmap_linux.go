//go:build linux

package respond

import "golang.org/x/sys/unix"

// mmapFile memory-maps the first size bytes of fd read-only. The mapping
// must be released with munmapFile once the body has been written.
func mmapFile(fd int, size int64) ([]byte, error) {
	if size == 0 {
		return nil, nil
	}
	return unix.Mmap(fd, 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
}

func munmapFile(data []byte) error {
	if data == nil {
		return nil
	}
	return unix.Munmap(data)
}
