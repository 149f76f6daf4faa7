package respond

import (
	"os"
)

// FileInfo is the (size, mtime, readable-mapping) triple an open, readable
// regular file resolves to.
type FileInfo struct {
	file    *os.File
	Size    int64
	ModTime int64 // unix seconds, mtime truncated to whole-second resolution
}

// OpenFile resolves path to an open, readable regular file or returns
// ErrNotFound / ErrForbidden. The caller must call Close when done.
func OpenFile(path string) (*FileInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, ErrForbidden
	}

	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ErrForbidden
	}
	if !st.Mode().IsRegular() {
		f.Close()
		return nil, ErrForbidden
	}

	return &FileInfo{file: f, Size: st.Size(), ModTime: st.ModTime().Unix()}, nil
}

// Fd returns the raw descriptor for mmap.
func (fi *FileInfo) Fd() int {
	return int(fi.file.Fd())
}

// Close releases the underlying os.File.
func (fi *FileInfo) Close() error {
	return fi.file.Close()
}
