package respond

import "errors"

var (
	// ErrURITooLong: request URI was 256 bytes or longer. Checked before any
	// byte is written into a resolved-path buffer, so an oversized URI
	// never risks writing past the end of that buffer.
	ErrURITooLong = errors.New("respond: uri is 256 bytes or longer")

	// ErrNotFound: the resolved filesystem path does not exist.
	ErrNotFound = errors.New("respond: file not found")

	// ErrForbidden: the resolved path exists but is not a readable regular
	// file (a directory, a device node, permissions).
	ErrForbidden = errors.New("respond: file not accessible")
)
