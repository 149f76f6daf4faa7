package respond

import "strings"

// maxURILen bounds the request URI before it's ever concatenated onto a
// path buffer — checked up front, not after a tentative write.
const maxURILen = 256

// ResolveFilename turns a request URI into a filesystem path under root.
// Query strings are stripped; extensionless paths not already ending in
// '/' gain one, and anything ending in '/' resolves to its index.html.
func ResolveFilename(root string, uri []byte) (string, error) {
	if len(uri) >= maxURILen {
		return "", ErrURITooLong
	}

	path := string(uri)
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}

	full := root + path

	if !strings.HasSuffix(full, "/") {
		last := full
		if i := strings.LastIndexByte(full, '/'); i >= 0 {
			last = full[i+1:]
		}
		if !strings.Contains(last, ".") {
			full += "/"
		}
	}
	if strings.HasSuffix(full, "/") {
		full += "index.html"
	}

	return full, nil
}
