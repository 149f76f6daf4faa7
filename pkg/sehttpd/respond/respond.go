// Package respond builds and sends HTTP responses for static files: given
// a resolved file and the response state header dispatch produced, it
// emits the status line, headers, and (when applicable) a memory-mapped
// file body.
package respond

import (
	"fmt"
	"strings"
	"time"

	"github.com/hfyeh/sehttpd/pkg/sehttpd/dispatch"
)

// ServerName appears in every response's Server header.
const ServerName = "sehttpd"

// TimeoutDefault is the idle-connection timeout advertised in Keep-Alive
// and used by the reactor to arm each connection's idle timer.
const TimeoutDefault = 500 * time.Millisecond

func statusText(code int) string {
	switch code {
	case 200:
		return "OK"
	case 304:
		return "Not Modified"
	case 403:
		return "Forbidden"
	case 404:
		return "Not Found"
	default:
		return "Internal Server Error"
	}
}

// SendStatic emits the full response for a successfully resolved static
// file: status line, applicable headers, and — unless out.Modified is
// false — the memory-mapped body.
func SendStatic(fd int, fi *FileInfo, mimeType string, out dispatch.ResponseState) error {
	var b strings.Builder
	fmt.Fprintf(&b, "HTTP/1.1 %d %s\r\n", out.Status, statusText(out.Status))

	if out.KeepAlive {
		b.WriteString("Connection: keep-alive\r\n")
		fmt.Fprintf(&b, "Keep-Alive: timeout=%d\r\n", int(TimeoutDefault/time.Millisecond))
	}

	if out.Modified {
		fmt.Fprintf(&b, "Content-type: %s\r\n", mimeType)
		fmt.Fprintf(&b, "Content-length: %d\r\n", fi.Size)
		lastMod := time.Unix(fi.ModTime, 0).Local().Format(time.RFC1123)
		fmt.Fprintf(&b, "Last-Modified: %s\r\n", lastMod)
	}

	fmt.Fprintf(&b, "Server: %s\r\n\r\n", ServerName)

	if err := writen(fd, []byte(b.String())); err != nil {
		return err
	}
	if !out.Modified {
		return nil
	}

	body, err := mmapFile(fi.Fd(), fi.Size)
	if err != nil {
		return err
	}
	defer munmapFile(body)

	return writen(fd, body)
}

// errorBody renders the minimal HTML body for a 4xx response.
func errorBody(status int) string {
	reason := statusText(status)
	return fmt.Sprintf("<html><head><title>%d %s</title></head>"+
		"<body><h1>%d %s</h1></body></html>", status, reason, status, reason)
}

// SendError emits a synchronous 4xx response with Connection: close and a
// minimal HTML body. Used for 404 (missing file), 403 (unreadable file),
// and any other application-level error the driver maps to a status code.
func SendError(fd int, status int) error {
	body := errorBody(status)
	var b strings.Builder
	fmt.Fprintf(&b, "HTTP/1.1 %d %s\r\n", status, statusText(status))
	b.WriteString("Connection: close\r\n")
	b.WriteString("Content-type: text/html\r\n")
	fmt.Fprintf(&b, "Content-length: %d\r\n", len(body))
	fmt.Fprintf(&b, "Server: %s\r\n\r\n", ServerName)
	b.WriteString(body)

	return writen(fd, []byte(b.String()))
}
