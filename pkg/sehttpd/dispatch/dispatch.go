// Package dispatch is a small, case-insensitive header-name table that
// mutates per-request response state as each parsed header is drained
// from the connection's header queue.
package dispatch

import (
	"bytes"
	"time"

	"github.com/hfyeh/sehttpd/pkg/sehttpd/httpparse"
)

// ResponseState is populated by header handlers and then consumed by the
// response builder. Its zero value is not ready to use — construct one with
// NewResponseState so Status/Modified carry their request-start defaults.
type ResponseState struct {
	Status    int
	Modified  bool
	KeepAlive bool
}

// NewResponseState returns the defaults every request starts from: 200,
// body will be sent, connection closes unless a header says otherwise.
func NewResponseState() ResponseState {
	return ResponseState{Status: 200, Modified: true, KeepAlive: false}
}

type handler func(value []byte, mtime time.Time, out *ResponseState)

// table entries are matched prefix-by-length: a header name is looked up by
// first comparing its length, then doing a case-insensitive byte compare.
var table = []struct {
	name string
	fn   handler
}{
	{"Host", hostHandler},
	{"Connection", connectionHandler},
	{"If-Modified-Since", ifModifiedSinceHandler},
}

func hostHandler(_ []byte, _ time.Time, _ *ResponseState) {
	// no response-state effect; listed so the table documents every
	// header name this server recognizes, not just the ones that act
}

func connectionHandler(value []byte, _ time.Time, out *ResponseState) {
	if bytes.EqualFold(bytes.TrimSpace(value), []byte("keep-alive")) {
		out.KeepAlive = true
	}
}

// ifModifiedSinceHandler compares an RFC 1123 date against mtime to the
// second. A parse failure is non-fatal — the header is simply ignored, same
// as an unrecognized header would be.
func ifModifiedSinceHandler(value []byte, mtime time.Time, out *ResponseState) {
	t, err := time.Parse(time.RFC1123, string(bytes.TrimSpace(value)))
	if err != nil {
		return
	}
	if t.Unix() == mtime.Unix() {
		out.Modified = false
		out.Status = 304
	}
}

func lookup(name []byte) handler {
	for _, e := range table {
		if len(e.name) != len(name) {
			continue
		}
		if bytes.EqualFold([]byte(e.name), name) {
			return e.fn
		}
	}
	return nil
}

// Dispatch drains q, invoking the matching handler (if any) for every
// header. The queue is always empty once Dispatch returns — Drain removes
// each entry as it visits it, whether or not that header matched the
// table.
func Dispatch(q *httpparse.HeaderQueue, mtime time.Time, out *ResponseState) {
	q.Drain(func(key, value []byte) {
		if fn := lookup(key); fn != nil {
			fn(value, mtime, out)
		}
	})
}
