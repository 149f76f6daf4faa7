package reactor

import (
	"time"

	"golang.org/x/sys/unix"

	"github.com/hfyeh/sehttpd/internal/logging"
	"github.com/hfyeh/sehttpd/pkg/sehttpd/dispatch"
	"github.com/hfyeh/sehttpd/pkg/sehttpd/httpparse"
	"github.com/hfyeh/sehttpd/pkg/sehttpd/respond"
	"github.com/hfyeh/sehttpd/pkg/sehttpd/ringbuf"
	"github.com/hfyeh/sehttpd/pkg/sehttpd/timer"
)

// conn is one accepted connection: its ring buffer, the two resumable
// parsers working over it, and the header queue dispatch drains. The
// per-readiness driver logic lives on HandleReadable.
type conn struct {
	fd      int
	buf     *ringbuf.Buffer
	webRoot string
	r       *Reactor

	rlParser  httpparse.RequestLineParser
	hdrParser httpparse.HeaderParser
	headers   httpparse.HeaderQueue
	rl        httpparse.RequestLine
	haveRL    bool

	timerRef timer.Ref
	hasTimer bool
}

func newConn(r *Reactor, fd int, webRoot string) *conn {
	c := &conn{fd: fd, buf: ringbuf.Acquire(), webRoot: webRoot, r: r}
	c.headers.Init()
	return c
}

func (c *conn) release() {
	ringbuf.Release(c.buf)
}

// HandleReadable runs the full per-connection driver loop on one readiness
// notification: drain already-buffered pipelined requests first, then read
// more only once a parser reports ErrAgain. Returns false if the connection
// should be closed, true if it should be re-armed (one-shot readiness plus
// a fresh idle timer).
func (c *conn) HandleReadable(tq *timer.Queue) bool {
	if c.hasTimer {
		tq.Cancel(c.timerRef)
		c.hasTimer = false
	}

	for {
		if !c.haveRL {
			rl, err := c.rlParser.Parse(c.buf)
			switch err {
			case nil:
				c.rl = rl
				c.haveRL = true
			case httpparse.ErrAgain:
				// fall through to reading more bytes below
			default:
				logging.PeerError(c.fd, err)
				return false
			}
		}

		if c.haveRL {
			done, err := c.hdrParser.Parse(c.buf, &c.headers)
			switch {
			case err != nil && err != httpparse.ErrAgain:
				logging.PeerError(c.fd, err)
				return false
			case err == nil && done:
				if !c.serveRequest() {
					return false
				}
				c.resetForNextRequest()
				continue
			}
		}

		w := c.buf.Writable()
		if len(w) == 0 {
			logging.Fatal(httpparse.ErrBufferOverflow)
		}

		n, err := unix.Read(c.fd, w)
		if err != nil {
			if err == unix.EAGAIN {
				break
			}
			logging.PeerError(c.fd, err)
			return false
		}
		if n == 0 {
			return false
		}
		c.buf.CommitWrite(n)
	}

	c.timerRef = tq.Add(c, respond.TimeoutDefault, onIdleTimeout)
	c.hasTimer = true
	return true
}

// serveRequest resolves the URI, stats the file, runs header dispatch
// (which needs the file's mtime for If-Modified-Since), and sends the
// response. Returns whether the connection should stay open.
func (c *conn) serveRequest() bool {
	uri := c.buf.Slice(c.rl.URIStart, c.rl.URIEnd)
	path, resolveErr := respond.ResolveFilename(c.webRoot, uri)

	var fi *respond.FileInfo
	var mtime time.Time
	statErr := resolveErr
	if resolveErr == nil {
		fi, statErr = respond.OpenFile(path)
		if statErr == nil {
			mtime = time.Unix(fi.ModTime, 0)
		}
	}

	out := dispatch.NewResponseState()
	dispatch.Dispatch(&c.headers, mtime, &out)

	if statErr != nil {
		status := 404
		if statErr == respond.ErrForbidden {
			status = 403
		}
		if err := respond.SendError(c.fd, status); err != nil {
			logging.PeerError(c.fd, err)
		}
		return false
	}
	defer fi.Close()

	if err := respond.SendStatic(c.fd, fi, respond.LookupMIME(path), out); err != nil {
		logging.PeerError(c.fd, err)
		return false
	}
	logging.Request(c.fd, path)
	return out.KeepAlive
}

func (c *conn) resetForNextRequest() {
	c.headers.Reset()
	c.haveRL = false
}

// onIdleTimeout is the timer queue's callback for an idle connection. The
// callback is responsible for closing the connection.
func onIdleTimeout(cv timer.Conn) {
	c := cv.(*conn)
	logging.Timeout(c.fd)
	c.r.closeConn(c)
}
