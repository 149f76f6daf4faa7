package httpparse

import (
	"testing"

	"github.com/hfyeh/sehttpd/pkg/sehttpd/ringbuf"
)

func TestRequestLineSinglePass(t *testing.T) {
	b := ringbuf.Acquire()
	defer ringbuf.Release(b)
	feed(t, b, "GET /index.html HTTP/1.1\r\n")

	var p RequestLineParser
	rl, err := p.Parse(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rl.Method != MethodGET {
		t.Fatalf("expected GET, got %v", rl.Method)
	}
	if rl.HTTPMajor != 1 || rl.HTTPMinor != 1 {
		t.Fatalf("expected HTTP/1.1, got %d.%d", rl.HTTPMajor, rl.HTTPMinor)
	}
	uri := b.Slice(rl.URIStart, rl.URIEnd)
	if string(uri) != "/index.html" {
		t.Fatalf("expected URI /index.html, got %q", uri)
	}
}

func TestRequestLineResumableAcrossByteBoundaries(t *testing.T) {
	full := "GET / HTTP/1.0\r\n"

	b := ringbuf.Acquire()
	defer ringbuf.Release(b)

	var p RequestLineParser
	var rl RequestLine
	var err error
	for i := 0; i < len(full); i++ {
		feed(t, b, full[i:i+1])
		rl, err = p.Parse(b)
		if err == ErrAgain {
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error at byte %d: %v", i, err)
		}
		break
	}
	if err != nil {
		t.Fatalf("expected request line to finish, last err: %v", err)
	}
	if rl.Method != MethodGET || rl.HTTPMajor != 1 || rl.HTTPMinor != 0 {
		t.Fatalf("unexpected result: %+v", rl)
	}
}

func TestRequestLineSplitMidMethodMatchesSinglePass(t *testing.T) {
	// "GE" then "T / HTTP/1.0\r\n" must parse identically to one shot.
	b := ringbuf.Acquire()
	defer ringbuf.Release(b)

	var p RequestLineParser
	feed(t, b, "GE")
	if _, err := p.Parse(b); err != ErrAgain {
		t.Fatalf("expected ErrAgain after partial method, got %v", err)
	}
	feed(t, b, "T / HTTP/1.0\r\n")
	rl, err := p.Parse(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rl.Method != MethodGET {
		t.Fatalf("expected GET, got %v", rl.Method)
	}
}

func TestRequestLineToleratesExtraSpacesBeforeURI(t *testing.T) {
	b := ringbuf.Acquire()
	defer ringbuf.Release(b)
	feed(t, b, "GET   /a HTTP/1.1\r\n")

	var p RequestLineParser
	rl, err := p.Parse(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	uri := b.Slice(rl.URIStart, rl.URIEnd)
	if string(uri) != "/a" {
		t.Fatalf("expected URI /a, got %q", uri)
	}
}

func TestRequestLineBareLFTerminates(t *testing.T) {
	b := ringbuf.Acquire()
	defer ringbuf.Release(b)
	feed(t, b, "GET / HTTP/1.1\n")

	var p RequestLineParser
	rl, err := p.Parse(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rl.Method != MethodGET {
		t.Fatalf("expected GET, got %v", rl.Method)
	}
}

func TestRequestLineInvalidMethodByte(t *testing.T) {
	b := ringbuf.Acquire()
	defer ringbuf.Release(b)
	feed(t, b, "G3T / HTTP/1.1\r\n")

	var p RequestLineParser
	_, err := p.Parse(b)
	if err != ErrInvalidMethod {
		t.Fatalf("expected ErrInvalidMethod, got %v", err)
	}
}

func TestRequestLineUnknownMethodClassifiesButParses(t *testing.T) {
	b := ringbuf.Acquire()
	defer ringbuf.Release(b)
	feed(t, b, "DELETE /x HTTP/1.1\r\n")

	var p RequestLineParser
	rl, err := p.Parse(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rl.Method != MethodUnknown {
		t.Fatalf("expected MethodUnknown for DELETE, got %v", rl.Method)
	}
}

func TestRequestLinePipelinedRequestsReuseParser(t *testing.T) {
	b := ringbuf.Acquire()
	defer ringbuf.Release(b)
	feed(t, b, "GET /first HTTP/1.1\r\nGET /second HTTP/1.1\r\n")

	var p RequestLineParser
	rl1, err := p.Parse(b)
	if err != nil {
		t.Fatalf("unexpected error on first request: %v", err)
	}
	if string(b.Slice(rl1.URIStart, rl1.URIEnd)) != "/first" {
		t.Fatalf("expected /first, got %q", b.Slice(rl1.URIStart, rl1.URIEnd))
	}

	rl2, err := p.Parse(b)
	if err != nil {
		t.Fatalf("unexpected error on second request: %v", err)
	}
	if string(b.Slice(rl2.URIStart, rl2.URIEnd)) != "/second" {
		t.Fatalf("expected /second, got %q", b.Slice(rl2.URIStart, rl2.URIEnd))
	}
}
