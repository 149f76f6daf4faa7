package dispatch

import (
	"testing"
	"time"

	"github.com/hfyeh/sehttpd/pkg/sehttpd/httpparse"
)

func TestConnectionKeepAliveCaseInsensitiveValue(t *testing.T) {
	var q httpparse.HeaderQueue
	q.Init()
	q.Push([]byte("Connection"), []byte("Keep-Alive"))

	out := NewResponseState()
	Dispatch(&q, time.Now(), &out)

	if !out.KeepAlive {
		t.Fatalf("expected KeepAlive=true")
	}
	if !q.Empty() {
		t.Fatalf("header queue must be empty after dispatch")
	}
}

func TestConnectionHeaderNameCaseInsensitive(t *testing.T) {
	var q httpparse.HeaderQueue
	q.Init()
	q.Push([]byte("connection"), []byte("keep-alive"))

	out := NewResponseState()
	Dispatch(&q, time.Now(), &out)

	if !out.KeepAlive {
		t.Fatalf("expected KeepAlive=true for lowercase header name")
	}
}

func TestHostIsIgnored(t *testing.T) {
	var q httpparse.HeaderQueue
	q.Init()
	q.Push([]byte("Host"), []byte("example.com"))

	out := NewResponseState()
	Dispatch(&q, time.Now(), &out)

	if out.Status != 200 || !out.Modified {
		t.Fatalf("Host header must not affect response state, got %+v", out)
	}
}

func TestIfModifiedSinceMatchingMtimeSets304(t *testing.T) {
	mtime := time.Date(2024, time.March, 4, 12, 0, 0, 0, time.UTC)

	var q httpparse.HeaderQueue
	q.Init()
	q.Push([]byte("If-Modified-Since"), []byte(mtime.Format(time.RFC1123)))

	out := NewResponseState()
	Dispatch(&q, mtime, &out)

	if out.Status != 304 || out.Modified {
		t.Fatalf("expected 304/not-modified, got %+v", out)
	}
}

func TestIfModifiedSinceOneSecondEarlierStays200(t *testing.T) {
	mtime := time.Date(2024, time.March, 4, 12, 0, 0, 0, time.UTC)
	earlier := mtime.Add(-time.Second)

	var q httpparse.HeaderQueue
	q.Init()
	q.Push([]byte("If-Modified-Since"), []byte(earlier.Format(time.RFC1123)))

	out := NewResponseState()
	Dispatch(&q, mtime, &out)

	if out.Status != 200 || !out.Modified {
		t.Fatalf("expected 200/modified for earlier date, got %+v", out)
	}
}

func TestMalformedIfModifiedSinceIsIgnored(t *testing.T) {
	var q httpparse.HeaderQueue
	q.Init()
	q.Push([]byte("If-Modified-Since"), []byte("not-a-date"))

	out := NewResponseState()
	Dispatch(&q, time.Now(), &out)

	if out.Status != 200 || !out.Modified {
		t.Fatalf("malformed date must be ignored, got %+v", out)
	}
}

func TestUnknownHeaderIgnoredAndDrained(t *testing.T) {
	var q httpparse.HeaderQueue
	q.Init()
	q.Push([]byte("X-Custom"), []byte("whatever"))

	out := NewResponseState()
	Dispatch(&q, time.Now(), &out)

	if !q.Empty() {
		t.Fatalf("unknown header must still be drained")
	}
}
