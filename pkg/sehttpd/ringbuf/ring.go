// Package ringbuf implements the fixed-capacity byte ring shared by the
// reactor's socket reads and the request parser's consumption.
//
// The buffer never copies on wrap: producer (socket reads, via Writable and
// CommitWrite) and consumer (the parsers, via At and Slice) index modulo
// MaxBuf directly into one backing array.
// One slot is always sacrificed so that Pos==Last (empty) and Last-Pos ==
// MaxBuf-1 (full) stay distinguishable — see Writable.
package ringbuf

import "github.com/valyala/bytebufferpool"

// MaxBuf is the ring capacity. A request line plus its headers must fit
// entirely within one buffer's worth of live bytes; anything larger is a
// fatal protocol violation (see Buffer.Writable, and httpparse's
// ErrBufferOverflow, which the connection driver raises as fatal when no
// writable span is left).
const MaxBuf = 8124

var pool bytebufferpool.Pool

// Buffer is one connection's ring. pos and last are monotonically
// increasing byte counters (never wrapped themselves); only indexing into
// the backing array wraps. Invariant: 0 <= last-pos < MaxBuf at all times.
type Buffer struct {
	backing *bytebufferpool.ByteBuffer
	data    []byte // len == MaxBuf, leased from backing.B
	pos     int
	last    int
}

// Acquire leases a MaxBuf-capacity backing array from the shared pool and
// returns a ready-to-use, empty Buffer.
func Acquire() *Buffer {
	bb := pool.Get()
	if cap(bb.B) < MaxBuf {
		bb.B = make([]byte, MaxBuf)
	}
	bb.B = bb.B[:MaxBuf]
	return &Buffer{backing: bb, data: bb.B}
}

// Release returns the backing array to the shared pool. The Buffer must
// not be used afterward.
func Release(b *Buffer) {
	pool.Put(b.backing)
	b.backing = nil
	b.data = nil
}

// Reset rewinds pos/last to 0 without touching the backing array, for
// reuse across pipelined requests on the same connection.
func (b *Buffer) Reset() {
	b.pos = 0
	b.last = 0
}

// Len returns the number of live, unconsumed bytes.
func (b *Buffer) Len() int {
	return b.last - b.pos
}

// Writable returns the maximum contiguous span that a single read(2) call
// may fill: the smaller of (a) remaining capacity, keeping one slot free
// to disambiguate full from empty, and (b) the span up to the end of the
// backing array before wrapping. A return of 0 means the buffer is full;
// the caller should treat this as overflow, since a request line and its
// headers together must fit in MaxBuf.
func (b *Buffer) Writable() []byte {
	remaining := MaxBuf - (b.last - b.pos) - 1
	if remaining <= 0 {
		return nil
	}
	toEnd := MaxBuf - (b.last % MaxBuf)
	span := remaining
	if toEnd < span {
		span = toEnd
	}
	start := b.last % MaxBuf
	return b.data[start : start+span]
}

// CommitWrite advances last after the caller has filled n bytes of the
// slice returned by Writable (e.g. after a successful non-blocking read).
func (b *Buffer) CommitWrite(n int) {
	b.last += n
}

// At returns the live byte at logical offset off (off is relative to Pos,
// i.e. 0 is the oldest unconsumed byte), wrapped modulo MaxBuf. Parsers use
// this instead of holding raw pointers so buffer wraparound never
// invalidates an in-flight FSM's saved position.
func (b *Buffer) At(off int) byte {
	return b.data[(b.pos+off)%MaxBuf]
}

// Pos and Last expose the raw monotonic counters so parsers can save/restore
// their cursor across EAGAIN without the ring itself tracking parse state.
func (b *Buffer) Pos() int  { return b.pos }
func (b *Buffer) Last() int { return b.last }

// Advance moves pos forward by n logical bytes (n <= Len()), marking them
// consumed. Used once a full request line or header block has been parsed.
func (b *Buffer) Advance(n int) {
	b.pos += n
}

// Slice returns a copy of the live bytes in [from, to) (logical offsets
// relative to Pos==0 at construction time, i.e. absolute monotonic
// counters) as a freshly allocated []byte. Used to materialize a header's
// key/value out of the ring before the ring is reused by the next read,
// since neither may outlive the ring they were sliced from.
func (b *Buffer) Slice(fromAbs, toAbs int) []byte {
	n := toAbs - fromAbs
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = b.data[(fromAbs+i)%MaxBuf]
	}
	return out
}
