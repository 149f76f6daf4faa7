package httpparse

import (
	"unsafe"

	"github.com/hfyeh/sehttpd/pkg/sehttpd/dlist"
)

// HeaderRecord is one parsed (key, value) pair. Key and Value are owned
// copies sliced out of the connection's ring buffer at parse time: the
// ring is rewound and overwritten for the very next pipelined request, so
// a finished header record copies its bytes out rather than keeping
// offsets into a buffer that won't stay put.
type HeaderRecord struct {
	dlist.Node
	Key   []byte
	Value []byte
}

func recordOf(n *dlist.Node) *HeaderRecord {
	return (*HeaderRecord)(unsafe.Pointer(n))
}

// HeaderQueue is the ordered, owned container the header parser appends to
// and header dispatch drains. It's backed by a fixed array (not a growable
// slice) so the intrusive list's node pointers never dangle across a
// reallocation.
type HeaderQueue struct {
	list dlist.List
	slab [MaxHeaders]HeaderRecord
	n    int
}

// Init prepares an empty queue for first use.
func (q *HeaderQueue) Init() {
	q.list.Init()
	q.n = 0
}

// Push appends a parsed header. Returns ErrTooManyHeaders once MaxHeaders
// is reached.
func (q *HeaderQueue) Push(key, value []byte) error {
	if q.n >= MaxHeaders {
		return ErrTooManyHeaders
	}
	rec := &q.slab[q.n]
	q.n++
	rec.Key = key
	rec.Value = value
	rec.Node.Init()
	q.list.PushBack(&rec.Node)
	return nil
}

// Empty reports whether every pushed header has been drained.
func (q *HeaderQueue) Empty() bool {
	return q.list.Empty()
}

// Drain calls f for every queued header in insertion order, removing each
// one from the list as it's visited so the queue is guaranteed empty once
// dispatch finishes, whether or not f "does" anything with a given header.
func (q *HeaderQueue) Drain(f func(key, value []byte)) {
	q.list.Do(func(n *dlist.Node) {
		rec := recordOf(n)
		f(rec.Key, rec.Value)
		q.list.Remove(n)
	})
}

// Reset clears the queue for the next pipelined request on the same
// connection.
func (q *HeaderQueue) Reset() {
	q.list.Init()
	q.n = 0
}
