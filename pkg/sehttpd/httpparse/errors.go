package httpparse

import "errors"

// Sentinel parse errors, one package-level var per failure class.
var (
	// ErrAgain means the buffer was exhausted mid-parse; the caller should
	// read more bytes and call Parse again. Not a real error: both FSMs
	// save their state before returning it so the next call resumes
	// exactly where this one left off.
	ErrAgain = errors.New("httpparse: incomplete, need more data")

	// ErrInvalidMethod: the request line's method token contained a byte
	// outside A-Z/'_'.
	ErrInvalidMethod = errors.New("httpparse: invalid method")

	// ErrInvalidRequest: the request line was malformed anywhere after the
	// method (bad URI opening, missing HTTP version, bad terminator).
	ErrInvalidRequest = errors.New("httpparse: invalid request line")

	// ErrInvalidHeader: the header block violated the key/colon/value/CRLF
	// grammar, or a key or value exceeded MaxHeaderNameLen/MaxHeaderValueLen.
	ErrInvalidHeader = errors.New("httpparse: invalid header")

	// ErrBufferOverflow: the ring buffer filled up before a request line or
	// header block could complete. This is fatal and unrecoverable — a
	// compliant client's request line and headers always fit within
	// ringbuf.MaxBuf.
	ErrBufferOverflow = errors.New("httpparse: request line or headers exceed buffer capacity")

	// ErrTooManyHeaders: more headers arrived than MaxHeaders can hold.
	ErrTooManyHeaders = errors.New("httpparse: too many headers")
)
