package httpparse

import "github.com/hfyeh/sehttpd/pkg/sehttpd/ringbuf"

// headerState names mirror the grammar states directly, same convention as
// requestLineState:
//
//	(KEY SP* ":" SP* VALUE (CR LF | LF))* (CR LF | LF)
type headerState uint8

const (
	hStart headerState = iota
	hKey
	hSpacesBeforeColon
	hSpacesAfterColon
	hValue
	hCR
	hCRLF
	hCRLFCR
)

// HeaderParser is a resumable FSM over a header block. It pushes every
// completed header into a *HeaderQueue as soon as that header's line ends,
// rather than collecting them itself, so the queue's fixed-array slab is the
// only place header storage lives.
//
// Zero value is ready to use.
type HeaderParser struct {
	state       headerState
	cursor      int
	cursorValid bool

	keyStart, keyEnd     int
	valueStart, valueEnd int
}

// Parse feeds buf's unread bytes through the FSM, pushing each completed
// header into q. It returns (true, nil) once the blank line terminating the
// header block is seen (buf is advanced past it), or (false, ErrAgain) if
// buf was exhausted first — in which case internal state is saved so the
// next call resumes mid-header, mid-key, or wherever it stopped, regardless
// of where the chunk boundary fell.
func (p *HeaderParser) Parse(buf *ringbuf.Buffer, q *HeaderQueue) (bool, error) {
	pos := buf.Pos()
	if !p.cursorValid || p.cursor < pos {
		p.cursor = pos
		p.cursorValid = true
	}
	last := buf.Last()

	for p.cursor < last {
		b := buf.At(p.cursor - pos)
		switch p.state {
		case hStart:
			switch b {
			case '\r':
				p.state = hCRLFCR // blank line via CRLF
			case '\n':
				return p.finishBlock(buf, pos)
			default:
				p.keyStart = p.cursor
				p.state = hKey
			}

		case hKey:
			switch b {
			case ':':
				p.keyEnd = p.cursor
				p.state = hSpacesAfterColon
			case ' ':
				p.keyEnd = p.cursor
				p.state = hSpacesBeforeColon
			case '\r', '\n':
				return false, ErrInvalidHeader
			default:
				// any other byte just extends the key token
			}

		case hSpacesBeforeColon:
			switch b {
			case ' ':
				// keep tolerating
			case ':':
				p.state = hSpacesAfterColon
			default:
				return false, ErrInvalidHeader
			}

		case hSpacesAfterColon:
			switch b {
			case ' ':
				// keep tolerating
			case '\r':
				// empty value
				p.valueStart, p.valueEnd = p.cursor, p.cursor
				if err := p.pushHeader(buf, q); err != nil {
					return false, err
				}
				p.state = hCR
			case '\n':
				p.valueStart, p.valueEnd = p.cursor, p.cursor
				if err := p.pushHeader(buf, q); err != nil {
					return false, err
				}
				p.state = hStart
			default:
				p.valueStart = p.cursor
				p.state = hValue
			}

		case hValue:
			switch b {
			case '\r':
				p.valueEnd = p.cursor
				if err := p.pushHeader(buf, q); err != nil {
					return false, err
				}
				p.state = hCR
			case '\n':
				// bare LF terminates the value line just like CRLF does.
				p.valueEnd = p.cursor
				if err := p.pushHeader(buf, q); err != nil {
					return false, err
				}
				p.state = hStart
			default:
				// still inside the value
			}

		case hCR:
			if b != '\n' {
				return false, ErrInvalidHeader
			}
			p.state = hCRLF

		case hCRLF:
			switch b {
			case '\r':
				p.state = hCRLFCR
			case '\n':
				return p.finishBlock(buf, pos)
			default:
				p.keyStart = p.cursor
				p.state = hKey
			}

		case hCRLFCR:
			if b != '\n' {
				return false, ErrInvalidHeader
			}
			return p.finishBlock(buf, pos)
		}

		p.cursor++
	}

	return false, ErrAgain
}

// pushHeader slices the just-completed key/value span out of the ring (so
// the header survives the ring being rewound for the next request) and
// appends it to q.
func (p *HeaderParser) pushHeader(buf *ringbuf.Buffer, q *HeaderQueue) error {
	if p.keyEnd-p.keyStart > MaxHeaderNameLen || p.valueEnd-p.valueStart > MaxHeaderValueLen {
		return ErrInvalidHeader
	}
	key := buf.Slice(p.keyStart, p.keyEnd)
	value := buf.Slice(p.valueStart, p.valueEnd)
	return q.Push(key, value)
}

// finishBlock advances buf past the terminating blank line (cursor sits on
// the final '\n') and resets the FSM for the next pipelined request.
func (p *HeaderParser) finishBlock(buf *ringbuf.Buffer, pos int) (bool, error) {
	consumed := p.cursor + 1 - pos
	buf.Advance(consumed)
	p.reset()
	return true, nil
}

func (p *HeaderParser) reset() {
	p.state = hStart
	p.cursorValid = false
}
