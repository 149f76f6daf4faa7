package httpparse

import "github.com/hfyeh/sehttpd/pkg/sehttpd/ringbuf"

// requestLineState names follow the grammar states directly so the code
// reads like the FSM table it implements:
//
//	METHOD SP* URI SP+ "HTTP/" MAJOR "." MINOR (SP* (CR LF | LF))
type requestLineState uint8

const (
	rlStart requestLineState = iota
	rlMethod
	rlSpacesBeforeURI
	rlAfterSlashInURI
	rlHTTP
	rlHTTP_H
	rlHTTP_HT
	rlHTTP_HTT
	rlHTTP_HTTP
	rlFirstMajorDigit
	rlMajorDigit
	rlDot
	rlFirstMinorDigit
	rlMinorDigit
	rlSpacesAfterDigit
	rlAlmostDone
)

// RequestLine holds everything the request-line parser recovers, as
// absolute (monotonic, not ring-wrapped) byte offsets into the connection's
// ring buffer — resolved into owned []byte only by the caller, since the
// request line is consumed (and the ring advanced past it) before the
// header parser or dispatch ever runs.
type RequestLine struct {
	Method             Method
	MethodStart, MethodEnd int
	URIStart, URIEnd   int
	HTTPMajor, HTTPMinor int
}

// RequestLineParser is a resumable FSM over a request line. Zero value is
// ready to use.
type RequestLineParser struct {
	state       requestLineState
	cursor      int // absolute offset of the next unexamined byte
	cursorValid bool

	methodStart int
	methodEnd   int
	uriStart    int
	uriEnd      int
	major       int
	minor       int
}

// Parse consumes bytes from buf starting at buf.Pos() (or, if a previous
// call returned ErrAgain, from the saved cursor) up to buf.Last(). On
// success it advances buf past the terminating line feed and returns the
// parsed RequestLine. On ErrAgain, no bytes are consumed and internal state
// is saved so the next Parse call (after more bytes arrive) continues
// exactly where this one stopped — this holds for any chunking of the
// input, which is the resumability invariant this FSM exists to satisfy.
func (p *RequestLineParser) Parse(buf *ringbuf.Buffer) (RequestLine, error) {
	pos := buf.Pos()
	if !p.cursorValid || p.cursor < pos {
		p.cursor = pos
		p.cursorValid = true
	}
	last := buf.Last()

	for p.cursor < last {
		b := buf.At(p.cursor - pos)
		switch p.state {
		case rlStart:
			switch b {
			case '\r', '\n':
				// tolerate blank lines before a request
			default:
				if !isUpperOrUnderscore(b) {
					return RequestLine{}, ErrInvalidMethod
				}
				p.methodStart = p.cursor
				p.state = rlMethod
			}

		case rlMethod:
			switch {
			case b == ' ':
				p.methodEnd = p.cursor
				p.state = rlSpacesBeforeURI
			case isUpperOrUnderscore(b):
				// still inside the method token
			default:
				return RequestLine{}, ErrInvalidMethod
			}

		case rlSpacesBeforeURI:
			switch {
			case b == ' ':
				// tolerate repeated spaces
			case b == '/':
				p.uriStart = p.cursor
				p.state = rlAfterSlashInURI
			default:
				return RequestLine{}, ErrInvalidRequest
			}

		case rlAfterSlashInURI:
			if b == ' ' {
				p.uriEnd = p.cursor
				p.state = rlHTTP
			}
			// any non-space byte just extends the URI; cursor advances below

		case rlHTTP:
			switch b {
			case ' ':
				// extra spaces between URI and version
			case 'H':
				p.state = rlHTTP_H
			default:
				return RequestLine{}, ErrInvalidRequest
			}

		case rlHTTP_H:
			if b != 'T' {
				return RequestLine{}, ErrInvalidRequest
			}
			p.state = rlHTTP_HT

		case rlHTTP_HT:
			if b != 'T' {
				return RequestLine{}, ErrInvalidRequest
			}
			p.state = rlHTTP_HTT

		case rlHTTP_HTT:
			if b != 'P' {
				return RequestLine{}, ErrInvalidRequest
			}
			p.state = rlHTTP_HTTP

		case rlHTTP_HTTP:
			if b != '/' {
				return RequestLine{}, ErrInvalidRequest
			}
			p.major = 0
			p.state = rlFirstMajorDigit

		case rlFirstMajorDigit:
			if b < '1' || b > '9' {
				return RequestLine{}, ErrInvalidRequest
			}
			p.major = int(b - '0')
			p.state = rlMajorDigit

		case rlMajorDigit:
			switch {
			case b >= '0' && b <= '9':
				p.major = p.major*10 + int(b-'0')
			case b == '.':
				p.state = rlFirstMinorDigit
			default:
				return RequestLine{}, ErrInvalidRequest
			}

		case rlFirstMinorDigit:
			if b < '0' || b > '9' {
				return RequestLine{}, ErrInvalidRequest
			}
			p.minor = int(b - '0')
			p.state = rlMinorDigit

		case rlMinorDigit:
			switch {
			case b >= '0' && b <= '9':
				p.minor = p.minor*10 + int(b-'0')
			case b == ' ':
				p.state = rlSpacesAfterDigit
			case b == '\r':
				p.state = rlAlmostDone
			case b == '\n':
				return p.finish(buf, pos)
			default:
				return RequestLine{}, ErrInvalidRequest
			}

		case rlSpacesAfterDigit:
			switch b {
			case ' ':
				// keep tolerating
			case '\r':
				p.state = rlAlmostDone
			case '\n':
				return p.finish(buf, pos)
			default:
				return RequestLine{}, ErrInvalidRequest
			}

		case rlAlmostDone:
			if b != '\n' {
				return RequestLine{}, ErrInvalidRequest
			}
			return p.finish(buf, pos)
		}

		p.cursor++
	}

	return RequestLine{}, ErrAgain
}

// finish materializes the parsed fields, advances buf past the consumed
// request line (cursor currently sits on the terminating '\n'), and resets
// the FSM to rlStart for the next pipelined request.
func (p *RequestLineParser) finish(buf *ringbuf.Buffer, pos int) (RequestLine, error) {
	rl := RequestLine{
		Method:      classifyMethod(buf, p.methodStart, p.methodEnd),
		MethodStart: p.methodStart,
		MethodEnd:   p.methodEnd,
		URIStart:    p.uriStart,
		URIEnd:      p.uriEnd,
		HTTPMajor:   p.major,
		HTTPMinor:   p.minor,
	}
	consumed := p.cursor + 1 - pos // +1 to also consume the '\n' itself
	buf.Advance(consumed)
	p.reset()
	return rl, nil
}

func (p *RequestLineParser) reset() {
	p.state = rlStart
	p.cursorValid = false
}

func classifyMethod(buf *ringbuf.Buffer, start, end int) Method {
	n := end - start
	switch n {
	case 3:
		if matches(buf, start, "GET") {
			return MethodGET
		}
	case 4:
		if matches(buf, start, "POST") {
			return MethodPOST
		}
		if matches(buf, start, "HEAD") {
			return MethodHEAD
		}
	}
	return MethodUnknown
}

func matches(buf *ringbuf.Buffer, start int, want string) bool {
	pos := buf.Pos()
	for i := 0; i < len(want); i++ {
		if buf.At(start+i-pos) != want[i] {
			return false
		}
	}
	return true
}

func isUpperOrUnderscore(b byte) bool {
	return (b >= 'A' && b <= 'Z') || b == '_'
}
