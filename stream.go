package formstream

import (
	"fmt"
	"io"
)

// Stream is a finalized form rendered as an encoded multipart/form-data
// body. It implements io.ReadCloser: bytes are produced on demand, one
// part at a time, and each file source is opened only when the stream
// reaches its part. A Stream is single use and not safe for concurrent
// use; once a read fails, the failure is sticky and every later Read
// returns the same error.
type Stream struct {
	boundary string
	parts    []Part
	total    int64

	idx     int
	seg     []byte
	body    io.ReadCloser
	cur     Part
	closing bool
	err     error
}

func newStream(boundary string, parts []Part, total int64) *Stream {
	return &Stream{
		boundary: boundary,
		parts:    parts,
		total:    total,
	}
}

// Boundary returns the delimiter string used by the encoded body.
func (s *Stream) Boundary() string {
	return s.boundary
}

// ContentType returns the value for the Content-Type request header.
func (s *Stream) ContentType() string {
	return "multipart/form-data; boundary=" + s.boundary
}

// ContentLength returns the exact number of bytes the stream produces.
// Reading the stream to completion yields exactly this many bytes.
func (s *Stream) ContentLength() int64 {
	return s.total
}

// Read fills p with the next encoded bytes, crossing delimiter, header
// and payload boundaries as needed. It returns io.EOF after the closing
// delimiter has been produced in full.
func (s *Stream) Read(p []byte) (n int, err error) {
	if s.err != nil {
		return 0, s.err
	}
	for n < len(p) {
		if len(s.seg) > 0 {
			nn := copy(p[n:], s.seg)
			s.seg = s.seg[nn:]
			n += nn
			continue
		}
		if s.body != nil {
			nn, rerr := s.body.Read(p[n:])
			n += nn
			if rerr == io.EOF {
				rerr = s.body.Close()
				s.body = nil
				if rerr == nil {
					s.seg = []byte(crlf)
					continue
				}
			}
			if rerr != nil {
				s.err = fmt.Errorf("%w: part %q: %w", ErrSourceRead, s.cur.Name(), rerr)
				return n, s.err
			}
			continue
		}
		if s.idx < len(s.parts) {
			part := s.parts[s.idx]
			s.idx++
			body, oerr := part.open()
			if oerr != nil {
				s.err = fmt.Errorf("%w: part %q: %w", ErrSourceRead, part.Name(), oerr)
				return n, s.err
			}
			s.cur = part
			s.body = body
			s.seg = []byte("--" + s.boundary + crlf + part.header())
			continue
		}
		if !s.closing {
			s.closing = true
			s.seg = []byte("--" + s.boundary + "--" + crlf)
			continue
		}
		s.err = io.EOF
		break
	}
	if n > 0 {
		return n, nil
	}
	return 0, s.err
}

// Close releases the currently open part source, if any. Reads after
// Close fail with ErrClosed unless the stream had already finished or
// failed, in which case the earlier result stands.
func (s *Stream) Close() error {
	var cerr error
	if s.body != nil {
		cerr = s.body.Close()
		s.body = nil
	}
	if s.err == nil {
		s.err = ErrClosed
	}
	return cerr
}
