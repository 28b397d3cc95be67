package tarstream

import "io"

// discarder is implemented by readers that can drop bytes without
// materializing them, *bufio.Reader among them.
type discarder interface {
	Discard(n int) (int, error)
}

const maxDiscard = 1 << 30

// stream wraps the underlying byte source with the semantics the reader
// relies on: a sticky error flag, bulk discard, and an unreliable
// end-of-stream probe.
type stream struct {
	r   io.Reader
	err error // sticky; once set, every operation fails with it
	eof bool
}

func newStream(r io.Reader) *stream {
	return &stream{r: r}
}

// fail marks the stream as permanently broken.
func (s *stream) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

func (s *stream) sticky() error {
	return s.err
}

// unreliableEOF reports whether the end of the underlying stream has been
// observed. A false result means nothing; transports cannot generally see
// EOF before a read touches it.
func (s *stream) unreliableEOF() bool {
	return s.eof
}

func (s *stream) read(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n, err := s.r.Read(p)
	switch {
	case err == io.EOF:
		s.eof = true
	case err != nil:
		s.err = err
	}
	return n, err
}

// readFull fills p completely. A short read is fatal to the stream.
func (s *stream) readFull(p []byte) error {
	if s.err != nil {
		return s.err
	}
	_, err := io.ReadFull(s.r, p)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			s.eof = true
		}
		s.err = err
	}
	return err
}

// discard drops n bytes, using the reader's own discard primitive when it
// has one. Failure to drop all n bytes is fatal to the stream.
func (s *stream) discard(n int64) error {
	if s.err != nil {
		return s.err
	}
	if n <= 0 {
		return nil
	}
	if d, ok := s.r.(discarder); ok {
		for n > 0 {
			step := n
			if step > maxDiscard {
				step = maxDiscard
			}
			m, err := d.Discard(int(step))
			n -= int64(m)
			if err != nil {
				if err == io.EOF {
					s.eof = true
				}
				s.err = err
				return err
			}
		}
		return nil
	}
	if _, err := io.CopyN(io.Discard, s.r, n); err != nil {
		if err == io.EOF {
			s.eof = true
		}
		s.err = err
		return err
	}
	return nil
}
