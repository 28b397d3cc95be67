package tarstream

import (
	"errors"
	"io"
)

// ErrSkipBoundary is returned when a skip would cross the end of the
// current entry's content.
var ErrSkipBoundary = errors.New("skip beyond entry boundary")

// FileStream reads the content of the archive entry that was current when
// it was created, clamped to the size the header declares. It shares the
// reader's position: multiple streams for the same entry all drain the
// same bytes.
//
// A FileStream dies the instant its reader advances. Using it afterwards
// would return bytes belonging to the wrong entry, so every method checks
// the generation stamp and panics on a stale stream.
type FileStream struct {
	tr  *Reader
	gen uint64
}

func (fs *FileStream) check() {
	if fs.gen != fs.tr.gen {
		panic("tarstream: FileStream used after Advance")
	}
}

func (fs *FileStream) remaining() int64 {
	return fs.tr.hdr.Size - fs.tr.offset
}

// Read implements io.Reader over the entry content. It returns io.EOF
// once the declared size is consumed, regardless of how many bytes the
// underlying stream still has; those belong to the next header.
func (fs *FileStream) Read(p []byte) (int, error) {
	fs.check()
	if err := fs.tr.src.sticky(); err != nil {
		return 0, err
	}
	rem := fs.remaining()
	if rem <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > rem {
		p = p[:rem]
	}
	n, err := fs.tr.src.read(p)
	fs.tr.offset += int64(n)
	if err == io.EOF && fs.remaining() > 0 {
		// the archive ended inside the entry's declared content
		err = io.ErrUnexpectedEOF
		fs.tr.src.fail(err)
	}
	return n, err
}

// ReadFull fills p entirely. A short read marks the whole stream as
// broken; there is no recovering a tar stream that lied about its sizes.
func (fs *FileStream) ReadFull(p []byte) error {
	fs.check()
	if _, err := io.ReadFull(fs, p); err != nil {
		fs.tr.src.fail(err)
		return err
	}
	return nil
}

// Skip advances past n content bytes without copying them. Skipping past
// the end of the entry fails with ErrSkipBoundary.
func (fs *FileStream) Skip(n int64) error {
	fs.check()
	if n < 0 || n > fs.remaining() {
		return ErrSkipBoundary
	}
	if err := fs.tr.src.discard(n); err != nil {
		return err
	}
	fs.tr.offset += n
	return nil
}

// AtEOF reports whether the entry is exhausted. The underlying-stream
// part of the answer is unreliable (a transport cannot generally see EOF
// before reading it); the declared-size bookkeeping is authoritative.
func (fs *FileStream) AtEOF() bool {
	fs.check()
	return fs.tr.src.unreliableEOF() || fs.remaining() <= 0
}
