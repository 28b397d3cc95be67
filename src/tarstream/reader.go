// Package tarstream reads and writes tar archives as forward-only byte
// streams. Entries are visited strictly forward, once; the whole archive
// is never buffered.
package tarstream

import (
	"errors"
	"io"

	"github.com/aurora-is-near/tarstream/src/tarheader"
)

var (
	// ErrFinished is returned by Advance on an exhausted reader.
	ErrFinished = errors.New("archive already finished")
	// ErrHeader is returned when a header block cannot be read in full.
	ErrHeader = errors.New("truncated header block")
)

// Reader consumes a tar archive from an underlying byte stream. It owns
// the stream for its whole lifetime. If the stream implements
// Discard(int) (int, error), entry data is skipped without copying.
//
// The reader holds exactly one entry at a time. Advance invalidates every
// FileStream handed out for the previous entry.
type Reader struct {
	src      *stream
	hdr      *tarheader.Header
	offset   int64 // content bytes consumed for the current entry
	gen      uint64
	finished bool
}

// NewReader opens an archive, eagerly reading the first header record.
// A stream that ends before a full header is a structural error; a
// leading end-of-archive marker is an empty archive, finished and not an
// error. In both cases the returned reader is usable for state queries.
func NewReader(r io.Reader) (*Reader, error) {
	tr := &Reader{src: newStream(r)}
	var block tarheader.Block
	if err := tr.src.readFull(block[:]); err != nil {
		tr.finished = true
		return tr, ErrHeader
	}
	if !tarheader.Valid(&block) {
		tr.finished = true
		return tr, nil
	}
	hdr, err := tarheader.Decode(&block)
	if err != nil {
		tr.finished = true
		return tr, err
	}
	tr.hdr = hdr
	return tr, nil
}

// Header returns the most recently decoded header. Callers must check
// Finished before trusting it; after the reader finishes it keeps
// returning the last entry's header, or nil if none was ever read.
func (tr *Reader) Header() *tarheader.Header {
	return tr.hdr
}

// Finished reports whether the reader is terminal. A finished reader
// never resumes.
func (tr *Reader) Finished() bool {
	return tr.finished
}

// Advance moves to the next entry: any unread content of the current
// entry and its block padding are skipped, and the next header record is
// read and validated. A header that fails validation is the normal end of
// the archive (well-formed archives end with two all-zero blocks); the
// reader finishes and Advance returns nil. A short header read is a
// structural error. Either way every outstanding FileStream is
// invalidated.
func (tr *Reader) Advance() error {
	if tr.finished {
		return ErrFinished
	}
	tr.gen++
	if err := tr.src.discard(tarheader.Padded(tr.hdr.Size) - tr.offset); err != nil {
		tr.finished = true
		return err
	}
	tr.offset = 0
	var block tarheader.Block
	if err := tr.src.readFull(block[:]); err != nil {
		tr.finished = true
		return ErrHeader
	}
	if !tarheader.Valid(&block) {
		tr.finished = true
		return nil
	}
	hdr, err := tarheader.Decode(&block)
	if err != nil {
		tr.finished = true
		return err
	}
	tr.hdr = hdr
	return nil
}

// FileContents returns a bounded view of the current entry's content,
// stamped with the current generation. Calling it on a finished reader is
// a programming error.
func (tr *Reader) FileContents() *FileStream {
	if tr.finished {
		panic("tarstream: FileContents on a finished reader")
	}
	return &FileStream{tr: tr, gen: tr.gen}
}
