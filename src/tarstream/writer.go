package tarstream

import (
	"io"
	"strings"

	"github.com/aurora-is-near/tarstream/src/tarheader"
)

var zeroBlock [tarheader.BlockSize]byte

// Writer emits tar entries to an underlying byte stream. It always writes
// GNU magic and version; the read side accepts all dialects, the write
// side picks one concrete dialect for maximum compatibility.
//
// Every Add operation and Finish is permitted only while the writer is
// open; touching a finished writer is a programming error and panics.
type Writer struct {
	w io.Writer
	// FixPath, when set, rewrites entry paths before they are encoded.
	FixPath func(string) string

	finished bool
}

// NewWriter returns a Writer emitting to w. The caller finishes the
// archive with Finish; without it the output lacks the end-of-archive
// marker.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (tw *Writer) fixPath(path string) string {
	if tw.FixPath == nil {
		return path
	}
	return tw.FixPath(path)
}

func (tw *Writer) mustBeOpen() {
	if tw.finished {
		panic("tarstream: use of finished Writer")
	}
}

func (tw *Writer) writeFull(p []byte) error {
	n, err := tw.w.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	return err
}

func (tw *Writer) writeHeader(hdr *tarheader.Header) error {
	hdr.Magic = tarheader.MagicGNU
	hdr.Version = tarheader.VersionGNU
	block, err := tarheader.Encode(hdr)
	if err != nil {
		return err
	}
	return tw.writeFull(block[:])
}

// AddDirectory writes a directory entry. Old tar readers infer
// directory-ness from a trailing slash, so one is appended when missing.
func (tw *Writer) AddDirectory(name string, mode int64) error {
	tw.mustBeOpen()
	name = tw.fixPath(name)
	if !strings.HasSuffix(name, "/") {
		name += "/"
	}
	return tw.writeHeader(&tarheader.Header{
		Name:     name,
		Mode:     mode,
		Typeflag: tarheader.TypeDirectory,
	})
}

// AddFile writes a regular file entry with the given content, padded up
// to the block boundary. Content that already ends on a boundary gets no
// padding bytes at all.
func (tw *Writer) AddFile(name string, mode int64, data []byte) error {
	tw.mustBeOpen()
	err := tw.writeHeader(&tarheader.Header{
		Name:     tw.fixPath(name),
		Mode:     mode,
		Size:     int64(len(data)),
		Typeflag: tarheader.TypeRegular,
	})
	if err != nil {
		return err
	}
	if err := tw.writeFull(data); err != nil {
		return err
	}
	if pad := tarheader.Padding(int64(len(data))); pad > 0 {
		return tw.writeFull(zeroBlock[:pad])
	}
	return nil
}

// AddLink writes a symbolic link entry pointing at target.
func (tw *Writer) AddLink(name string, mode int64, target string) error {
	tw.mustBeOpen()
	return tw.writeHeader(&tarheader.Header{
		Name:     tw.fixPath(name),
		Mode:     mode,
		Typeflag: tarheader.TypeSymlink,
		LinkName: target,
	})
}

// Finish terminates the archive with two all-zero blocks. It may be
// called exactly once; the writer is unusable afterwards.
func (tw *Writer) Finish() error {
	tw.mustBeOpen()
	tw.finished = true
	if err := tw.writeFull(zeroBlock[:]); err != nil {
		return err
	}
	return tw.writeFull(zeroBlock[:])
}
