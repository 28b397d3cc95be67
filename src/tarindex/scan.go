package tarindex

import (
	"io"

	"github.com/aurora-is-near/tarstream/src/tarheader"
	"github.com/aurora-is-near/tarstream/src/tarstream"
)

// Scan walks the tar archive read from r and calls entryFunc for every
// directory, link and file entry with its byte range filled in. Entry
// content is never materialized; the reader skips it. Entries of types
// the index does not track still advance the byte offset.
func Scan(r io.Reader, entryFunc func(*ListEntry) error) error {
	tr, err := tarstream.NewReader(r)
	if err != nil {
		return err
	}
	var offset int64
	for !tr.Finished() {
		hdr := tr.Header()
		next := offset + tarheader.BlockSize + tarheader.Padded(hdr.Size)
		if t, ok := entryTypeOf(hdr.Typeflag); ok {
			entry := &ListEntry{
				Name:      hdr.FullPath(),
				Type:      t,
				FirstByte: offset,
				LastByte:  next,
			}
			if t == EntryTypeFile {
				entry.Size = hdr.Size
			}
			if err := entryFunc(entry); err != nil {
				return err
			}
		}
		offset = next
		if err := tr.Advance(); err != nil {
			return err
		}
	}
	return nil
}
