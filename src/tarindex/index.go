package tarindex

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/aurora-is-near/tarstream/src/tarheader"
)

var (
	// ErrMissingHeader is returned when an index lacks its leading header entry.
	ErrMissingHeader = errors.New("missing header")
)

// BinaryEntry is the fixed-width on-disk form of a ListEntry: the
// cumulative end offset, the entry type, and the NUL-padded name.
type BinaryEntry [binaryEntrySize]byte

// BinaryEntry returns the binary form of the entry. The stored size field
// holds offset plus the entry's archive size, so a reader can recover the
// last byte an entry occupies without arithmetic over earlier entries.
func (entry *ListEntry) BinaryEntry(offset int64) (newOffset int64, binEntry *BinaryEntry) {
	bin := new(BinaryEntry)
	size := entry.TarSize() + offset
	writeSize(bin, size)
	bin[binaryTypePos] = byte(entry.Type)
	copy(bin[binaryNamePos:binaryNameEnd], entry.Name)
	return size, bin
}

func writeSize(d *BinaryEntry, size int64) {
	binary.LittleEndian.PutUint64(d[binarySizePos:binarySizeEnd], uint64(size))
}

func readSize(d BinaryEntry) int64 {
	return int64(binary.LittleEndian.Uint64(d[binarySizePos:binarySizeEnd]))
}

func readName(d BinaryEntry) string {
	return string(bytes.TrimRightFunc(d[binaryNamePos:binaryNameEnd], func(r rune) bool { return r == 0x00 }))
}

// ToListEntry decodes bin for the entry beginning at offset. The index
// stores only byte ranges, so for files Size comes back rounded up to the
// block boundary, not as the exact content size.
func (bin BinaryEntry) ToListEntry(offset int64) *ListEntry {
	size := readSize(bin)
	e := &ListEntry{
		Name:      readName(bin),
		Type:      EntryType(bin[binaryTypePos]),
		FirstByte: offset,
		LastByte:  size,
	}
	if e.Type == EntryTypeFile {
		e.Size = size - offset - tarheader.BlockSize
	}
	return e
}

// IndexHeader reads the leading header entry of an index and returns the
// total archive size and the label the index was written with. In case of
// ErrMissingHeader only the label is usable; the size is indeterminate.
func IndexHeader(r io.Reader) (size int64, label string, err error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return 0, "", err
		}
	}
	buf := new(BinaryEntry)
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, "", err
	}
	e := buf.ToListEntry(0)
	if e.Type != EntryTypeHeader {
		return 0, e.Name, ErrMissingHeader
	}
	return e.LastByte, e.Name, nil
}

// ReadIndex reads index entries from r and calls entryFunc for each one.
// A leading header entry, if present, is skipped.
func ReadIndex(r io.Reader, entryFunc func(*ListEntry) error) error {
	var offset int64
	first := true
	for {
		buf := new(BinaryEntry)
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if first && EntryType(buf[binaryTypePos]) == EntryTypeHeader {
			first = false
			continue
		}
		first = false
		entry := buf.ToListEntry(offset)
		offset = entry.LastByte
		if err := entryFunc(entry); err != nil {
			return err
		}
	}
}

// WriteIndex scans the tar archive read from r and writes its index to w,
// prefixed with a header entry carrying label. When w is an
// io.WriteSeeker the header entry is rewritten at the end with the total
// archive size, end-of-archive marker included; otherwise its size stays
// zero and IndexHeader reports an indeterminate total.
func WriteIndex(label string, r io.Reader, w io.Writer) error {
	var offset int64

	_, fileHdr := (&ListEntry{
		Type: EntryTypeHeader,
		Name: label,
	}).BinaryEntry(0)
	if _, err := w.Write(fileHdr[:]); err != nil {
		return err
	}

	err := Scan(r, func(e *ListEntry) error {
		_, bin := e.BinaryEntry(e.FirstByte)
		offset = e.LastByte
		_, err := w.Write(bin[:])
		return err
	})
	if err != nil {
		return err
	}
	if ws, ok := w.(io.WriteSeeker); ok {
		if _, err := ws.Seek(0, io.SeekStart); err != nil {
			return err
		}
		total := offset + 2*tarheader.BlockSize
		hdr := new(BinaryEntry)
		writeSize(hdr, total)
		hdr[binaryTypePos] = byte(EntryTypeHeader)
		copy(hdr[binaryNamePos:binaryNameEnd], label)
		if _, err := w.Write(hdr[:]); err != nil {
			return err
		}
	}
	return nil
}
