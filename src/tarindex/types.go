// Package tarindex builds and reads byte-range indexes of tar archives.
// An index records, for every entry, the half-open byte range the entry
// occupies in the archive (header block plus block-padded content), so
// that later delivery can seek straight to an entry without re-parsing
// the stream.
package tarindex

import "github.com/aurora-is-near/tarstream/src/tarheader"

const (
	binarySizeLen = 8
	binaryTypeLen = 1
	binaryNameLen = 256
	binarySizePos = 0
	binarySizeEnd = binarySizePos + binarySizeLen
	binaryTypePos = binarySizeEnd
	binaryTypeEnd = binaryTypePos + binaryTypeLen
	binaryNamePos = binaryTypeEnd
	binaryNameEnd = binaryNamePos + binaryNameLen

	binaryEntrySize int = binarySizeLen + binaryTypeLen + binaryNameLen
)

type EntryType byte

const (
	EntryTypeHeader    EntryType = 0xff
	EntryTypeDirectory EntryType = 0x01
	EntryTypeFile      EntryType = 0x02
	EntryTypeLink      EntryType = 0x03
)

// entryTypeOf maps a tar type flag to the index entry types. Types the
// index does not track (devices, fifos, hard links) report ok == false.
func entryTypeOf(typeflag byte) (t EntryType, ok bool) {
	switch typeflag {
	case tarheader.TypeRegular, tarheader.TypeRegularOld:
		return EntryTypeFile, true
	case tarheader.TypeDirectory:
		return EntryTypeDirectory, true
	case tarheader.TypeSymlink:
		return EntryTypeLink, true
	}
	return 0, false
}

// ListEntry describes one archive entry and its place in the archive.
type ListEntry struct {
	Size      int64     // Content size in bytes. Zero for directories and links.
	Name      string    // Path of the entry inside the archive.
	Type      EntryType // Directory, link, or regular file.
	FirstByte int64     // First byte occupied in the tar file.
	LastByte  int64     // Byte after the last one occupied in the tar file.
}

// TarSize returns the number of archive bytes the entry occupies: one
// header block, plus the block-padded content for files.
func (entry *ListEntry) TarSize() int64 {
	switch entry.Type {
	case EntryTypeLink, EntryTypeDirectory:
		return tarheader.BlockSize
	case EntryTypeFile:
		return tarheader.BlockSize + tarheader.Padded(entry.Size)
	default:
		return 0
	}
}
