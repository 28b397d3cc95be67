// Package tarheader encodes and decodes the 512-byte header records of the
// tar container format. It is pure data transformation and performs no I/O.
package tarheader

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

const (
	// BlockSize is the unit all tar headers and content regions are aligned to.
	BlockSize int64 = 512
)

// Classic tar header field layout. Offsets and widths are fixed; the 12
// bytes after the prefix field are unused filler.
const (
	posName     = 0
	lenName     = 100
	posMode     = 100
	lenMode     = 8
	posUID      = 108
	lenUID      = 8
	posGID      = 116
	lenGID      = 8
	posSize     = 124
	lenSize     = 12
	posMtime    = 136
	lenMtime    = 12
	posChecksum = 148
	lenChecksum = 8
	posTypeflag = 156
	posLinkName = 157
	lenLinkName = 100
	posMagic    = 257
	lenMagic    = 6
	posVersion  = 263
	lenVersion  = 2
	posUName    = 265
	lenUName    = 32
	posGName    = 297
	lenGName    = 32
	posDevMajor = 329
	lenDevMajor = 8
	posDevMinor = 337
	lenDevMinor = 8
	posPrefix   = 345
	lenPrefix   = 155
)

// Entry type flags. Types beyond file, directory and symlink are decoded
// but otherwise reserved.
const (
	TypeRegular    byte = '0'
	TypeRegularOld byte = 0
	TypeHardLink   byte = '1'
	TypeSymlink    byte = '2'
	TypeCharDev    byte = '3'
	TypeBlockDev   byte = '4'
	TypeDirectory  byte = '5'
	TypeFIFO       byte = '6'
	TypeContiguous byte = '7'
)

var (
	// ErrPathTooLong is returned when a path cannot be split across the
	// name and prefix fields.
	ErrPathTooLong = errors.New("path does not fit header name and prefix fields")
	// ErrLinkTooLong is returned when a link target exceeds the linkname field.
	ErrLinkTooLong = errors.New("link target does not fit header linkname field")
	// ErrFieldTooLong is returned when a field value exceeds its fixed width.
	ErrFieldTooLong = errors.New("value does not fit header field")
)

// FieldError reports a header field that could not be parsed.
type FieldError struct {
	Field string
	Value string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("cannot parse header field %s: %q", e.Field, e.Value)
}

// Block is one raw 512-byte header record.
type Block [BlockSize]byte

// Header is the decoded form of a tar header record.
type Header struct {
	Name     string
	Mode     int64
	UID      int64
	GID      int64
	Size     int64
	ModTime  int64 // seconds since the Unix epoch
	Checksum int64 // stored checksum; Encode recomputes it
	Typeflag byte
	LinkName string
	Magic    string // trailing NUL bytes stripped
	Version  string // trailing NUL bytes stripped
	UName    string
	GName    string
	DevMajor int64
	DevMinor int64
	Prefix   string
}

// FullPath joins the prefix and name fields. Directories conventionally
// carry a trailing slash in the result.
func (h *Header) FullPath() string {
	if h.Prefix == "" {
		return h.Name
	}
	return h.Prefix + "/" + h.Name
}

// Padding returns the number of filler bytes needed after size content
// bytes to reach the next block boundary. A multiple of the block size
// needs none.
func Padding(size int64) int64 {
	if size%BlockSize == 0 {
		return 0
	}
	return BlockSize - size%BlockSize
}

// Padded returns size rounded up to the next block boundary.
func Padded(size int64) int64 {
	return size + Padding(size)
}

func cstring(field []byte) string {
	if i := bytes.IndexByte(field, 0); i >= 0 {
		field = field[:i]
	}
	return string(field)
}

// Decode parses a raw header record. It never panics on arbitrary bytes:
// numeric fields with non-octal content yield a *FieldError. Decode does
// not validate the checksum or dialect; see Valid.
func Decode(b *Block) (*Header, error) {
	h := &Header{
		Name:     cstring(b[posName : posName+lenName]),
		Typeflag: b[posTypeflag],
		LinkName: cstring(b[posLinkName : posLinkName+lenLinkName]),
		Magic:    trimNUL(b[posMagic : posMagic+lenMagic]),
		Version:  trimNUL(b[posVersion : posVersion+lenVersion]),
		UName:    cstring(b[posUName : posUName+lenUName]),
		GName:    cstring(b[posGName : posGName+lenGName]),
		Prefix:   cstring(b[posPrefix : posPrefix+lenPrefix]),
	}
	var err error
	if h.Size, err = parseOctal("size", b[posSize:posSize+lenSize]); err != nil {
		return nil, err
	}
	if h.Checksum, err = parseOctal("checksum", b[posChecksum:posChecksum+lenChecksum]); err != nil {
		return nil, err
	}
	if h.Mode, err = parseOctalDefault("mode", b[posMode:posMode+lenMode]); err != nil {
		return nil, err
	}
	if h.UID, err = parseOctalDefault("uid", b[posUID:posUID+lenUID]); err != nil {
		return nil, err
	}
	if h.GID, err = parseOctalDefault("gid", b[posGID:posGID+lenGID]); err != nil {
		return nil, err
	}
	if h.ModTime, err = parseOctalDefault("mtime", b[posMtime:posMtime+lenMtime]); err != nil {
		return nil, err
	}
	if h.DevMajor, err = parseOctalDefault("devmajor", b[posDevMajor:posDevMajor+lenDevMajor]); err != nil {
		return nil, err
	}
	if h.DevMinor, err = parseOctalDefault("devminor", b[posDevMinor:posDevMinor+lenDevMinor]); err != nil {
		return nil, err
	}
	return h, nil
}

// Encode builds the raw record for h. All fields are written in their
// fixed-width representations, unused bytes are zero, and the checksum is
// computed and written last. Paths longer than the name field are split
// across prefix and name; a path or link target that cannot fit is an
// error, never a silent truncation.
func Encode(h *Header) (*Block, error) {
	b := new(Block)
	name, prefix := h.Name, h.Prefix
	if prefix == "" && len(name) > lenName {
		var err error
		prefix, name, err = SplitPath(name)
		if err != nil {
			return nil, err
		}
	}
	if len(name) > lenName || len(prefix) > lenPrefix {
		return nil, ErrPathTooLong
	}
	if len(h.LinkName) > lenLinkName {
		return nil, ErrLinkTooLong
	}
	if len(h.UName) > lenUName || len(h.GName) > lenGName {
		return nil, ErrFieldTooLong
	}
	copy(b[posName:posName+lenName], name)
	copy(b[posPrefix:posPrefix+lenPrefix], prefix)
	copy(b[posLinkName:posLinkName+lenLinkName], h.LinkName)
	copy(b[posMagic:posMagic+lenMagic], h.Magic)
	copy(b[posVersion:posVersion+lenVersion], h.Version)
	copy(b[posUName:posUName+lenUName], h.UName)
	copy(b[posGName:posGName+lenGName], h.GName)
	b[posTypeflag] = h.Typeflag
	for _, f := range []struct {
		name  string
		pos   int
		width int
		v     int64
	}{
		{"mode", posMode, lenMode, h.Mode},
		{"uid", posUID, lenUID, h.UID},
		{"gid", posGID, lenGID, h.GID},
		{"size", posSize, lenSize, h.Size},
		{"mtime", posMtime, lenMtime, h.ModTime},
		{"devmajor", posDevMajor, lenDevMajor, h.DevMajor},
		{"devminor", posDevMinor, lenDevMinor, h.DevMinor},
	} {
		if err := formatOctal(b[f.pos:f.pos+f.width], f.v); err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
	}
	writeChecksum(b)
	return b, nil
}

// SplitPath splits path at a slash so that the trailing part fits the name
// field and the leading part fits the prefix field.
func SplitPath(path string) (prefix, name string, err error) {
	if len(path) <= lenName {
		return "", path, nil
	}
	// Earliest split keeps the prefix short.
	min := len(path) - lenName - 1
	if min < 0 {
		min = 0
	}
	i := strings.IndexByte(path[min:], '/')
	if i < 0 {
		return "", "", ErrPathTooLong
	}
	i += min
	prefix, name = path[:i], path[i+1:]
	if len(prefix) > lenPrefix || len(name) > lenName || prefix == "" || name == "" {
		return "", "", ErrPathTooLong
	}
	return prefix, name, nil
}
