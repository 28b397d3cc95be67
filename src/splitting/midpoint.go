// Package splitting cuts tar archives at entry boundaries and produces
// per-file content hashes, driving the tarstream reader over real files.
package splitting

import (
	"bufio"
	"crypto/sha256"
	"fmt"
	"io"
	"os"

	"github.com/aurora-is-near/tarstream/src/tarheader"
	"github.com/aurora-is-near/tarstream/src/tarstream"
)

// midpoint returns the first entry boundary at or past half the archive.
// Entry boundaries are derived from the headers; content is skipped, not
// read.
func midpoint(filename string) (lastbyte int64, err error) {
	f, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	stat, err := f.Stat()
	if err != nil {
		return 0, err
	}
	stop := stat.Size() / 2
	tr, err := tarstream.NewReader(bufio.NewReader(f))
	if err != nil {
		return 0, err
	}
	var offset int64
	for !tr.Finished() {
		end := offset + tarheader.BlockSize + tarheader.Padded(tr.Header().Size)
		if end >= stop {
			return end, nil
		}
		offset = end
		if err := tr.Advance(); err != nil {
			return 0, err
		}
	}
	return 0, io.ErrShortBuffer
}

func splitfile(filename string, midpoint int64) error {
	destName := filename + ".part2"
	destF, err := os.Create(destName)
	if err != nil {
		return err
	}
	defer destF.Close()
	sourceF, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer sourceF.Close()
	pos, err := sourceF.Seek(midpoint, io.SeekStart)
	if err != nil {
		return err
	}
	if pos != midpoint {
		panic("Seek failure")
	}
	if _, err = io.Copy(destF, sourceF); err != nil {
		return err
	}
	return os.Truncate(filename, midpoint)
}

// SplitTarMiddle splits a tarfile roughly at its middle, cutting at an
// entry boundary so that each part starts with a valid header. It
// truncates the input tarfile in place, and copies the remainder into a
// file called "<tarfile>.part2".
func SplitTarMiddle(tarfile string) error {
	mid, err := midpoint(tarfile)
	if err != nil {
		return err
	}
	return splitfile(tarfile, mid)
}

// ReadSHA256 writes a sha256sum-style manifest of every regular file in
// tarfile to w, reading content through the bounded entry streams.
func ReadSHA256(tarfile string, w io.Writer) error {
	f, err := os.Open(tarfile)
	if err != nil {
		return err
	}
	defer f.Close()
	tr, err := tarstream.NewReader(bufio.NewReader(f))
	if err != nil {
		return err
	}
	for !tr.Finished() {
		hdr := tr.Header()
		if hdr.Typeflag == tarheader.TypeRegular || hdr.Typeflag == tarheader.TypeRegularOld {
			h := sha256.New()
			if _, err := io.Copy(h, tr.FileContents()); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "%x  %s\n", h.Sum(nil), hdr.FullPath()); err != nil {
				return err
			}
		}
		if err := tr.Advance(); err != nil {
			return err
		}
	}
	return nil
}
