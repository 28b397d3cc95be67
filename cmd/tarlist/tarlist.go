package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/aurora-is-near/tarstream/src/tarheader"
	"github.com/aurora-is-near/tarstream/src/tarstream"
)

func typeChar(typeflag byte) byte {
	switch typeflag {
	case tarheader.TypeDirectory:
		return 'd'
	case tarheader.TypeSymlink:
		return 'l'
	case tarheader.TypeRegular, tarheader.TypeRegularOld:
		return '-'
	}
	return '?'
}

func list(r io.Reader, w io.Writer) error {
	tr, err := tarstream.NewReader(r)
	if err != nil {
		return err
	}
	for !tr.Finished() {
		hdr := tr.Header()
		line := fmt.Sprintf("%c %10d %s", typeChar(hdr.Typeflag), hdr.Size, hdr.FullPath())
		if hdr.Typeflag == tarheader.TypeSymlink {
			line += " -> " + hdr.LinkName
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		if err := tr.Advance(); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	in := io.Reader(os.Stdin)
	if len(os.Args) > 2 {
		_, _ = fmt.Fprintf(os.Stderr, "%s [<input.tar>]\n", path.Base(os.Args[0]))
		os.Exit(1)
	}
	if len(os.Args) == 2 && os.Args[1] != "-" {
		f, err := os.Open(os.Args[1])
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "%s ERROR: %s\n", path.Base(os.Args[0]), err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}
	if err := list(bufio.NewReader(in), os.Stdout); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%s ERROR: %s\n", path.Base(os.Args[0]), err)
		os.Exit(1)
	}
	os.Exit(0)
}
