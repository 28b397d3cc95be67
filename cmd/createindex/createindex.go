package main

import (
	"bufio"
	"fmt"
	"os"
	"path"

	"github.com/aurora-is-near/tarstream/src/tarindex"
)

func main() {
	if len(os.Args) != 3 {
		_, _ = fmt.Fprintf(os.Stderr, "%s <indexfile> <source tarfile>\n", path.Base(os.Args[0]))
		os.Exit(1)
	}
	f, err := os.OpenFile(os.Args[1], os.O_CREATE|os.O_EXCL|os.O_RDWR, 0640)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%s: Error opening index file: %s\n", path.Base(os.Args[0]), err)
		os.Exit(1)
	}
	defer func() { _ = f.Close() }()
	tarF, err := os.Open(os.Args[2])
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%s: Error opening tar file: %s\n", path.Base(os.Args[0]), err)
		os.Exit(1)
	}
	defer func() { _ = tarF.Close() }()
	if err := tarindex.WriteIndex(path.Base(os.Args[2]), bufio.NewReader(tarF), f); err != nil {
		_ = f.Close()
		_ = os.Remove(os.Args[1])
		_, _ = fmt.Fprintf(os.Stderr, "%s: Error indexing tar file: %s\n", path.Base(os.Args[0]), err)
		os.Exit(1)
	}
	os.Exit(0)
}
