package tarstream

import (
	"archive/tar"
	"bytes"
	"io"
	"strings"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/aurora-is-near/tarstream/src/tarheader"
)

func TestPaddingBoundary(t *testing.T) {
	// exact block multiples get no padding at all, not a spurious block
	for _, c := range []struct {
		size  int
		total int64
	}{
		{0, 512},
		{1, 512 + 512},
		{511, 512 + 512},
		{512, 512 + 512},
		{513, 512 + 1024},
		{1024, 512 + 1024},
	} {
		buf := new(bytes.Buffer)
		tw := NewWriter(buf)
		if err := tw.AddFile("f.bin", 0644, bytes.Repeat([]byte{'x'}, c.size)); err != nil {
			t.Fatalf("AddFile(%d): %s", c.size, err)
		}
		if int64(buf.Len()) != c.total {
			t.Errorf("size %d: wrote %d bytes, want %d", c.size, buf.Len(), c.total)
		}
	}
}

func TestPaddingIsZeroBytes(t *testing.T) {
	buf := new(bytes.Buffer)
	tw := NewWriter(buf)
	assert.NilError(t, tw.AddFile("f.bin", 0644, []byte{0xff}))
	out := buf.Bytes()
	assert.Equal(t, len(out), 1024)
	assert.Assert(t, bytes.Equal(out[513:], make([]byte, 511)))
}

func TestDirectoryTrailingSlash(t *testing.T) {
	buf := new(bytes.Buffer)
	tw := NewWriter(buf)
	assert.NilError(t, tw.AddDirectory("a/b", 0755))
	assert.NilError(t, tw.AddDirectory("c/", 0755))

	var b tarheader.Block
	copy(b[:], buf.Bytes())
	hdr, err := tarheader.Decode(&b)
	assert.NilError(t, err)
	assert.Equal(t, hdr.FullPath(), "a/b/")
	assert.Equal(t, hdr.Typeflag, tarheader.TypeDirectory)
	assert.Equal(t, hdr.Size, int64(0))

	copy(b[:], buf.Bytes()[512:])
	hdr, err = tarheader.Decode(&b)
	assert.NilError(t, err)
	assert.Equal(t, hdr.FullPath(), "c/")
}

func TestWriterEmitsGNU(t *testing.T) {
	buf := new(bytes.Buffer)
	tw := NewWriter(buf)
	assert.NilError(t, tw.AddFile("f", 0644, nil))

	var b tarheader.Block
	copy(b[:], buf.Bytes())
	assert.Assert(t, tarheader.Valid(&b))
	hdr, err := tarheader.Decode(&b)
	assert.NilError(t, err)
	assert.Equal(t, tarheader.DetectDialect(hdr.Magic, hdr.Version), tarheader.DialectGNU)
}

func TestFinishMarker(t *testing.T) {
	buf := new(bytes.Buffer)
	tw := NewWriter(buf)
	assert.NilError(t, tw.AddFile("f", 0644, []byte("data")))
	assert.NilError(t, tw.Finish())

	out := buf.Bytes()
	assert.Equal(t, len(out), 512+512+1024)
	assert.Assert(t, bytes.Equal(out[len(out)-1024:], make([]byte, 1024)))
}

func TestUseAfterFinishPanics(t *testing.T) {
	buf := new(bytes.Buffer)
	tw := NewWriter(buf)
	assert.NilError(t, tw.Finish())

	for name, call := range map[string]func(){
		"AddFile":      func() { _ = tw.AddFile("f", 0644, nil) },
		"AddDirectory": func() { _ = tw.AddDirectory("d", 0755) },
		"AddLink":      func() { _ = tw.AddLink("l", 0777, "t") },
		"Finish":       func() { _ = tw.Finish() },
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s after Finish did not panic", name)
				}
			}()
			call()
		}()
	}
}

func TestLinkTargetTooLong(t *testing.T) {
	tw := NewWriter(new(bytes.Buffer))
	err := tw.AddLink("l", 0777, strings.Repeat("x", 150))
	assert.ErrorIs(t, err, tarheader.ErrLinkTooLong)
}

func TestPathOverflowReported(t *testing.T) {
	tw := NewWriter(new(bytes.Buffer))
	err := tw.AddFile(strings.Repeat("x", 300), 0644, nil)
	assert.ErrorIs(t, err, tarheader.ErrPathTooLong)
}

func TestFixPathHook(t *testing.T) {
	buf := new(bytes.Buffer)
	tw := NewWriter(buf)
	tw.FixPath = PathMod{BaseDir: "/tmp/", ModDir: "./"}.FixPath
	assert.NilError(t, tw.AddFile("/tmp/something", 0644, nil))

	var b tarheader.Block
	copy(b[:], buf.Bytes())
	hdr, err := tarheader.Decode(&b)
	assert.NilError(t, err)
	assert.Equal(t, hdr.Name, "./something")
}

func TestPathMod(t *testing.T) {
	mod := PathMod{BaseDir: "/tmp/", ModDir: "./"}
	if n := mod.FixPath("/tmp/something"); n != "./something" {
		t.Errorf("Failed: %s != %s", n, "./something")
	}
	if n := mod.FixPath("/tmp"); n != "./" {
		t.Errorf("Failed: %s != %s", n, "./")
	}
}

func TestStdlibReadsOurArchive(t *testing.T) {
	buf := new(bytes.Buffer)
	tw := NewWriter(buf)
	assert.NilError(t, tw.AddDirectory("x", 0755))
	assert.NilError(t, tw.AddFile("x/y.txt", 0644, []byte("hello")))
	assert.NilError(t, tw.AddLink("x/z", 0777, "y.txt"))
	assert.NilError(t, tw.Finish())

	tr := tar.NewReader(bytes.NewReader(buf.Bytes()))

	hdr, err := tr.Next()
	assert.NilError(t, err)
	assert.Equal(t, hdr.Name, "x/")
	assert.Equal(t, hdr.Typeflag, byte(tar.TypeDir))

	hdr, err = tr.Next()
	assert.NilError(t, err)
	assert.Equal(t, hdr.Name, "x/y.txt")
	assert.Equal(t, hdr.Typeflag, byte(tar.TypeReg))
	content, err := io.ReadAll(tr)
	assert.NilError(t, err)
	assert.Equal(t, string(content), "hello")

	hdr, err = tr.Next()
	assert.NilError(t, err)
	assert.Equal(t, hdr.Name, "x/z")
	assert.Equal(t, hdr.Typeflag, byte(tar.TypeSymlink))
	assert.Equal(t, hdr.Linkname, "y.txt")

	_, err = tr.Next()
	assert.ErrorIs(t, err, io.EOF)
}
