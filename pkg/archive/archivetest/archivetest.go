// Package archivetest builds real package archives for tests.
package archivetest

import (
	"archive/tar"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

// Compression selects the outer encoding of a fixture.
type Compression string

const (
	None Compression = "none"
	Gzip Compression = "gzip"
	Zstd Compression = "zstd"
	LZ4  Compression = "lz4"
	Xz   Compression = "xz"
)

// ModTime is stamped on every fixture entry.
var ModTime = time.Unix(1700000000, 0)

// Entry describes one archive member.
type Entry struct {
	Name     string
	Type     byte
	Body     string
	Mode     int64
	Linkname string
}

// Dir is a directory entry. Names conventionally end in "/".
func Dir(name string) Entry {
	return Entry{Name: name, Type: tar.TypeDir, Mode: 0755}
}

// File is a regular file entry.
func File(name, body string) Entry {
	return Entry{Name: name, Type: tar.TypeReg, Body: body, Mode: 0644}
}

// Symlink is a symbolic link entry pointing at target.
func Symlink(name, target string) Entry {
	return Entry{Name: name, Type: tar.TypeSymlink, Linkname: target, Mode: 0777}
}

// Hardlink links name to another member of the same archive.
func Hardlink(name, target string) Entry {
	return Entry{Name: name, Type: tar.TypeLink, Linkname: target, Mode: 0644}
}

// Fifo is a named pipe entry.
func Fifo(name string) Entry {
	return Entry{Name: name, Type: tar.TypeFifo, Mode: 0644}
}

// Write creates dir/filename holding entries and returns its path.
func Write(t testing.TB, dir, filename string, c Compression, entries ...Entry) string {
	t.Helper()

	path := filepath.Join(dir, filename)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, f.Close()) }()

	var w io.Writer = f
	var closeCompressor func() error
	switch c {
	case None, "":
	case Gzip:
		zw := gzip.NewWriter(f)
		w, closeCompressor = zw, zw.Close
	case Zstd:
		zw, err := zstd.NewWriter(f)
		require.NoError(t, err)
		w, closeCompressor = zw, zw.Close
	case LZ4:
		zw := lz4.NewWriter(f)
		w, closeCompressor = zw, zw.Close
	case Xz:
		zw, err := xz.NewWriter(f)
		require.NoError(t, err)
		w, closeCompressor = zw, zw.Close
	default:
		t.Fatalf("unknown compression %q", c)
	}

	tw := tar.NewWriter(w)
	for _, e := range entries {
		hdr := &tar.Header{
			Name:     e.Name,
			Typeflag: e.Type,
			Mode:     e.Mode,
			Linkname: e.Linkname,
			ModTime:  ModTime,
			Uid:      os.Getuid(),
			Gid:      os.Getgid(),
			Format:   tar.FormatPAX,
		}
		if e.Type == tar.TypeReg {
			hdr.Size = int64(len(e.Body))
		}
		require.NoError(t, tw.WriteHeader(hdr))
		if hdr.Size > 0 {
			_, err := io.WriteString(tw, e.Body)
			require.NoError(t, err)
		}
	}
	require.NoError(t, tw.Close())
	if closeCompressor != nil {
		require.NoError(t, closeCompressor())
	}
	return path
}

// Package writes a gzip fixture named name[#version].pkg.tar.gz.
func Package(t testing.TB, dir, name, version string, entries ...Entry) string {
	t.Helper()
	filename := name
	if version != "" {
		filename += "#" + version
	}
	return Write(t, dir, filename+".pkg.tar.gz", Gzip, entries...)
}
