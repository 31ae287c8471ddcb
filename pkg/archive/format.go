package archive

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"io"
	"os"

	"github.com/arthur-debert/pkgdb/pkg/errors"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// Format is the outer encoding of an archive file.
type Format int

const (
	FormatUnknown Format = iota
	FormatTar
	FormatGzip
	FormatZstd
	FormatLZ4
	FormatBzip2
	FormatXz
)

// String returns the conventional short name of the format.
func (f Format) String() string {
	switch f {
	case FormatTar:
		return "tar"
	case FormatGzip:
		return "gzip"
	case FormatZstd:
		return "zstd"
	case FormatLZ4:
		return "lz4"
	case FormatBzip2:
		return "bzip2"
	case FormatXz:
		return "xz"
	default:
		return "unknown"
	}
}

var (
	magicGzip  = []byte{0x1f, 0x8b}
	magicZstd  = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4   = []byte{0x04, 0x22, 0x4d, 0x18}
	magicBzip2 = []byte("BZh")
	magicXz    = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	magicUstar = []byte("ustar")
)

// tar keeps its magic at offset 257
const peekSize = 262

// Detect identifies the format from the first bytes of a file.
func Detect(head []byte) Format {
	switch {
	case bytes.HasPrefix(head, magicGzip):
		return FormatGzip
	case bytes.HasPrefix(head, magicZstd):
		return FormatZstd
	case bytes.HasPrefix(head, magicLZ4):
		return FormatLZ4
	case bytes.HasPrefix(head, magicBzip2):
		return FormatBzip2
	case bytes.HasPrefix(head, magicXz):
		return FormatXz
	case len(head) >= peekSize && bytes.Equal(head[257:262], magicUstar):
		return FormatTar
	default:
		return FormatUnknown
	}
}

// DetectFile reads the head of path and identifies its format.
func DetectFile(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return FormatUnknown, errors.Wrapf(err, errors.ErrArchiveOpen, "open %s", path).WithDetail("path", path)
	}
	defer func() { _ = f.Close() }()

	head := make([]byte, peekSize)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return FormatUnknown, errors.Wrapf(err, errors.ErrArchiveOpen, "read %s", path).WithDetail("path", path)
	}
	return Detect(head[:n]), nil
}

// stream is an open, decompressed tar stream plus everything to close.
type stream struct {
	io.Reader
	format  Format
	closers []func() error
}

func (s *stream) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// open returns the decompressed tar stream of the archive at path.
func open(path string) (*stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrArchiveOpen, "open %s", path).WithDetail("path", path)
	}
	s := &stream{closers: []func() error{f.Close}}

	br := bufio.NewReaderSize(f, 64*1024)
	head, _ := br.Peek(peekSize)
	s.format = Detect(head)

	fail := func(err error, code errors.ErrorCode, msg string) (*stream, error) {
		_ = s.Close()
		return nil, errors.Wrapf(err, code, "%s: %s", path, msg).
			WithDetail("path", path).
			WithDetail("format", s.format.String())
	}

	switch s.format {
	case FormatTar:
		s.Reader = br
	case FormatGzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return fail(err, errors.ErrArchiveOpen, "gzip")
		}
		s.Reader = zr
		s.closers = append(s.closers, zr.Close)
	case FormatZstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return fail(err, errors.ErrArchiveOpen, "zstd")
		}
		s.Reader = zr
		s.closers = append(s.closers, func() error { zr.Close(); return nil })
	case FormatLZ4:
		s.Reader = lz4.NewReader(br)
	case FormatBzip2:
		s.Reader = bzip2.NewReader(br)
	case FormatXz:
		xr, err := xz.NewReader(br)
		if err != nil {
			return fail(err, errors.ErrArchiveOpen, "xz")
		}
		s.Reader = xr
	default:
		_ = s.Close()
		return nil, errors.Newf(errors.ErrArchiveOpen, "%s: unrecognized archive format", path).
			WithDetail("path", path)
	}
	return s, nil
}
