package archive

import (
	"archive/tar"
	"io"

	"github.com/arthur-debert/pkgdb/pkg/errors"
)

// Entry is one member of an archive as seen by the database.
type Entry struct {
	// Path is the name stored in the archive, unmodified
	Path  string
	IsDir bool
}

// EntryIterator yields entries until io.EOF.
type EntryIterator interface {
	Next() (Entry, error)
	Close() error
}

// Reader lists and extracts package archives.
type Reader interface {
	Entries(path string) (EntryIterator, error)
	Extract(path, root string, opts ExtractOptions) error
}

// TarReader is the Reader for tar based package archives.
type TarReader struct{}

// NewReader returns the default archive reader.
func NewReader() *TarReader {
	return &TarReader{}
}

// Entries opens path and returns a lazy iterator over its members.
func (r *TarReader) Entries(path string) (EntryIterator, error) {
	s, err := open(path)
	if err != nil {
		return nil, err
	}
	return &tarIterator{path: path, s: s, tr: tar.NewReader(s)}, nil
}

type tarIterator struct {
	path string
	s    *stream
	tr   *tar.Reader
}

func (it *tarIterator) Next() (Entry, error) {
	hdr, err := nextHeader(it.tr, it.path)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Path: hdr.Name, IsDir: hdr.Typeflag == tar.TypeDir}, nil
}

func (it *tarIterator) Close() error {
	return it.s.Close()
}

// nextHeader skips pax global headers and maps failures to ARCHIVE_HEADER.
func nextHeader(tr *tar.Reader, path string) (*tar.Header, error) {
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil, io.EOF
		}
		// unsafe names are dropped per entry during extraction
		if err == tar.ErrInsecurePath && hdr != nil {
			err = nil
		}
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrArchiveHeader, "%s: read header", path).
				WithDetail("path", path)
		}
		if hdr.Typeflag == tar.TypeXGlobalHeader {
			continue
		}
		return hdr, nil
	}
}

// ReadAll collects every entry of the archive at path.
func ReadAll(r Reader, path string) ([]Entry, error) {
	it, err := r.Entries(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = it.Close() }()

	var entries []Entry
	for {
		e, err := it.Next()
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
}
