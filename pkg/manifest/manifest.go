package manifest

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/arthur-debert/pkgdb/pkg/errors"
	"github.com/arthur-debert/pkgdb/pkg/logging"
	"github.com/arthur-debert/pkgdb/pkg/types"
)

// Read parses manifest lines from r. source names the manifest in errors.
// A last line without a trailing newline is accepted.
func Read(r io.Reader, source string) ([]string, error) {
	var entries []string
	br := bufio.NewReader(r)
	lineNo := 0
	for {
		line, err := br.ReadString('\n')
		if line == "" && err == io.EOF {
			break
		}
		if err != nil && err != io.EOF {
			return nil, errors.Wrapf(err, errors.ErrManifestRead, "%s: read error", source).
				WithDetail("path", source)
		}
		lineNo++

		line = strings.TrimSuffix(line, "\n")
		if line == "" {
			return nil, errors.Newf(errors.ErrMalformedManifest, "%s: malformed pkg file", source).
				WithDetail("path", source).
				WithDetail("line", lineNo)
		}
		entries = append(entries, line)

		if err == io.EOF {
			break
		}
	}
	return entries, nil
}

// ReadFile reads and parses the manifest at path.
func ReadFile(fsys types.FS, path string) ([]string, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestRead, "%s: read error", path).
			WithDetail("path", path)
	}
	return Read(bytes.NewReader(data), path)
}

// Write emits one path per line, each newline terminated.
func Write(w io.Writer, paths []string) error {
	for _, p := range paths {
		if _, err := io.WriteString(w, p); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile creates or truncates the manifest at path and makes it durable
// before returning.
func WriteFile(fsys types.FS, path string, paths []string) error {
	logger := logging.GetLogger("manifest")

	var buf bytes.Buffer
	if err := Write(&buf, paths); err != nil {
		return errors.Wrapf(err, errors.ErrManifestWrite, "write %s", path).WithDetail("path", path)
	}
	if err := fsys.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrManifestWrite, "write %s", path).WithDetail("path", path)
	}

	logger.Debug().Str("path", path).Int("entries", len(paths)).Msg("Manifest written")
	return nil
}

// Remove deletes the manifest at path and flushes filesystem buffers.
func Remove(fsys types.FS, path string) error {
	logger := logging.GetLogger("manifest")

	if err := fsys.Remove(path); err != nil {
		return errors.Wrapf(err, errors.ErrManifestDelete, "remove %s", path).WithDetail("path", path)
	}
	if err := fsys.Sync(); err != nil {
		return errors.Wrapf(err, errors.ErrManifestDelete, "sync after removing %s", path).WithDetail("path", path)
	}
	logger.Debug().Str("path", path).Msg("Manifest removed")
	return nil
}
