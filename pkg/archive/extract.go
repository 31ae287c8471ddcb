package archive

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/pkgdb/pkg/errors"
	"github.com/arthur-debert/pkgdb/pkg/logging"
	"github.com/arthur-debert/pkgdb/pkg/paths"
	"golang.org/x/sys/unix"
)

// ErrUnsafePath is reported through Warn for entries escaping the root.
var ErrUnsafePath = errors.New(errors.ErrPath, "path escapes extraction root")

// ErrExists is reported through Warn when a non-directory target exists
// and Force is not set.
var ErrExists = errors.New(errors.ErrCollision, "file exists")

// ExtractOptions controls Extract.
type ExtractOptions struct {
	// Force unlinks existing non-directory targets before writing
	Force bool

	// Skip returns true for archive paths that must not be written
	Skip func(path string) bool

	// Warn receives every per-entry failure
	Warn func(path string, err error)
}

func (o ExtractOptions) warn(path string, err error) {
	if o.Warn != nil {
		o.Warn(path, err)
	}
}

type dirTimes struct {
	path  string
	atime time.Time
	mtime time.Time
}

// Extract writes the members of the archive at path below root.
func (r *TarReader) Extract(path, root string, opts ExtractOptions) error {
	logger := logging.GetLogger("archive")

	s, err := open(path)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	x := &extractor{
		root:  root,
		opts:  opts,
		owner: os.Geteuid() == 0,
	}

	tr := tar.NewReader(s)
	for {
		hdr, err := nextHeader(tr, path)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		x.entry(hdr, tr)
	}

	// directory mtimes last, children have touched them
	for i := len(x.dirs) - 1; i >= 0; i-- {
		d := x.dirs[i]
		if err := os.Chtimes(d.path, d.atime, d.mtime); err != nil {
			opts.warn(d.path, err)
		}
	}

	logger.Debug().
		Str("archive", path).
		Str("root", root).
		Str("format", s.format.String()).
		Int("extracted", x.extracted).
		Int("skipped", x.skipped).
		Int("warnings", x.warnings).
		Msg("Archive extracted")
	return nil
}

type extractor struct {
	root  string
	opts  ExtractOptions
	owner bool
	dirs  []dirTimes

	extracted int
	skipped   int
	warnings  int
}

func (x *extractor) warn(name string, err error) {
	x.warnings++
	x.opts.warn(name, err)
}

func (x *extractor) entry(hdr *tar.Header, body io.Reader) {
	name := hdr.Name
	if x.opts.Skip != nil && x.opts.Skip(name) {
		x.skipped++
		return
	}

	target, ok := paths.SecureJoin(x.root, name)
	if !ok {
		x.warn(name, ErrUnsafePath)
		return
	}
	// the archive root itself ("./")
	if filepath.Clean(target) == filepath.Clean(x.root) {
		return
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		x.warn(name, err)
		return
	}

	var err error
	switch hdr.Typeflag {
	case tar.TypeDir:
		err = x.dir(target, hdr)
	case tar.TypeReg:
		err = x.file(target, hdr, body)
	case tar.TypeSymlink:
		err = x.symlink(target, hdr)
	case tar.TypeLink:
		err = x.hardlink(target, hdr)
	case tar.TypeChar, tar.TypeBlock, tar.TypeFifo:
		err = x.special(target, hdr)
	default:
		err = fmt.Errorf("unsupported entry type %q", hdr.Typeflag)
	}
	if err != nil {
		x.warn(name, err)
		return
	}
	x.extracted++
}

// clear makes room for a non-directory target.
func (x *extractor) clear(target string) error {
	info, err := os.Lstat(target)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return &os.PathError{Op: "extract", Path: target, Err: unix.EISDIR}
	}
	if !x.opts.Force {
		return ErrExists
	}
	return unix.Unlink(target)
}

func (x *extractor) dir(target string, hdr *tar.Header) error {
	info, err := os.Lstat(target)
	switch {
	case err == nil && info.IsDir():
		// shared directory, left as is
		return nil
	case err == nil:
		if !x.opts.Force {
			return ErrExists
		}
		if err := unix.Unlink(target); err != nil {
			return err
		}
	case !os.IsNotExist(err):
		return err
	}

	if err := os.Mkdir(target, 0700); err != nil {
		return err
	}
	x.metadata(target, hdr)
	x.dirs = append(x.dirs, dirTimes{path: target, atime: accessTime(hdr), mtime: hdr.ModTime})
	return nil
}

func (x *extractor) file(target string, hdr *tar.Header, body io.Reader) error {
	if err := x.clear(target); err != nil {
		return err
	}
	f, err := os.OpenFile(target, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	x.metadata(target, hdr)
	x.times(target, hdr)
	return nil
}

func (x *extractor) symlink(target string, hdr *tar.Header) error {
	if err := x.clear(target); err != nil {
		return err
	}
	if err := os.Symlink(hdr.Linkname, target); err != nil {
		return err
	}
	if x.owner {
		if err := os.Lchown(target, hdr.Uid, hdr.Gid); err != nil {
			x.warn(hdr.Name, err)
		}
	}
	ts := []unix.Timespec{unix.NsecToTimespec(accessTime(hdr).UnixNano()), unix.NsecToTimespec(hdr.ModTime.UnixNano())}
	if err := unix.UtimesNanoAt(unix.AT_FDCWD, target, ts, unix.AT_SYMLINK_NOFOLLOW); err != nil {
		x.warn(hdr.Name, err)
	}
	return nil
}

func (x *extractor) hardlink(target string, hdr *tar.Header) error {
	source, ok := paths.SecureJoin(x.root, hdr.Linkname)
	if !ok {
		return ErrUnsafePath
	}
	if err := x.clear(target); err != nil {
		return err
	}
	return os.Link(source, target)
}

func (x *extractor) special(target string, hdr *tar.Header) error {
	if err := x.clear(target); err != nil {
		return err
	}
	mode := uint32(hdr.Mode & 07777)
	switch hdr.Typeflag {
	case tar.TypeFifo:
		if err := unix.Mkfifo(target, mode); err != nil {
			return &os.PathError{Op: "mkfifo", Path: target, Err: err}
		}
	case tar.TypeChar:
		dev := unix.Mkdev(uint32(hdr.Devmajor), uint32(hdr.Devminor))
		if err := unix.Mknod(target, mode|unix.S_IFCHR, int(dev)); err != nil {
			return &os.PathError{Op: "mknod", Path: target, Err: err}
		}
	case tar.TypeBlock:
		dev := unix.Mkdev(uint32(hdr.Devmajor), uint32(hdr.Devminor))
		if err := unix.Mknod(target, mode|unix.S_IFBLK, int(dev)); err != nil {
			return &os.PathError{Op: "mknod", Path: target, Err: err}
		}
	}
	x.metadata(target, hdr)
	x.times(target, hdr)
	return nil
}

// metadata applies ownership then permissions. Ownership changes clear
// setuid bits, so the order matters.
func (x *extractor) metadata(target string, hdr *tar.Header) {
	if x.owner {
		if err := os.Lchown(target, hdr.Uid, hdr.Gid); err != nil {
			x.warn(hdr.Name, err)
		}
	}
	mode := hdr.FileInfo().Mode() & (os.ModePerm | os.ModeSetuid | os.ModeSetgid | os.ModeSticky)
	if err := os.Chmod(target, mode); err != nil {
		x.warn(hdr.Name, err)
	}
}

func (x *extractor) times(target string, hdr *tar.Header) {
	if err := os.Chtimes(target, accessTime(hdr), hdr.ModTime); err != nil {
		x.warn(hdr.Name, err)
	}
}

func accessTime(hdr *tar.Header) time.Time {
	if hdr.AccessTime.IsZero() {
		return hdr.ModTime
	}
	return hdr.AccessTime
}
