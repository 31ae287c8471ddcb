// Package archive reads package archives.
//
// A package archive is a tar stream, optionally compressed. The compression
// is identified from the leading magic bytes, never from the file name:
//
//   - gzip  (1f 8b)          github.com/klauspost/compress/gzip
//   - zstd  (28 b5 2f fd)    github.com/klauspost/compress/zstd
//   - lz4   (04 22 4d 18)    github.com/pierrec/lz4/v4 frame format
//   - bzip2 ("BZh")          compress/bzip2
//   - xz    (fd "7zXZ" 00)   github.com/ulikunitz/xz
//   - plain tar ("ustar" at offset 257)
//
// Reader.Entries lists (path, is-directory) pairs lazily; reopening gives a
// fresh sequence. Reader.Extract writes entries below a root directory,
// honoring mode, ownership (when running as root) and modification time,
// and refuses any entry that would land outside the root. Per-entry
// problems are reported through ExtractOptions.Warn and never stop the
// extraction. Corrupt headers stop both listing and extraction.
package archive
