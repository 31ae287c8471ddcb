// Package db implements the transactional package database.
//
// A Database is a session on one install root. Opening it takes an
// exclusive, non-blocking lock on the store directory (root/var/pkg), loads
// the reject rules and, while the session lasts, ignores terminal signals so
// a manifest write cannot be cut short. Close releases all of it.
//
// The store holds one manifest per installed package. Load reads all of
// them into the active set; a single unreadable or malformed manifest fails
// the whole load.
//
// # Install
//
// Install builds a Package from the archive's entry list (minus rejected
// paths), checks for collisions with existing non-directory files unless
// forced, writes and syncs the manifest, and only then extracts the
// archive. The manifest comes first so an interrupted extraction can always
// be cleaned up by a later remove.
//
// # Remove
//
// Removal has two phases. Remove deletes the package's files best effort,
// in reverse order, leaving directories, rejected paths and paths still
// claimed by another active package alone. Symlinks are only removed in
// force mode, which also prunes empty directories with rmdir(2) so a
// non-empty directory is never destroyed. The package then moves to the
// pending set. CommitRemoval deletes the manifest and syncs.
//
// A Database is not safe for concurrent use.
package db
