// Package paths provides centralized path handling for pkgdb.
//
// It owns the fixed on-disk layout of a package database below an install
// root and the pure helpers used by every other package:
//
//   - Root resolution (absolute, symlink-resolved install root)
//   - Store and reject-rule locations relative to the root
//   - Entry path building (root + "/" + relative path)
//   - Package archive filename parsing into name and optional version
//
// # Layout
//
// For an install root R the database lives at:
//
//   - R/var/pkg                   one manifest per installed package
//   - R/var/pkg/<name>[#version]  manifest file
//   - R/etc/pkgtools/reject.conf  reject rules
//
// # XDG Base Directory Structure
//
// Tool-level files (configuration, log) follow the XDG base directory layout via
// github.com/adrg/xdg:
//
//   - Config: $XDG_CONFIG_HOME/pkgdb/config.toml
//   - State:  $XDG_STATE_HOME/pkgdb/pkgdb.log
package paths
