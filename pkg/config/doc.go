// Package config handles configuration management for pkgdb.
// It supports loading configuration from multiple sources including
// TOML files, environment variables, and command-line flags.
//
// Sources are layered in this order, later ones winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user file, $XDG_CONFIG_HOME/pkgdb/config.toml or $PKGDB_CONFIG
//  3. PKGDB_* environment variables (PKGDB_DB_DIR -> db_dir,
//     PKGDB_OUTPUT_FORMAT -> output.format)
//  4. explicit overrides, normally set from command-line flags
package config
