package config

// Config is the effective pkgdb configuration.
type Config struct {
	// Root is the install root
	Root string `koanf:"root" toml:"root" validate:"required"`

	// DBDir is the store directory relative to Root
	DBDir string `koanf:"db_dir" toml:"db_dir" validate:"required,relpath"`

	// RejectFile is the reject rule file relative to Root
	RejectFile string `koanf:"reject_file" toml:"reject_file" validate:"required,relpath"`

	Force     bool `koanf:"force" toml:"force"`
	Verbosity int  `koanf:"verbosity" toml:"verbosity" validate:"gte=0"`

	Output Output `koanf:"output" toml:"output"`
}

// Output controls how results are rendered.
type Output struct {
	Format string `koanf:"format" toml:"format" validate:"oneof=auto term text json yaml"`
}
