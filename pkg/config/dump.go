package config

import (
	"github.com/arthur-debert/pkgdb/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

// Dump renders cfg as TOML in the same shape as the user config file.
func Dump(cfg *Config) ([]byte, error) {
	out, err := toml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return out, nil
}
