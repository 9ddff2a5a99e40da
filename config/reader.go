package config

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"go.viam.com/utils"
)

// Read reads a config from the given file.
func Read(filePath string) (*Config, error) {
	//nolint:gosec
	f, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read config file %q", filePath)
	}
	defer utils.UncheckedErrorFunc(f.Close)

	conf, err := FromReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "in config file %q", filePath)
	}
	conf.ConfigFilePath = filePath
	return conf, nil
}

// FromReader reads a config from the given reader and validates it.
func FromReader(r io.Reader) (*Config, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	conf := &Config{}
	if err := decoder.Decode(conf); err != nil {
		return nil, errors.Wrap(err, "cannot parse config")
	}
	if err := conf.Validate(""); err != nil {
		return nil, err
	}
	return conf, nil
}
