package cli

import (
	"os"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the optional lidrup-check.yaml layer described in
// SPEC_FULL.md §A.3: everything in it is a default that a matching
// command-line flag overrides.
type Config struct {
	Mode     string `yaml:"mode"`
	NoReuse  bool   `yaml:"no-reuse"`
	Verbose  int    `yaml:"verbose"`
}

// defaultConfigPath mirrors aretext's use of xdg.ConfigHome to find its
// own config file: ~/.config/lidrup-check/lidrup-check.yaml (or
// $XDG_CONFIG_HOME's equivalent on other platforms).
func defaultConfigPath() (string, error) {
	return xdg.ConfigFile("lidrup-check/lidrup-check.yaml")
}

// loadConfig reads path if it exists. A missing file at the default
// location is not an error: the checker runs the same as the C
// original does from argv alone. An explicitly named --config path
// that is missing is an error.
func loadConfig(path string, explicit bool) (Config, error) {
	var cfg Config

	if path == "" {
		var err error
		path, err = defaultConfigPath()
		if err != nil {
			return cfg, errors.Wrap(err, "resolving default config path")
		}
		explicit = false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "reading config file %s", path)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config file %s", path)
	}
	return cfg, nil
}
