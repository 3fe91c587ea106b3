// Package config loads the optional .brew.yaml project settings file.
// Grounded on funvibe-funxy's direct gopkg.in/yaml.v3 decoding of its own
// project config. cmd/brew/cmd calls Load only to report a malformed file;
// viper then reads the same file with its own decoder, layering the BREW_*
// environment over it. No command-line flag is bound into viper.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the shape of .brew.yaml.
type Config struct {
	// Trace enables execution trace logging by default. The --trace flag
	// also enables it but cannot turn it off.
	Trace bool `yaml:"trace"`
}

// Load reads and decodes path. A missing file returns a zero Config and no
// error, since .brew.yaml is always optional.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
