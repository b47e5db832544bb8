package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
)

// Validate checks the TOML file at path strictly: BurntSushi/toml
// rejects malformed syntax, and an exact decode into Config (keyed by
// its mapstructure tags) rejects unknown keys — both of which viper's
// looser MergeInConfig would silently tolerate.
func Validate(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var raw map[string]any
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	var cfg Config
	if err := v.UnmarshalExact(&cfg); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
