package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"braces.dev/errtrace"
	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ghettovoice/sipparse/internal/errorutil"
)

// fileConfig is the --config file layout, the same keys are used in YAML and TOML.
type fileConfig struct {
	Username string    `yaml:"username" toml:"username"`
	Password string    `yaml:"password" toml:"password"`
	HA1      string    `yaml:"ha1" toml:"ha1"`
	Realm    string    `yaml:"realm" toml:"realm"`
	Log      logConfig `yaml:"log" toml:"log"`
}

type logConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

const errLoadConfig errorutil.Error = "load config"

// loadConfig reads a YAML or TOML file chosen by extension. Unknown keys are rejected.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		meta, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return fileConfig{}, errtrace.Wrap(errorutil.NewWrapperError(errLoadConfig, err))
		}
		if undec := meta.Undecoded(); len(undec) > 0 {
			return fileConfig{}, errtrace.Wrap(errorutil.NewWrapperError(errLoadConfig, "unknown keys %v", undec))
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return fileConfig{}, errtrace.Wrap(errorutil.NewWrapperError(errLoadConfig, err))
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && len(bytes.TrimSpace(data)) > 0 {
			return fileConfig{}, errtrace.Wrap(errorutil.NewWrapperError(errLoadConfig, err))
		}
	default:
		return fileConfig{}, errtrace.Wrap(errorutil.NewWrapperError(errLoadConfig, "unsupported file extension %q", ext))
	}
	return cfg, nil
}
