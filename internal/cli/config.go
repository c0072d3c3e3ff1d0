package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/stadump/pkg/baseline"
	"github.com/matzehuels/stadump/pkg/dump"
	"github.com/matzehuels/stadump/pkg/errors"
	"github.com/matzehuels/stadump/pkg/server"
)

const (
	// configEnv names an explicit config file.
	configEnv = "STADUMP_CONFIG"

	// localConfigName is looked up in the working directory.
	localConfigName = "stadump.toml"
)

// Config is the stadump config file.
//
//	[dump]
//	legacy = false
//	sort_constraints = true
//
//	[baseline]
//	backend = "sqlite"
//	dir = ".baselines"
//
//	[server]
//	addr = "127.0.0.1:8080"
//	read_timeout = "30s"
type Config struct {
	Dump     dump.Options    `toml:"dump"`
	Baseline baseline.Config `toml:"baseline"`
	Server   server.Config   `toml:"server"`
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() Config {
	return Config{
		Baseline: baseline.Config{Backend: baseline.BackendFile, Dir: baseline.DefaultDir},
		Server:   server.DefaultConfig(),
	}
}

// LoadConfig reads path over the defaults. An empty path returns the
// defaults. A missing file is an error only when explicit is set.
func LoadConfig(path string, explicit bool) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) && !explicit {
		return DefaultConfig(), nil
	}
	if os.IsNotExist(err) {
		return cfg, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// configPath resolves the config file to load and whether the user named it.
// Lookup order: --config, $STADUMP_CONFIG, ./stadump.toml, then the user
// config directory.
func configPath(flag string) (string, bool) {
	if flag != "" {
		return flag, true
	}
	if env := os.Getenv(configEnv); env != "" {
		return env, true
	}
	if _, err := os.Stat(localConfigName); err == nil {
		return localConfigName, false
	}
	dir, err := configDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(dir, "config.toml"), false
}

// configDir returns the config directory using XDG standard (~/.config/stadump/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
