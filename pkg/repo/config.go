package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/odvcencio/gat/pkg/object"
)

// Config stores repository-local settings, currently the commit identity.
// The identity used to be a baked-in constant; it is configuration now so a
// store instance carries exactly one configured identity.
type Config struct {
	User UserConfig `toml:"user"`
}

// UserConfig is the identity recorded on commits built by this repository.
type UserConfig struct {
	Name       string `toml:"name"`
	Email      string `toml:"email"`
	SigningKey string `toml:"signingkey,omitempty"`
}

// DefaultIdentity is used when no config file exists.
var DefaultIdentity = object.Identity{Name: "gat", Email: "gat@localhost"}

func (r *Repo) configPath() string {
	return filepath.Join(r.GatDir, "config.toml")
}

// ReadConfig reads .gat/config.toml. A missing file returns a config holding
// the default identity.
func (r *Repo) ReadConfig() (*Config, error) {
	data, err := os.ReadFile(r.configPath())
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{User: UserConfig{Name: DefaultIdentity.Name, Email: DefaultIdentity.Email}}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("read config: unmarshal: %w", err)
	}
	if cfg.User.Name == "" {
		cfg.User.Name = DefaultIdentity.Name
	}
	if cfg.User.Email == "" {
		cfg.User.Email = DefaultIdentity.Email
	}
	return &cfg, nil
}

// WriteConfig atomically writes .gat/config.toml.
func (r *Repo) WriteConfig(cfg *Config) error {
	if cfg == nil {
		cfg = &Config{}
	}

	tmp, err := os.CreateTemp(r.GatDir, ".config-tmp-*")
	if err != nil {
		return fmt.Errorf("write config: tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if err := toml.NewEncoder(tmp).Encode(cfg); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write config: encode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write config: close: %w", err)
	}
	if err := os.Rename(tmpName, r.configPath()); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write config: rename: %w", err)
	}
	return nil
}

// Identity returns the configured commit identity.
func (r *Repo) Identity() (object.Identity, error) {
	cfg, err := r.ReadConfig()
	if err != nil {
		return object.Identity{}, err
	}
	return object.Identity{Name: cfg.User.Name, Email: cfg.User.Email}, nil
}
