package problem

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/2x3systems/go3flag/go3flag"
	"github.com/2x3systems/go3flag/lib3flag"
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config specifies a problem setup, as read from a TOML or YAML file:
//
//	n = 6
//	constraints = "span 4 < 3"
//	workers = 4
//	dedup = "map"
type Config struct {
	N           int    `toml:"n" yaml:"n"`
	Constraints string `toml:"constraints" yaml:"constraints"`
	Workers     int    `toml:"workers" yaml:"workers"`
	Dedup       string `toml:"dedup" yaml:"dedup"`
}

// LoadConfig reads a Config from the given file, choosing TOML or YAML by file extension.
func LoadConfig(pathname string) (Config, error) {
	var cfg Config

	switch ext := strings.ToLower(filepath.Ext(pathname)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(pathname, &cfg); err != nil {
			return cfg, errors.Wrapf(go3flag.ErrBadConfig, "%s: %v", pathname, err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(pathname)
		if err != nil {
			return cfg, errors.Wrap(err, "reading problem config")
		}
		if err = yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrapf(go3flag.ErrBadConfig, "%s: %v", pathname, err)
		}
	default:
		return cfg, errors.Wrapf(go3flag.ErrBadConfig, "%s: unsupported config extension %q", pathname, ext)
	}

	return cfg, cfg.Validate()
}

// Validate checks that cfg describes a problem that can be set up.
func (cfg Config) Validate() error {
	if cfg.N < 1 || cfg.N > go3flag.MaxVtxID {
		return errors.Wrapf(go3flag.ErrBadConfig, "n=%d", cfg.N)
	}
	if cfg.Workers < 0 {
		return errors.Wrapf(go3flag.ErrBadConfig, "workers=%d", cfg.Workers)
	}
	set, err := lib3flag.NewCanonicSet(go3flag.DedupSet(cfg.Dedup))
	if err != nil {
		return err
	}
	if err = set.Close(); err != nil {
		return err
	}
	_, err = lib3flag.ParseConstraints(cfg.Constraints)
	return err
}

// GenOpts returns the generator options cfg specifies.
func (cfg Config) GenOpts() lib3flag.GenOpts {
	return lib3flag.GenOpts{
		Workers:  cfg.Workers,
		DedupSet: go3flag.DedupSet(cfg.Dedup),
	}
}
