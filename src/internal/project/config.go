package project

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const FileName = "builddeps.toml"

type Config struct {
	Tool ToolConfig `toml:"tool"`
}

// ToolConfig selects the interpreter and helper script used to discover
// build dependencies. Empty fields fall through to the global config.
type ToolConfig struct {
	Python  string `toml:"python"`
	Script  string `toml:"script"`
	TempDir string `toml:"temp_dir"`
}

// LoadDir reads builddeps.toml from projectDir. A missing file is not an
// error; the second return value reports whether one was found.
func LoadDir(projectDir string) (Config, bool, error) {
	path := filepath.Join(projectDir, FileName)
	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, false, nil
		}
		return Config{}, false, err
	}
	return cfg, true, nil
}

func Load(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	// Relative script paths are relative to the file that names them.
	if cfg.Tool.Script != "" && !filepath.IsAbs(cfg.Tool.Script) {
		cfg.Tool.Script = filepath.Join(filepath.Dir(path), cfg.Tool.Script)
	}
	return cfg, nil
}

func Save(path string, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}
