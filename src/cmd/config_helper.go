package cmd

import (
	"builddeps/src/internal/project"
	"builddeps/src/internal/python"
	"fmt"

	"github.com/spf13/viper"
)

type toolSettings struct {
	Python  string
	Script  string
	TempDir string
}

// resolveToolSettings fills each setting from, in order:
// 1. command-line flags
// 2. builddeps.toml in wd
// 3. global config (config.yaml or BUILDDEPS_* environment)
// 4. built-in defaults
func resolveToolSettings(wd string, flags toolSettings) (toolSettings, error) {
	cfg, _, err := project.LoadDir(wd)
	if err != nil {
		return toolSettings{}, fmt.Errorf("load %s: %w", project.FileName, err)
	}
	return toolSettings{
		// Empty lets python.Tool pick python3 or python.
		Python:  firstNonEmpty(flags.Python, cfg.Tool.Python, viper.GetString("python")),
		Script:  firstNonEmpty(flags.Script, cfg.Tool.Script, viper.GetString("script"), python.DefaultScript),
		TempDir: firstNonEmpty(flags.TempDir, cfg.Tool.TempDir, viper.GetString("temp_dir")),
	}, nil
}

func toolURL(flag string) string {
	return firstNonEmpty(flag, viper.GetString("tool_url"), python.ScriptURL)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
