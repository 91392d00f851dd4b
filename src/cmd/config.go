package cmd

import (
	"builddeps/src/internal/bddir"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configKeys = []string{"python", "script", "temp_dir", "tool_url"}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage global builddeps settings",
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Persist a global setting (" + strings.Join(configKeys, ", ") + ")",
	Args:  usageArgs(cobra.ExactArgs(2)),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if !slices.Contains(configKeys, key) {
			return fmt.Errorf("unknown setting %q, expected one of %s", key, strings.Join(configKeys, ", "))
		}
		viper.Set(key, value)

		configPath := cfgFile
		if configPath == "" {
			if err := bddir.EnsureHome(); err != nil {
				return err
			}
			configPath = bddir.ConfigFile()
		} else if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
			return err
		}
		if err := viper.WriteConfigAs(configPath); err != nil {
			return fmt.Errorf("write %s: %w", configPath, err)
		}
		pterm.Success.Printf("Set %s = %s in %s\n", key, value, configPath)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the settings run would use in the current directory",
	Args:  usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		settings, err := resolveToolSettings(wd, toolSettings{Python: toolPython, Script: toolScript})
		if err != nil {
			return err
		}
		data := pterm.TableData{
			{"Setting", "Value"},
			{"python", orAuto(settings.Python, "python3, then python")},
			{"script", settings.Script},
			{"temp_dir", orAuto(settings.TempDir, os.TempDir())},
			{"tool_url", toolURL("")},
		}
		return pterm.DefaultTable.WithHasHeader().WithWriter(cmd.OutOrStdout()).WithData(data).Render()
	},
}

func orAuto(value, auto string) string {
	if value == "" {
		return auto + " (auto)"
	}
	return value
}

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
