package cmd

import (
	"builddeps/src/internal/fetch"
	"builddeps/src/internal/python"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	fetchDest string
	fetchURL  string
)

var toolCmd = &cobra.Command{
	Use:   "tool",
	Short: "Manage the " + python.DefaultScript + " helper",
}

var toolFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download " + python.DefaultScript,
	Args:  usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := toolURL(fetchURL)
		pterm.Info.Printf("Downloading %s...\n", url)
		f := &fetch.Fetcher{Progress: cmd.ErrOrStderr()}
		path, err := f.Script(cmd.Context(), url, fetchDest)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", python.DefaultScript, err)
		}
		pterm.Success.Printf("Saved %s\n", path)
		return nil
	},
}

var toolWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show the interpreter and helper script run would use",
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
		tool := &python.Tool{Python: settings.Python, Script: settings.Script}
		exe, script, err := tool.Locate()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "python: %s\n", exe)
		fmt.Fprintf(out, "script: %s\n", script)
		return nil
	},
}

func init() {
	toolFetchCmd.Flags().StringVarP(&fetchDest, "dest", "d", ".", "directory to save the helper in")
	toolFetchCmd.Flags().StringVar(&fetchURL, "url", "", "download URL (default "+python.ScriptURL+")")
	toolCmd.AddCommand(toolFetchCmd)
	toolCmd.AddCommand(toolWhereCmd)
	rootCmd.AddCommand(toolCmd)
}
