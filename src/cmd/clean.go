package cmd

import (
	"bufio"
	"builddeps/src/internal/bddir"
	"builddeps/src/internal/builddeps"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	cleanForce   bool
	cleanTraces  bool
	cleanTempDir string
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove requirements files left behind by failed runs",
	Long: `A failed run keeps the temporary requirements file of the package that
failed so it can be inspected. clean removes those files from the temp
directory, and with --traces the run traces as well.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		settings, err := resolveToolSettings(wd, toolSettings{TempDir: cleanTempDir})
		if err != nil {
			return err
		}
		dir := settings.TempDir
		if dir == "" {
			dir = os.TempDir()
		}

		targets, err := filepath.Glob(filepath.Join(dir, builddeps.TempPattern))
		if err != nil {
			return err
		}
		if cleanTraces {
			if _, err := os.Stat(bddir.TraceDir()); err == nil {
				targets = append(targets, bddir.TraceDir())
			}
		}
		if len(targets) == 0 {
			pterm.Info.Println("Nothing to clean.")
			return nil
		}

		out := cmd.OutOrStdout()
		if !cleanForce {
			pterm.Warning.Println("This will delete:")
			for _, t := range targets {
				fmt.Fprintf(out, "- %s\n", t)
			}
			fmt.Fprint(out, "\nAre you sure you want to proceed? (y/N): ")

			reader := bufio.NewReader(cmd.InOrStdin())
			input, _ := reader.ReadString('\n')
			input = strings.TrimSpace(strings.ToLower(input))

			if input != "y" && input != "yes" {
				pterm.Info.Println("Cleanup cancelled.")
				return nil
			}
		}

		failed := 0
		for _, t := range targets {
			if !removePath(t) {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("failed to remove %d path(s)", failed)
		}
		pterm.Success.Printf("Removed %d path(s)\n", len(targets))
		return nil
	},
}

func removePath(path string) bool {
	pterm.Info.Printf("Removing %s...\n", path)
	if err := os.RemoveAll(path); err != nil {
		pterm.Error.Printf("Failed to remove %s: %v\n", path, err)
		return false
	}
	return true
}

func init() {
	cleanCmd.Flags().BoolVarP(&cleanForce, "force", "f", false, "remove without confirmation")
	cleanCmd.Flags().BoolVar(&cleanTraces, "traces", false, "also remove run traces")
	cleanCmd.Flags().StringVar(&cleanTempDir, "temp-dir", "", "directory holding per-package requirements files (default OS temp dir)")
	rootCmd.AddCommand(cleanCmd)
}
