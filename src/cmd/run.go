package cmd

import (
	"builddeps/src/internal/bddir"
	"builddeps/src/internal/builddeps"
	"builddeps/src/internal/python"
	"builddeps/src/internal/telemetry"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	runTempDir string
	runTrace   bool
)

var runCmd = &cobra.Command{
	Use:   "run <requirements_file>",
	Short: "Find build dependencies for each package in a requirements file",
	Long: `Run pip_find_builddeps.py once per package listed in the requirements file.
Blank lines and lines starting with # are skipped. Each package is written to
its own temporary requirements file, which is removed once the helper succeeds
and kept for inspection when it fails. The first failure stops the run.`,
	Args: usageArgs(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		settings, err := resolveToolSettings(wd, toolSettings{
			Python:  toolPython,
			Script:  toolScript,
			TempDir: runTempDir,
		})
		if err != nil {
			return err
		}

		if runTrace {
			info, err := telemetry.Start(bddir.TraceDir())
			if err != nil {
				pterm.Warning.Printf("Tracing disabled: %v\n", err)
			} else {
				defer telemetry.Stop()
				pterm.Info.Printf("Writing trace to %s\n", info.LogPath)
			}
		}

		tool := &python.Tool{
			Python: settings.Python,
			Script: settings.Script,
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
		}
		result, err := builddeps.NewRunner(tool, settings.TempDir).Run(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		pterm.Success.Printf("Found build dependencies for %d package(s)\n", len(result.Processed))
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runTempDir, "temp-dir", "", "directory for per-package requirements files (default OS temp dir)")
	runCmd.Flags().BoolVar(&runTrace, "trace", false, "write a JSONL trace of the run to the builddeps data directory")
	rootCmd.AddCommand(runCmd)
}
