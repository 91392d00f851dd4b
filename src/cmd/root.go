package cmd

import (
	"builddeps/src/internal/bddir"
	"builddeps/src/internal/builddeps"
	"builddeps/src/internal/python"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile    string
	toolPython string
	toolScript string
)

var rootCmd = &cobra.Command{
	Use:   "builddeps",
	Short: "builddeps finds the build dependencies of every package in a requirements file",
	Long: `builddeps reads a pip requirements file and runs pip_find_builddeps.py
once per package, each time against a temporary requirements file holding
just that package. Packages are processed in file order and the run stops at
the first failure.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if code := execute(); code != 0 {
		os.Exit(code)
	}
}

// execute runs the root command and returns the process exit code.
func execute() int {
	if err := rootCmd.Execute(); err != nil {
		reportError(rootCmd.OutOrStdout(), err)
		return 1
	}
	return 0
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is "+bddir.ConfigFile()+")")
	rootCmd.PersistentFlags().StringVar(&toolPython, "python", "", "Python interpreter used to run the helper (default python3, then python)")
	rootCmd.PersistentFlags().StringVar(&toolScript, "script", "", "path to "+python.DefaultScript+" (default ./"+python.DefaultScript+")")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(bddir.MustHome())
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("BUILDDEPS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			pterm.Warning.Printf("Ignoring config file: %v\n", err)
		}
	}
}

// usageArgs prints the command usage when the positional arguments are wrong.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			cmd.Println(cmd.UsageString())
			return err
		}
		return nil
	}
}

func reportError(w io.Writer, err error) {
	var pkgErr *builddeps.PackageError
	switch {
	case errors.Is(err, python.ErrInterpreterNotFound):
		pterm.Error.WithWriter(w).Println(err)
		fmt.Fprintln(w, "Install Python 3, or point --python (or the python setting) at an interpreter.")
	case errors.Is(err, python.ErrToolNotFound):
		pterm.Error.WithWriter(w).Println(err)
		printToolGuidance(w)
	case errors.As(err, &pkgErr):
		pterm.Error.WithWriter(w).Printf("Error finding build dependencies for %s: %v\n", pkgErr.Package, pkgErr.Err)
		pterm.Info.WithWriter(w).Printf("Requirements file for %s kept at %s\n", pkgErr.Package, pkgErr.TempFile)
	default:
		pterm.Error.WithWriter(w).Println(err)
	}
}

func printToolGuidance(w io.Writer) {
	fmt.Fprintf(w, "Download %s with:\n", python.DefaultScript)
	fmt.Fprintf(w, "  curl -LO %s\n", toolURL(""))
	fmt.Fprintf(w, "  chmod +x %s\n", python.DefaultScript)
	fmt.Fprintln(w, "or run: builddeps tool fetch")
}
