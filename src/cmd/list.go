package cmd

import (
	"builddeps/src/internal/requirements"
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list <requirements_file>",
	Short: "List the packages run would process, without running anything",
	Args:  usageArgs(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		pkgs, err := requirements.ParseFile(afero.NewOsFs(), args[0])
		if err != nil {
			return fmt.Errorf("read requirements file %s: %w", args[0], err)
		}
		if len(pkgs) == 0 {
			pterm.Info.WithWriter(cmd.OutOrStdout()).Printf("No packages in %s\n", args[0])
			return nil
		}
		data := pterm.TableData{{"#", "Package"}}
		for i, p := range pkgs {
			data = append(data, []string{strconv.Itoa(i + 1), p})
		}
		return pterm.DefaultTable.WithHasHeader().WithWriter(cmd.OutOrStdout()).WithData(data).Render()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
