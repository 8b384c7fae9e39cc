package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list-sites",
	Short: "List available sites",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, closeStore, err := openRegistry()
		if err != nil {
			return err
		}
		defer closeStore()

		for _, name := range reg.Names() {
			fmt.Fprintln(os.Stdout, name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
