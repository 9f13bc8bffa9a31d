package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(resourcesCmd)
}

var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "Print crisis support resources",
	Run: func(cmd *cobra.Command, args []string) {
		printResources()
	},
}
