package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quietharbor/quietharbor/internal/agent"
)

var strategiesType string

func init() {
	rootCmd.AddCommand(strategiesCmd)
	strategiesCmd.Flags().StringVar(&strategiesType, "type", "general", "Concern type: "+strings.Join(agent.IssueTypes(), ", "))
}

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "Print coping strategies for a concern",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Coping strategies (%s):\n\n", strategiesType)
		for i, s := range agent.CopingStrategies(strategiesType) {
			fmt.Printf("  %d. %s\n", i+1, s)
		}
		fmt.Println()
	},
}
