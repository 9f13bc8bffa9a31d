package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quietharbor/quietharbor/internal/crisis"
	"github.com/quietharbor/quietharbor/internal/model"
)

var classifyKeywords string

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().StringVar(&classifyKeywords, "keywords", "", "Path to keyword override YAML")
}

var classifyCmd = &cobra.Command{
	Use:   "classify <message>",
	Short: "Classify a message for crisis indicators",
	Long:  "Runs the crisis classifier on a message and prints the result as JSON.\nNo reply is generated and nothing is persisted.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	path := classifyKeywords
	if path == "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path = cfg.KeywordsPath
	}

	detector, err := crisis.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load keywords: %w", err)
	}

	cls := detector.Classify(strings.Join(args, " "))

	result := struct {
		model.Classification
		Resources []crisis.Resource `json:"resources,omitempty"`
	}{Classification: cls}
	if cls.Detected {
		result.Resources = crisis.Resources()
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
