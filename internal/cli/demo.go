package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quietharbor/quietharbor/internal/crisis"
	"github.com/quietharbor/quietharbor/internal/model"
	"github.com/quietharbor/quietharbor/internal/sentiment"
	"github.com/quietharbor/quietharbor/internal/store"
)

func init() {
	rootCmd.AddCommand(demoCmd)
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Demonstrate classification, sentiment, and storage without an API key",
	RunE:  runDemo,
}

func runDemo(cmd *cobra.Command, args []string) error {
	demoCrisisDetection()
	demoSentimentAnalysis()
	return demoStorage()
}

func demoCrisisDetection() {
	printHeader("CRISIS DETECTION DEMO")

	detector := crisis.NewDefault()

	messages := []struct {
		text string
		desc string
	}{
		{"I'm having a bad day", "Normal message"},
		{"I feel hopeless and worthless", "Medium-risk message"},
		{"I've been cutting myself", "High-risk message"},
		{"I want to kill myself", "Critical message"},
	}

	for _, m := range messages {
		cls := detector.Classify(m.text)
		fmt.Printf("Message: %q\n", m.text)
		fmt.Printf("Description: %s\n", m.desc)
		fmt.Printf("Crisis Detected: %v\n", cls.Detected)
		fmt.Printf("Level: %s\n", cls.Level)
		if cls.Detected {
			fmt.Printf("Keywords Found: %s\n", strings.Join(cls.Keywords, ", "))
			fmt.Printf("Confidence: %.1f\n", cls.Confidence)
		}
		fmt.Println()
	}
}

func demoSentimentAnalysis() {
	printHeader("SENTIMENT ANALYSIS DEMO")

	analyzer := sentiment.NewDefault()

	messages := []string{
		"I'm feeling happy and grateful today",
		"Everything is terrible and I'm so sad",
		"Just a regular day at work",
		"I'm excited but also a bit worried",
	}

	for _, m := range messages {
		result := analyzer.Analyze(m)
		fmt.Printf("Message: %q\n", m)
		fmt.Printf("Sentiment: %s\n", strings.ToUpper(string(result.Label)))
		fmt.Printf("Score: %.2f\n", result.Score)
		fmt.Printf("Positive words: %d, Negative words: %d\n", result.PositiveCount, result.NegativeCount)
		fmt.Println()
	}
}

func demoStorage() error {
	printHeader("STORAGE DEMO")

	dir, err := os.MkdirTemp("", "quietharbor-demo-*")
	if err != nil {
		return fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	st, err := store.Open(filepath.Join(dir, "demo.db"))
	if err != nil {
		return fmt.Errorf("failed to open demo database: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	user, err := st.GetOrCreateUser(ctx, "demo_user", "")
	if err != nil {
		return err
	}
	fmt.Printf("Created user: %s (id %d)\n", user.Username, user.ID)

	conv, err := st.StartConversation(ctx, user.ID, "Demo conversation")
	if err != nil {
		return err
	}
	fmt.Printf("Started conversation: %q (id %d)\n", conv.Title, conv.ID)

	score := -0.33
	if _, err := st.AddMessage(ctx, conv.ID, model.RoleUser, "I feel hopeless and worthless", &score, model.SeverityMedium); err != nil {
		return err
	}
	if _, err := st.AddMessage(ctx, conv.ID, model.RoleAssistant, "That sounds really heavy. I'm here to listen.", nil, model.SeverityNone); err != nil {
		return err
	}

	msgs, err := st.Messages(ctx, conv.ID, 0)
	if err != nil {
		return err
	}
	fmt.Printf("Stored %d messages\n", len(msgs))

	flagged, err := st.GetConversation(ctx, conv.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Conversation crisis flag: %v\n", flagged.CrisisDetected)
	fmt.Println()
	return nil
}

func printHeader(title string) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println(title)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()
}
