package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quietharbor/quietharbor/internal/agent"
	"github.com/quietharbor/quietharbor/internal/audit"
	"github.com/quietharbor/quietharbor/internal/crisis"
	"github.com/quietharbor/quietharbor/internal/llm"
	"github.com/quietharbor/quietharbor/internal/model"
	"github.com/quietharbor/quietharbor/internal/sentiment"
	"github.com/quietharbor/quietharbor/internal/store"
)

// chatHistoryWindow caps replayed context to avoid token limits.
const chatHistoryWindow = 10

var chatUser string

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVar(&chatUser, "user", "", "Username for the session (prompted if omitted)")
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive support conversation",
	Long:  "Runs a conversational session on the terminal. Messages are screened for\ncrisis indicators; detections print the resource listing and are appended\nto the tamper-evident safety log.\n\nIn-session commands: 'strategies', 'crisis', 'quit'/'exit'/'bye'.",
	RunE:  runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	completer, err := llm.NewOpenAI(cfg)
	if err != nil {
		return err
	}

	detector, err := crisis.Load(cfg.KeywordsPath)
	if err != nil {
		return fmt.Errorf("failed to load keywords: %w", err)
	}

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer st.Close()

	auditLog, err := audit.Open(cfg.AuditLogPath)
	if err != nil {
		return fmt.Errorf("failed to open safety log: %w", err)
	}
	defer auditLog.Close()

	ag := agent.New(completer, detector, sentiment.NewDefault(), cfg.Model, nil)

	printWelcome()

	reader := bufio.NewScanner(os.Stdin)

	username := strings.TrimSpace(chatUser)
	if username == "" {
		fmt.Print("Please enter your name (or a nickname): ")
		if reader.Scan() {
			username = strings.TrimSpace(reader.Text())
		}
		if username == "" {
			username = "Anonymous"
		}
	}

	ctx := context.Background()
	user, err := st.GetOrCreateUser(ctx, username, "")
	if err != nil {
		return fmt.Errorf("failed to resolve user: %w", err)
	}
	conv, err := st.StartConversation(ctx, user.ID, "")
	if err != nil {
		return fmt.Errorf("failed to start conversation: %w", err)
	}
	defer st.EndConversation(ctx, conv.ID)

	sess, err := st.CreateSession(ctx, user.ID, conv.ID, 0)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	defer st.EndSession(ctx, sess.SessionID)

	fmt.Printf("\nHello %s! How are you feeling today?\n\n", username)

	var history []model.Turn

	for {
		fmt.Print("You: ")
		if !reader.Scan() {
			fmt.Println()
			return nil
		}
		input := strings.TrimSpace(reader.Text())
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "quit", "exit", "bye":
			fmt.Println("\nAgent: Take care of yourself. Remember, seeking help is a sign of strength, not weakness. I hope our conversation was helpful.")
			return nil
		case "crisis":
			printResources()
			continue
		case "strategies":
			fmt.Println("\nAgent: Here are some coping strategies:")
			for i, s := range agent.CopingStrategies("general") {
				fmt.Printf("  %d. %s\n", i+1, s)
			}
			fmt.Println()
			continue
		}

		reply, err := ag.Respond(ctx, input, history)
		if err != nil {
			return err
		}

		score := reply.Sentiment.Score
		if _, err := st.AddMessage(ctx, conv.ID, model.RoleUser, input, &score, reply.Crisis.Level); err != nil {
			return fmt.Errorf("failed to store message: %w", err)
		}

		if reply.Crisis.Detected {
			fmt.Println("\n⚠  CRISIS ALERT DETECTED ⚠")
			printResources()
			if err := auditLog.Record(audit.Event{
				SessionID:      sess.SessionID,
				ConversationID: conv.ID,
				Level:          reply.Crisis.Level,
				Keywords:       reply.Crisis.Keywords,
				Confidence:     reply.Crisis.Confidence,
				Model:          reply.Model,
			}); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to append safety log event: %v\n", err)
			}
		}

		fmt.Printf("\nAgent: %s\n\n", reply.Response)

		if _, err := st.AddMessage(ctx, conv.ID, model.RoleAssistant, reply.Response, nil, model.SeverityNone); err != nil {
			return fmt.Errorf("failed to store response: %w", err)
		}

		history = append(history,
			model.Turn{Role: model.RoleUser, Content: input},
			model.Turn{Role: model.RoleAssistant, Content: reply.Response},
		)
		if len(history) > chatHistoryWindow {
			history = history[len(history)-chatHistoryWindow:]
		}
	}
}

func printWelcome() {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("    quietharbor - supportive conversation")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()
	fmt.Println("Welcome! I'm here to listen and support you.")
	fmt.Println("This is a safe space to share your feelings.")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  - Type your message to chat")
	fmt.Println("  - Type 'strategies' for coping strategies")
	fmt.Println("  - Type 'crisis' for emergency resources")
	fmt.Println("  - Type 'quit' or 'exit' to end the session")
	fmt.Println()
	fmt.Println("IMPORTANT: If you're in immediate danger, call emergency services (911)")
	fmt.Println("or the crisis hotline at 988 (US)")
	fmt.Println()
}

func printResources() {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("    CRISIS RESOURCES")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()
	fmt.Println("If you're experiencing a mental health crisis:")
	fmt.Println()
	for _, r := range crisis.Resources() {
		fmt.Printf("  - %s: %s\n", r.Name, r.Contact)
	}
	fmt.Println()
	fmt.Println("You are not alone. Help is available 24/7.")
	fmt.Println()
}
