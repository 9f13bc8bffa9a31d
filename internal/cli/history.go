package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quietharbor/quietharbor/internal/model"
	"github.com/quietharbor/quietharbor/internal/store"
)

var historyConversation int64

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().Int64Var(&historyConversation, "conversation", 0, "Show messages for a conversation id instead of the listing")
}

var historyCmd = &cobra.Command{
	Use:   "history <username>",
	Short: "List a user's conversations or show one conversation's messages",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	user, err := st.GetUserByUsername(ctx, args[0])
	if err != nil {
		return err
	}

	if historyConversation > 0 {
		return printMessages(ctx, st, user.ID, historyConversation)
	}

	convs, err := st.UserConversations(ctx, user.ID)
	if err != nil {
		return err
	}
	if len(convs) == 0 {
		fmt.Printf("No conversations for %s\n", user.Username)
		return nil
	}

	fmt.Printf("Conversations for %s:\n\n", user.Username)
	for _, c := range convs {
		status := "active"
		if !c.IsActive {
			status = "ended"
		}
		crisis := ""
		if c.CrisisDetected {
			crisis = "  [crisis detected]"
		}
		fmt.Printf("  %d  %s  started %s  (%s)%s\n",
			c.ID, c.Title, c.StartedAt.Format("2006-01-02 15:04"), status, crisis)
	}
	return nil
}

func printMessages(ctx context.Context, st *store.Store, userID, conversationID int64) error {
	conv, err := st.GetConversation(ctx, conversationID)
	if err != nil {
		return err
	}
	if conv.UserID != userID {
		return fmt.Errorf("conversation %d belongs to another user", conversationID)
	}

	msgs, err := st.Messages(ctx, conversationID, 0)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%d messages)\n\n", conv.Title, len(msgs))
	for _, m := range msgs {
		tag := ""
		if m.CrisisLevel != model.SeverityNone {
			tag = fmt.Sprintf("  [crisis: %s]", m.CrisisLevel)
		}
		fmt.Printf("[%s] %s: %s%s\n", m.CreatedAt.Format("15:04:05"), m.Role, m.Content, tag)
	}
	return nil
}
