package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quietharbor/quietharbor/internal/audit"
	"github.com/quietharbor/quietharbor/internal/model"
)

var (
	tailLines int
	tailLevel string
)

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditVerifyCmd)
	auditCmd.AddCommand(auditTailCmd)
	auditTailCmd.Flags().IntVarP(&tailLines, "lines", "n", 10, "Number of recent entries to show")
	auditTailCmd.Flags().StringVar(&tailLevel, "level", "", "Minimum severity to show (medium, high, critical)")
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Safety log operations",
	Long:  "Commands for verifying and inspecting the hash-chained safety log.",
}

var auditVerifyCmd = &cobra.Command{
	Use:   "verify [path]",
	Short: "Verify hash chain integrity of a safety log",
	Long:  "Walks the JSONL safety log and validates that every entry's prev_hash\nmatches the SHA-256 of the previous entry. Exits 0 if valid, 1 if tampered.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAuditVerify,
}

var auditTailCmd = &cobra.Command{
	Use:   "tail [path]",
	Short: "Show recent safety log entries",
	Long:  "Reads the last N entries from the JSONL safety log and pretty-prints them.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAuditTail,
}

func auditPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	return cfg.AuditLogPath, nil
}

func runAuditVerify(cmd *cobra.Command, args []string) error {
	path, err := auditPath(args)
	if err != nil {
		return err
	}

	result := audit.Verify(path)
	if result.Valid {
		fmt.Printf("OK: %d entries verified\n", result.Lines)
		return nil
	}
	fmt.Fprintf(os.Stderr, "FAILED at line %d: %s\n", result.ErrorLine, result.Error)
	os.Exit(1)
	return nil
}

func runAuditTail(cmd *cobra.Command, args []string) error {
	path, err := auditPath(args)
	if err != nil {
		return err
	}

	events, err := audit.Tail(path, tailLines)
	if err != nil {
		return fmt.Errorf("read safety log: %w", err)
	}
	if tailLevel != "" {
		events = audit.FilterMin(events, model.ParseSeverity(tailLevel))
	}

	for _, ev := range events {
		out, _ := json.MarshalIndent(ev, "", "  ")
		fmt.Println(string(out))
	}
	return nil
}
