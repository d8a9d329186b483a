package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Rorical/BloodDesk/internal/backend"
	"github.com/Rorical/BloodDesk/internal/logging"
	"github.com/Rorical/BloodDesk/internal/rejection"
)

var (
	rejectReason string
	rejectQuick  int
)

var rejectCmd = &cobra.Command{
	Use:   "reject [request-code]",
	Short: "Reject a pending blood request",
	Long: `Reject a pending blood request with a free-text reason or one of the quick reasons:
` + quickReasonHelp(),
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		code := args[0]
		if rejectQuick != 0 && cmd.Flags().Changed("reason") {
			log.Fatalf("Use either --reason or --quick, not both")
		}

		cfg := mustLoadConfig()

		logger, closeLog, err := logging.New(cfg.GetLogLevel(), cfg.GetLogFormat(), cfg.GetLogFile())
		if err != nil {
			log.Fatalf("Failed to open log: %v", err)
		}
		defer closeLog()

		be, _, err := backend.FromConfig(cfg, logger)
		if err != nil {
			log.Fatalf("Failed to create backend: %v", err)
		}

		// The workflow swallows confirmation failures, keep our own copy for the exit code
		var rejectErr error
		confirmer := rejection.ConfirmFunc(func(ctx context.Context, reason string) error {
			rejectErr = be.Reject(ctx, code, reason)
			return rejectErr
		})
		notifier := rejection.NotifyFunc(func(message string) {
			fmt.Fprintf(os.Stderr, "✗ %s\n", message)
		})
		workflow := rejection.NewWorkflow(code, confirmer, nil, notifier, logger)

		if rejectQuick != 0 {
			if !workflow.SelectQuickReason(rejection.QuickReason(rejectQuick - 1)) {
				log.Fatalf("Unknown quick reason %d, pick 1-%d", rejectQuick, len(rejection.QuickReasons()))
			}
		} else {
			workflow.UpdateDraft(rejectReason)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := workflow.Submit(ctx); err != nil {
			closeLog()
			os.Exit(1)
		}
		if rejectErr != nil {
			closeLog()
			log.Fatalf("Failed to reject %s: %v", code, rejectErr)
		}

		fmt.Printf("Request %s rejected\n", code)
	},
}

func quickReasonHelp() string {
	var b strings.Builder
	for i, text := range rejection.QuickReasons() {
		fmt.Fprintf(&b, "  %d  %s\n", i+1, text)
	}
	return b.String()
}

func init() {
	rejectCmd.Flags().StringVarP(&rejectReason, "reason", "r", "", "Reason for rejection (at least 5 characters)")
	rejectCmd.Flags().IntVarP(&rejectQuick, "quick", "q", 0, "Use quick reason number 1-4")
	rootCmd.AddCommand(rejectCmd)
}
