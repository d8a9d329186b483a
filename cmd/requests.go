package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Rorical/BloodDesk/internal/backend"
	"github.com/Rorical/BloodDesk/internal/logging"
)

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "List pending blood requests",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		logger, closeLog, err := logging.New(cfg.GetLogLevel(), cfg.GetLogFormat(), cfg.GetLogFile())
		if err != nil {
			log.Fatalf("Failed to open log: %v", err)
		}
		defer closeLog()

		be, describe, err := backend.FromConfig(cfg, logger)
		if err != nil {
			log.Fatalf("Failed to create backend: %v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		requests, err := be.ListPending(ctx)
		if err != nil {
			log.Fatalf("Failed to list requests: %v", err)
		}

		fmt.Printf("Backend: %s\n\n", describe)
		if len(requests) == 0 {
			fmt.Println("No pending requests")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tHOSPITAL\tGROUP\tUNITS\tURGENCY\tREQUESTED")
		for _, r := range requests {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
				r.Code, r.Hospital, r.BloodGroup, r.Units, r.Urgency, r.RequestedAt.Format(time.DateTime))
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(requestsCmd)
}
