package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/Rorical/BloodDesk/internal/app"
	"github.com/Rorical/BloodDesk/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "blooddesk",
	Short: "Blood request desk for blood-bank staff",
	Long:  `BloodDesk lists pending hospital blood requests and lets blood-bank staff reject them with a reason.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		runApplication(cfg)
	},
}

func runApplication(cfg *config.Config) {
	application, err := app.NewApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}
	defer application.Stop()

	if err := application.Start(); err != nil {
		log.Printf("Application error: %v", err)
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution error: %v", err)
		os.Exit(1)
	}
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(profileCmd)
}
