package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/Rorical/BloodDesk/internal/config"
)

var useCmd = &cobra.Command{
	Use:   "use [profile-name]",
	Short: "Switch to a profile and open the desk",
	Long:  `Switch to the specified backend profile and immediately open the request desk.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		if err := cfg.Activate(args[0]); err != nil {
			log.Fatalf("Failed to switch profile: %v", err)
		}

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		runApplication(cfg)
	},
}

func init() {
	rootCmd.AddCommand(useCmd)
}
