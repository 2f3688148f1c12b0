package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend availability",
	Long:  `Query the backend's health endpoint and report which integrations are configured.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := client.HealthCheck(cmd.Context())
		if err != nil {
			return err
		}
		output(status, func() {
			fmt.Println()
			label("status", status.Status)
			label("service", status.Service)
			label("version", status.Version)
			for name, ok := range status.Config {
				mark := "missing"
				if ok {
					mark = "configured"
				}
				label(name, mark)
			}
			fmt.Println()
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
