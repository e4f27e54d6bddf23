package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the server version",
	Run: func(cmd *cobra.Command, args []string) {
		client := NewAPIClient(viper.GetString("url"), viper.GetString("token"))
		version, err := client.Version()
		if err != nil {
			cmd.Printf("Failed to get version: %v\n", err)
			return
		}
		cmd.Printf("jobmanager server %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
