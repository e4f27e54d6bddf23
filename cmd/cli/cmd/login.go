package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Log in and print a bearer token",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		email := args[0]
		if loginPassword == "" {
			cmd.Println("Password is required. Set it with the --password flag")
			return
		}

		client := NewAPIClient(viper.GetString("url"), "")
		token, err := client.Login(email, loginPassword)
		if err != nil {
			cmd.Printf("Login failed: %v\n", err)
			return
		}

		cmd.Printf("Logged in as %s\n", email)
		cmd.Printf("export JOBMANAGER_TOKEN=%s\n", token.AccessToken)
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Password for the given email")
	rootCmd.AddCommand(loginCmd)
}
