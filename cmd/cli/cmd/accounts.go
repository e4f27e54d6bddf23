package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"jobmanager/pkg/api"
)

var (
	accountName   string
	accountGlobal bool
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Manage accounts (admin only)",
}

var accountsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all accounts",
	Run: func(cmd *cobra.Command, args []string) {
		token, ok := requireToken(cmd)
		if !ok {
			return
		}

		client := NewAPIClient(viper.GetString("url"), token)
		accounts, err := client.ListAccounts()
		if err != nil {
			cmd.Printf("Failed to list accounts: %v\n", err)
			return
		}

		for _, a := range accounts {
			cmd.Printf("%s  %-24s  active=%t  global=%t\n", a.ID, a.Name, a.IsActive, a.IsGlobal)
		}
	},
}

var accountsGetCmd = &cobra.Command{
	Use:   "get [account_id]",
	Short: "Show a single account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		token, ok := requireToken(cmd)
		if !ok {
			return
		}

		client := NewAPIClient(viper.GetString("url"), token)
		account, err := client.GetAccount(args[0])
		if err != nil {
			cmd.Printf("Failed to get account: %v\n", err)
			return
		}

		cmd.Printf("ID:     %s\nName:   %s\nActive: %t\nGlobal: %t\n", account.ID, account.Name, account.IsActive, account.IsGlobal)
	},
}

var accountsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new account",
	Run: func(cmd *cobra.Command, args []string) {
		token, ok := requireToken(cmd)
		if !ok {
			return
		}
		if accountName == "" {
			cmd.Println("Account name is required. Set it with the --name flag")
			return
		}

		client := NewAPIClient(viper.GetString("url"), token)
		account, err := client.CreateAccount(api.CreateAccountRequest{
			Name:     accountName,
			IsGlobal: accountGlobal,
		})
		if err != nil {
			cmd.Printf("Failed to create account: %v\n", err)
			return
		}

		cmd.Printf("Account created!\nID: %s\n", account.ID)
	},
}

var accountsActivateCmd = &cobra.Command{
	Use:   "activate [account_id]",
	Short: "Activate an account",
	Args:  cobra.ExactArgs(1),
	Run:   func(cmd *cobra.Command, args []string) { setAccountActive(cmd, args[0], true) },
}

var accountsDeactivateCmd = &cobra.Command{
	Use:   "deactivate [account_id]",
	Short: "Deactivate an account",
	Args:  cobra.ExactArgs(1),
	Run:   func(cmd *cobra.Command, args []string) { setAccountActive(cmd, args[0], false) },
}

func setAccountActive(cmd *cobra.Command, id string, active bool) {
	token, ok := requireToken(cmd)
	if !ok {
		return
	}

	client := NewAPIClient(viper.GetString("url"), token)
	account, err := client.SetAccountActive(id, active)
	if err != nil {
		cmd.Printf("Failed to update account: %v\n", err)
		return
	}
	cmd.Printf("Account %s active=%t\n", account.ID, account.IsActive)
}

var accountsDeleteCmd = &cobra.Command{
	Use:   "delete [account_id]",
	Short: "Delete an account and everything in it",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		token, ok := requireToken(cmd)
		if !ok {
			return
		}

		client := NewAPIClient(viper.GetString("url"), token)
		if err := client.DeleteAccount(args[0]); err != nil {
			cmd.Printf("Failed to delete account: %v\n", err)
			return
		}
		cmd.Println("Account deleted")
	},
}

func init() {
	accountsCreateCmd.Flags().StringVar(&accountName, "name", "", "Account name")
	accountsCreateCmd.Flags().BoolVar(&accountGlobal, "global", false, "Create a global (admin) account")

	accountsCmd.AddCommand(accountsListCmd, accountsGetCmd, accountsCreateCmd, accountsActivateCmd, accountsDeactivateCmd, accountsDeleteCmd)
	rootCmd.AddCommand(accountsCmd)
}
