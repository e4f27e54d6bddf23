package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"jobmanager/pkg/api"
)

var (
	userEmail     string
	userPassword  string
	userRole      string
	userAccountID string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage users",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List visible users",
	Run: func(cmd *cobra.Command, args []string) {
		token, ok := requireToken(cmd)
		if !ok {
			return
		}

		client := NewAPIClient(viper.GetString("url"), token)
		users, err := client.ListUsers()
		if err != nil {
			cmd.Printf("Failed to list users: %v\n", err)
			return
		}

		for _, u := range users {
			cmd.Printf("%s  %-32s  %-10s  active=%t\n", u.ID, u.Email, u.Role, u.IsActive)
		}
	},
}

var usersGetCmd = &cobra.Command{
	Use:   "get [user_id]",
	Short: "Show a single user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		token, ok := requireToken(cmd)
		if !ok {
			return
		}

		client := NewAPIClient(viper.GetString("url"), token)
		user, err := client.GetUser(args[0])
		if err != nil {
			cmd.Printf("Failed to get user: %v\n", err)
			return
		}

		cmd.Printf("ID:      %s\nEmail:   %s\nRole:    %s\nActive:  %t\nAccount: %s\n",
			user.ID, user.Email, user.Role, user.IsActive, user.AccountID)
	},
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new user",
	Run: func(cmd *cobra.Command, args []string) {
		token, ok := requireToken(cmd)
		if !ok {
			return
		}
		if userEmail == "" || userPassword == "" || userRole == "" {
			cmd.Println("Email, password and role are required. Set them with --email, --password and --role")
			return
		}

		client := NewAPIClient(viper.GetString("url"), token)
		user, err := client.CreateUser(api.CreateUserRequest{
			Email:     userEmail,
			Password:  userPassword,
			Role:      userRole,
			AccountID: userAccountID,
		})
		if err != nil {
			cmd.Printf("Failed to create user: %v\n", err)
			return
		}

		cmd.Printf("User created!\nID: %s\n", user.ID)
	},
}

var usersActivateCmd = &cobra.Command{
	Use:   "activate [user_id]",
	Short: "Activate a user",
	Args:  cobra.ExactArgs(1),
	Run:   func(cmd *cobra.Command, args []string) { setUserActive(cmd, args[0], true) },
}

var usersDeactivateCmd = &cobra.Command{
	Use:   "deactivate [user_id]",
	Short: "Deactivate a user",
	Args:  cobra.ExactArgs(1),
	Run:   func(cmd *cobra.Command, args []string) { setUserActive(cmd, args[0], false) },
}

func setUserActive(cmd *cobra.Command, id string, active bool) {
	token, ok := requireToken(cmd)
	if !ok {
		return
	}

	client := NewAPIClient(viper.GetString("url"), token)
	user, err := client.SetUserActive(id, active)
	if err != nil {
		cmd.Printf("Failed to update user: %v\n", err)
		return
	}
	cmd.Printf("User %s active=%t\n", user.ID, user.IsActive)
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete [user_id]",
	Short: "Delete a user and their jobs",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		token, ok := requireToken(cmd)
		if !ok {
			return
		}

		client := NewAPIClient(viper.GetString("url"), token)
		if err := client.DeleteUser(args[0]); err != nil {
			cmd.Printf("Failed to delete user: %v\n", err)
			return
		}
		cmd.Println("User deleted")
	},
}

func init() {
	usersCreateCmd.Flags().StringVar(&userEmail, "email", "", "User email address")
	usersCreateCmd.Flags().StringVar(&userPassword, "password", "", "User password")
	usersCreateCmd.Flags().StringVar(&userRole, "role", "", "User role: dev, maintainer or admin")
	usersCreateCmd.Flags().StringVar(&userAccountID, "account", "", "Target account ID (admin only; defaults to your account)")

	usersCmd.AddCommand(usersListCmd, usersGetCmd, usersCreateCmd, usersActivateCmd, usersDeactivateCmd, usersDeleteCmd)
	rootCmd.AddCommand(usersCmd)
}
