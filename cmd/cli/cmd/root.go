package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "jmctl",
	Short: "Jmctl is a command line tool for the jobmanager API",
	Long: `jmctl is the command-line interface for the jobmanager backend.

Jobmanager keeps multi-tenant bookkeeping of accounts, their users and
the jobs those users own. A job carries a running/stopped status flag
that is flipped by run and stop; nothing is ever executed.

Common workflows:

  Log in and store the token:
    jmctl login admin@example.com --password <password>

  Manage accounts (admin only):
    jmctl accounts create --name "acme"
    jmctl accounts list

  Manage users:
    jmctl users create --email dev@acme.com --password <password> --role dev

  Manage jobs:
    jmctl jobs create --name "nightly-build" --command "make all"
    jmctl jobs run <job-id>
    jmctl jobs list --status running

Configuration:
  Set the API endpoint and credentials via environment variables or a config file:
    JOBMANAGER_URL      API endpoint (default: http://localhost:8080)
    JOBMANAGER_TOKEN    Bearer token for authentication`,
}

func Execute() error {
	return rootCmd.Execute()
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".jmctl"
		viper.AddConfigPath(home)
		viper.SetConfigName(".jmctl")
		viper.SetConfigType("yaml")
	}

	// Read environment variables that match "JOBMANAGER_VARNAME"
	viper.SetEnvPrefix("JOBMANAGER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.jmctl.yaml)")

	rootCmd.PersistentFlags().String("url", "http://localhost:8080", "Jobmanager API URL")
	viper.BindPFlag("url", rootCmd.PersistentFlags().Lookup("url"))

	rootCmd.PersistentFlags().StringP("token", "t", "", "Bearer token for authentication")
	viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))
}

// requireToken fetches the configured token, printing guidance when
// it is absent.
func requireToken(cmd *cobra.Command) (string, bool) {
	token := viper.GetString("token")
	if token == "" {
		cmd.Println("API token not found. Please set it using the --token flag or the JOBMANAGER_TOKEN environment variable")
		return "", false
	}
	return token, true
}
