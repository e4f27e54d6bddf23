package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"jobmanager/pkg/api"
)

var (
	jobName      string
	jobCommand   string
	jobStatus    string
	jobListScope string
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Manage jobs",
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List jobs in the account scope",
	Run: func(cmd *cobra.Command, args []string) {
		token, ok := requireToken(cmd)
		if !ok {
			return
		}

		client := NewAPIClient(viper.GetString("url"), token)
		jobs, err := client.ListJobs(jobListScope, jobStatus)
		if err != nil {
			cmd.Printf("Failed to list jobs: %v\n", err)
			return
		}

		for _, j := range jobs {
			cmd.Printf("%s  %-24s  %-8s  %s\n", j.ID, j.Name, j.Status, j.Command)
		}
	},
}

var jobsGetCmd = &cobra.Command{
	Use:   "get [job_id]",
	Short: "Show a single job",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		token, ok := requireToken(cmd)
		if !ok {
			return
		}

		client := NewAPIClient(viper.GetString("url"), token)
		job, err := client.GetJob(args[0])
		if err != nil {
			cmd.Printf("Failed to get job: %v\n", err)
			return
		}

		cmd.Printf("ID:      %s\nName:    %s\nCommand: %s\nStatus:  %s\nOwner:   %s\n",
			job.ID, job.Name, job.Command, job.Status, job.OwnerID)
	},
}

var jobsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new job owned by you",
	Run: func(cmd *cobra.Command, args []string) {
		token, ok := requireToken(cmd)
		if !ok {
			return
		}
		if jobName == "" || jobCommand == "" {
			cmd.Println("Job name and command are required. Set them with --name and --command")
			return
		}

		client := NewAPIClient(viper.GetString("url"), token)
		job, err := client.CreateJob(api.CreateJobRequest{
			Name:    jobName,
			Command: jobCommand,
			Status:  jobStatus,
		})
		if err != nil {
			cmd.Printf("Failed to create job: %v\n", err)
			return
		}

		cmd.Printf("Job created!\nID: %s\nStatus: %s\n", job.ID, job.Status)
	},
}

var jobsRunCmd = &cobra.Command{
	Use:   "run [job_id]",
	Short: "Flag a job as running",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		token, ok := requireToken(cmd)
		if !ok {
			return
		}

		client := NewAPIClient(viper.GetString("url"), token)
		job, err := client.RunJob(args[0])
		if err != nil {
			cmd.Printf("Failed to run job: %v\n", err)
			return
		}
		cmd.Printf("Job %s is now %s\n", job.ID, job.Status)
	},
}

var jobsStopCmd = &cobra.Command{
	Use:   "stop [job_id]",
	Short: "Flag a job as stopped",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		token, ok := requireToken(cmd)
		if !ok {
			return
		}

		client := NewAPIClient(viper.GetString("url"), token)
		job, err := client.StopJob(args[0])
		if err != nil {
			cmd.Printf("Failed to stop job: %v\n", err)
			return
		}
		cmd.Printf("Job %s is now %s\n", job.ID, job.Status)
	},
}

var jobsDeleteCmd = &cobra.Command{
	Use:   "delete [job_id]",
	Short: "Delete a job",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		token, ok := requireToken(cmd)
		if !ok {
			return
		}

		client := NewAPIClient(viper.GetString("url"), token)
		if err := client.DeleteJob(args[0]); err != nil {
			cmd.Printf("Failed to delete job: %v\n", err)
			return
		}
		cmd.Println("Job deleted")
	},
}

func init() {
	jobsListCmd.Flags().StringVar(&jobListScope, "scope", "account", "Listing scope: account, own or all")
	jobsListCmd.Flags().StringVar(&jobStatus, "status", "", "Filter by status: running or stopped")

	jobsCreateCmd.Flags().StringVar(&jobName, "name", "", "Job name")
	jobsCreateCmd.Flags().StringVar(&jobCommand, "command", "", "Job command line")
	jobsCreateCmd.Flags().StringVar(&jobStatus, "status", "", "Initial status (default stopped)")

	jobsCmd.AddCommand(jobsListCmd, jobsGetCmd, jobsCreateCmd, jobsRunCmd, jobsStopCmd, jobsDeleteCmd)
	rootCmd.AddCommand(jobsCmd)
}
