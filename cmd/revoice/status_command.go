package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"revoice/internal/api"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status [job-id]",
		Short: "Show queue state or one job's progress",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				job, err := client.job(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printJobDetail(cmd, job)
				return nil
			}

			summary, err := client.status(cmd.Context())
			if err != nil {
				return err
			}
			jobs, err := client.jobs(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d jobs: %d queued, %d processing, %d completed, %d failed\n",
				summary.Total, summary.Queued, summary.Processing, summary.Completed, summary.Failed)
			if len(jobs) == 0 {
				return nil
			}

			rows := make([][]string, 0, len(jobs))
			for _, job := range jobs {
				rows = append(rows, []string{
					job.ID,
					job.Status,
					fmt.Sprintf("%d%%", job.Progress),
					job.Step,
					job.TargetLanguage,
					formatAge(job.UpdatedAt),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "STATUS", "PROGRESS", "STEP", "TARGET", "UPDATED"},
				rows,
			))
			return nil
		},
	}
	return cmd
}

func printJobDetail(cmd *cobra.Command, job api.JobResponse) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Job:       %s\n", job.ID)
	fmt.Fprintf(out, "Status:    %s (%d%%)\n", job.Status, job.Progress)
	if job.Step != "" {
		fmt.Fprintf(out, "Step:      %s\n", job.Step)
	}
	if job.SourceLanguage != "" {
		fmt.Fprintf(out, "Source:    %s\n", job.SourceLanguage)
	} else if job.DetectedLanguage != "" {
		fmt.Fprintf(out, "Source:    %s (detected)\n", job.DetectedLanguage)
	}
	fmt.Fprintf(out, "Target:    %s\n", job.TargetLanguage)
	if job.OutputPath != "" {
		fmt.Fprintf(out, "Output:    %s\n", job.OutputPath)
	}
	if job.Error != "" {
		fmt.Fprintf(out, "Error:     %s\n", job.Error)
	}
	fmt.Fprintf(out, "Submitted: %s\n", job.CreatedAt.Local().Format(time.RFC1123))
	fmt.Fprintf(out, "Updated:   %s\n", job.UpdatedAt.Local().Format(time.RFC1123))
}

func formatAge(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	age := time.Since(t).Round(time.Second)
	if age < 0 {
		age = 0
	}
	switch {
	case age < time.Minute:
		return fmt.Sprintf("%ds ago", int(age.Seconds()))
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	}
}
