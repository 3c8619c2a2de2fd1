package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"revoice/internal/api"
	"revoice/internal/config"
)

func newSubmitCommand(ctx *commandContext) *cobra.Command {
	var fromLang string
	var toLang string

	cmd := &cobra.Command{
		Use:   "submit <video-file>",
		Short: "Queue a video for dubbing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if toLang == "" {
				return fmt.Errorf("--to is required")
			}
			inputPath, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			client, err := ctx.client()
			if err != nil {
				return err
			}
			job, err := client.submit(cmd.Context(), api.SubmitRequest{
				InputPath:      inputPath,
				SourceLanguage: fromLang,
				TargetLanguage: toLang,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !isTerminal(out) {
				// Keep piped output scriptable.
				fmt.Fprintln(out, job.ID)
				return nil
			}
			fmt.Fprintf(out, "Job %s queued\n", job.ID)
			fmt.Fprintf(out, "  target language: %s\n", job.TargetLanguage)
			if job.SourceLanguage != "" {
				fmt.Fprintf(out, "  source language: %s\n", job.SourceLanguage)
			} else {
				fmt.Fprintln(out, "  source language: auto-detect")
			}
			fmt.Fprintf(out, "Track it with: revoice status %s\n", job.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&fromLang, "from", "", "Source language code (detected when omitted)")
	cmd.Flags().StringVar(&toLang, "to", "", "Target language code")
	return cmd
}
