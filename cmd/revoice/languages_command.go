package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLanguagesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List languages available for dubbing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}
			langs, err := client.languages(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(langs))
			for _, lang := range langs {
				rows = append(rows, []string{lang.Code, lang.Name})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"CODE", "LANGUAGE"}, rows))
			return nil
		},
	}
}
