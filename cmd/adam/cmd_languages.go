package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLanguagesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the languages in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, closeFn, err := a.openLoader(cmd.Context(), a.logger)
			if err != nil {
				return err
			}
			defer closeFn()

			langs, err := loader.ListLanguages(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list languages: %w", err)
			}
			for _, lang := range langs {
				fmt.Fprintln(cmd.OutOrStdout(), lang)
			}
			return nil
		},
	}
}
