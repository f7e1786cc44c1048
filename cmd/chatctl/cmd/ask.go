package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a single question and print the answer",
	Long: `Ask a single question and print the stored record.

Examples:
  chatctl ask "What is the meaning of life?"
  chatctl ask what is go`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		msg, err := newClient().AskQuestion(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		printMessage(cmd.OutOrStdout(), msg)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
