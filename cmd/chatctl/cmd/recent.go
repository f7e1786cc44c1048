package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	recentLimit int
	recentJSON  bool
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List the most recent questions and answers, newest first",
	Long: `List the most recent questions and answers, newest first.

Examples:
  chatctl recent                 # server default (10)
  chatctl recent --limit 50
  chatctl recent --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		messages, err := newClient().GetRecentMessages(ctx, recentLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if recentJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(messages)
		}

		if len(messages) == 0 {
			fmt.Fprintln(out, "No messages yet.")
			return nil
		}
		for _, msg := range messages {
			printMessage(out, msg)
		}
		return nil
	},
}

func init() {
	recentCmd.Flags().IntVar(&recentLimit, "limit", 0, "number of messages to list (1-100, 0 for the server default)")
	recentCmd.Flags().BoolVar(&recentJSON, "json", false, "print JSON instead of text")
	rootCmd.AddCommand(recentCmd)
}
