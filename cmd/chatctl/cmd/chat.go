package cmd

import (
	"bufio"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"chatbot-backend/internal/client"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat session.

The last 20 messages are shown first. Each line you type is sent as a
question; an empty line is ignored. End the session with Ctrl-D.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		view := client.NewChatView(newClient(), client.DefaultSeedLimit)

		seedCtx, cancel := context.WithTimeout(cmd.Context(), timeout)
		err := view.Seed(seedCtx)
		cancel()
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "could not load recent messages: %v\n", err)
		}

		messages := view.Messages()
		if len(messages) == 0 {
			fmt.Fprintln(out, "Start a conversation! Type your question below to get started.")
		}
		for _, msg := range messages {
			printMessage(out, msg)
		}

		scanner := bufio.NewScanner(cmd.InOrStdin())
		for {
			fmt.Fprint(out, "> ")
			if !scanner.Scan() {
				fmt.Fprintln(out)
				return scanner.Err()
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			msg, err := view.Submit(ctx, scanner.Text())
			cancel()

			switch {
			case err != nil:
				fmt.Fprintln(out, view.Err())
			case msg != nil:
				printMessage(out, msg)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
