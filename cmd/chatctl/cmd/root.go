package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"chatbot-backend/internal/client"
	"chatbot-backend/internal/models"
)

const defaultServerURL = "http://localhost:8080"

var (
	serverURL string
	timeout   time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "chatctl",
	Short: "Command-line client for the chatbot server",
	Long: `chatctl talks to a running chatbot server over its JSON API.

Available commands:
  health    Check that the server is up
  ask       Ask a single question
  recent    List the most recent questions and answers
  chat      Start an interactive chat session

The server address defaults to $CHAT_SERVER_URL, or ` + defaultServerURL + ` when unset.`,
	SilenceUsage: true,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOrDefault("CHAT_SERVER_URL", defaultServerURL), "chat server base URL")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 15*time.Second, "request timeout")
}

func newClient() *client.Client {
	return client.New(serverURL, nil)
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func printMessage(w io.Writer, msg *models.ChatMessage) {
	fmt.Fprintf(w, "[%s] You: %s\n", msg.CreatedAt.Local().Format("15:04:05"), msg.Question)
	fmt.Fprintf(w, "           AI:  %s\n", msg.Answer)
}
