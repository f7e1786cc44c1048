package main

import "chatbot-backend/cmd/chatctl/cmd"

func main() {
	cmd.Execute()
}
