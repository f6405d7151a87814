package main

import "github.com/iksnae/chat-explorer/cmd"

func main() {
	cmd.Execute()
}
