package main

import "github.com/panyam/snippet/cmd/snippet/commands"

func main() {
	commands.Execute()
}
