package main

import "github.com/dost-cli/dost/internal/commands"

func main() {
	commands.Execute()
}
