package main

import "teamboard/cmd/teamboard/commands"

func main() {
	commands.Execute()
}
