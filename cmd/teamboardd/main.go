package main

import "teamboard/cmd/teamboardd/commands"

func main() {
	commands.Execute()
}
