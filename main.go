package main

import "github.com/strrl/mentorlink/cmd/mentorlink/commands"

func main() {
	commands.Execute()
}
