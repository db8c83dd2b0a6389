package main

import "github.com/plexiform/gdocs-cli/cmd"

func main() {
	cmd.Execute()
}
