package main

import "github.com/linescope/linescope/cmd"

func main() {
	cmd.Execute()
}
