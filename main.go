package main

import "github.com/applywise/applywise-cli/cmd"

func main() {
	cmd.Execute()
}
