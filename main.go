package main

import "evnex-cli/cmd"

func main() {
	cmd.Execute()
}
