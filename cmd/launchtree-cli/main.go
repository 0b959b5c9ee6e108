package main

import "launchtree/cmd/launchtree-cli/cmd"

func main() {
	cmd.Execute()
}
