package main

import "helix-lamp/cmd"

func main() {
	cmd.Execute()
}
