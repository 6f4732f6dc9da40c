package main

import "shopscore/cmd"

func main() {
	cmd.Execute()
}
