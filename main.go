package main

import "github.com/notargets/butterfly/cmd"

func main() {
	cmd.Execute()
}
