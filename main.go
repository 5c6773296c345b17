package main

import "github.com/nowdo/nowdo/cmd"

func main() {
	cmd.Execute()
}
