package main

import "github.com/they4kman/sweepai/cmd"

func main() {
	cmd.Execute()
}
