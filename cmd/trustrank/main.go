package main

import "trustrank/internal/cmd"

func main() {
	cmd.Run()
}
