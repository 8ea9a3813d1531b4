package main

import "codescanctl/internal/cmd"

func main() {
	cmd.Execute()
}
