package main

import (
	"fmt"
	"os"

	"goshell"
)

func main() {
	if os.Getenv("PATH") == "" {
		fmt.Fprintln(os.Stderr, "goshell: PATH is not set")
		os.Exit(1)
	}
	os.Exit(shell.Run())
}
