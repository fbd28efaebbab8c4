package main

import (
	"os"
	"strings"
)

func main() {
	if err := Execute(os.Args[1:]); err != nil {
		// Single-line error to stderr, no usage dump.
		msg := strings.Join(strings.Fields(err.Error()), " ")
		if msg == "" {
			msg = "error"
		}
		os.Stderr.WriteString("dosplot: " + msg + "\n")
		os.Exit(1)
	}
}
