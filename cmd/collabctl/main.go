// Command collabctl is the operator CLI for CollabSpace: score a commit by
// hand, print a team transcript, run a GitHub sync, or migrate the database.
// It reads the same configuration as the server.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
