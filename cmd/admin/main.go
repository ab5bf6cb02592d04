package main

import (
	"fmt"
	"os"

	"lendsqr-admin/internal/client"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if client.IsUnauthorized(err) {
			fmt.Fprintln(os.Stderr, "not logged in or session expired, run: admin login")
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}
