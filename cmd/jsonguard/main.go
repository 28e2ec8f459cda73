// Command jsonguard compiles JSON Schema files and validates JSON documents
// against them.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errRejected) {
			fmt.Fprintln(os.Stderr, "jsonguard:", err)
			os.Exit(2)
		}
		os.Exit(1)
	}
}
