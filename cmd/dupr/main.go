package main

import (
	"fmt"
	"os"

	"github.com/soyunomas/dupr/internal/logger"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", logger.Name, err)
		os.Exit(1)
	}
}
