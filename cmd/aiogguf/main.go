// Package main provides the aiogguf CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/AIOxide/aiogguf/internal/logger"
)

func main() {
	slog.SetDefault(logger.Default())

	if err := NewCLI().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
