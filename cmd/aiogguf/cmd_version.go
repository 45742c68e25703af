package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var (
	// version is the release version (set via -ldflags).
	version = "v0.0.1-dev"
	// commit is the git commit hash (set via -ldflags).
	commit = ""
)

func resolveCommit() string {
	if commit != "" {
		return commit
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return ""
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "aiogguf %s\n", version)
			if c := resolveCommit(); c != "" {
				if len(c) > 12 {
					c = c[:12]
				}
				fmt.Fprintf(w, "commit: %s\n", c)
			}
		},
	}
}
