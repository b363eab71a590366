package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for webhack.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webhack",
		Short: "Audit a website for SEO, security headers, performance and accessibility",
		Long: `webhack crawls a bounded number of same-origin pages breadth-first from a
start URL and scores every page on SEO, security headers, performance and
accessibility.

Run "webhack audit <url>" for a one-off report, or start cmd/server for the
HTTP API.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewAuditCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
