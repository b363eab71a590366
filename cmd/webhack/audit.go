package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Priyanka-kale21/webhack/configs"
	"github.com/Priyanka-kale21/webhack/internal/app"
	"github.com/Priyanka-kale21/webhack/internal/logging"
	"github.com/Priyanka-kale21/webhack/internal/model"
	"github.com/Priyanka-kale21/webhack/internal/report"
)

// NewAuditCmd creates the audit command.
func NewAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit <url>",
		Short: "Crawl a site and print its audit report",
		Long: `Audit crawls up to --max-pages same-origin pages breadth-first from <url>,
analyzes each page and writes the report to stdout (or --output).

Examples:
  webhack audit https://example.com
  webhack audit https://example.com --max-pages 10 --format markdown -o report.md`,
		Args: cobra.ExactArgs(1),
		RunE: runAuditCmd,
	}

	cmd.Flags().IntP("max-pages", "p", 0, "Maximum pages to audit (0 uses DEFAULT_MAX_PAGES)")
	cmd.Flags().StringP("format", "f", report.FormatJSON, "Report format: json or markdown")
	cmd.Flags().DurationP("timeout", "t", 0, "Overall audit timeout (0 uses AUDIT_TIMEOUT_SECONDS)")
	cmd.Flags().Float64("rate", 0, "Maximum fetches per second (0 uses CRAWL_RATE_PER_SECOND)")
	cmd.Flags().StringP("output", "o", "", "Write the report to this file instead of stdout")

	return cmd
}

func runAuditCmd(cmd *cobra.Command, args []string) error {
	cfg, err := configs.Load()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	out, closeOut, err := openOutput(cmd)
	if err != nil {
		return err
	}
	defer closeOut()
	w, err := report.NewWriter(format, out)
	if err != nil {
		return err
	}

	level := "warn"
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = "debug"
	}
	log := logging.NewWithOutput(cmd.ErrOrStderr(), level, "text")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	maxPages, _ := cmd.Flags().GetInt("max-pages")
	svc := app.NewAuditService(cfg, nil, log)
	resp, err := svc.Run(ctx, &model.AuditRequest{URL: args[0], MaxPages: maxPages})
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}

	log.WithFields(logrus.Fields{
		"pages":  resp.Summary.PagesScanned,
		"errors": resp.Summary.ErrorCount,
	}).Debug("writing report")
	return w.Write(resp)
}

func applyFlags(cmd *cobra.Command, cfg *configs.Config) error {
	if timeout, _ := cmd.Flags().GetDuration("timeout"); timeout > 0 {
		cfg.AuditTimeout = timeout
	} else if timeout < 0 {
		return fmt.Errorf("--timeout must not be negative")
	}
	if rate, _ := cmd.Flags().GetFloat64("rate"); rate > 0 {
		cfg.CrawlRatePerSecond = rate
	}
	cfg.MaxConcurrentAudits = 1
	return nil
}

// openOutput returns stdout or the --output file.
func openOutput(cmd *cobra.Command) (io.Writer, func(), error) {
	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create report file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
