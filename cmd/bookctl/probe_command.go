package main

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ytget/audiobook-reader/internal/probe"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var concurrency int

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Check that every chapter's audio can be fetched",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			catalog, err := ctx.catalog()
			if err != nil {
				return err
			}
			if concurrency <= 0 {
				concurrency = cfg.Probe.Concurrency
			}

			results, err := probe.Run(cmd.Context(), catalog, probe.Options{
				Client:      &http.Client{Timeout: cfg.ProbeTimeout()},
				Concurrency: concurrency,
				Timeout:     cfg.ProbeTimeout(),
				Logger:      ctx.loggerValue().Named("probe"),
			})
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(results))
			for _, r := range results {
				rows = append(rows, []string{
					strconv.Itoa(r.Chapter.ID),
					r.Chapter.Title,
					probeStatus(r),
					r.ContentType,
					formatSize(r.Size),
					r.Elapsed.Round(time.Millisecond).String(),
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]column{
				{header: "ID", right: true},
				{header: "Title", maxWidth: 40},
				{header: "Status", maxWidth: 48},
				{header: "Type"},
				{header: "Size", right: true},
				{header: "Time", right: true},
			}, rows))

			if failed := probe.Failed(results); len(failed) > 0 {
				return fmt.Errorf("%d of %d chapters unreachable", len(failed), len(results))
			}
			fmt.Fprintf(out, "All %d chapters reachable\n", len(results))
			return nil
		},
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Requests in flight (default from config)")
	return cmd
}

func probeStatus(r probe.Result) string {
	switch {
	case r.Err != nil:
		return r.Err.Error()
	case r.Status == 0:
		return "ok"
	default:
		return strconv.Itoa(r.Status)
	}
}

func formatSize(size int64) string {
	const unit = 1024
	if size < 0 {
		return "-"
	}
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
