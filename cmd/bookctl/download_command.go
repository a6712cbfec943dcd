package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ytget/audiobook-reader/internal/platform"
)

const downloadTimeout = 5 * time.Minute

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var dir, from string
	var open bool

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Save the book document to disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()

			src := strings.TrimSpace(from)
			if src == "" {
				src = cfg.Book.DocumentURL
			}
			target := strings.TrimSpace(dir)
			if target == "" {
				downloads, err := platform.GetHomeDownloadsDir()
				if err != nil {
					return fmt.Errorf("determine downloads directory: %w", err)
				}
				target = downloads
			}

			client := &http.Client{Timeout: downloadTimeout}
			path, err := platform.SaveDocument(cmd.Context(), client, src, target, cfg.Book.DownloadName)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)

			if open {
				if err := platform.OpenFileWithDefaultApp(path); err != nil {
					ctx.loggerValue().Warn("open document", zap.String("path", path), zap.Error(err))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Destination directory (default Downloads)")
	cmd.Flags().StringVar(&from, "from", "", "Document URL or path (default from config)")
	cmd.Flags().BoolVar(&open, "open", false, "Open the document after saving")
	return cmd
}
