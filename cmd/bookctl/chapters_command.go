package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newChaptersCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "chapters",
		Short: "List the chapters of the book",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := ctx.catalog()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s by %s\n", catalog.Title, catalog.Author)

			rows := make([][]string, 0, catalog.Len())
			for i, ch := range catalog.Chapters {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					strconv.Itoa(ch.ID),
					ch.Title,
					ch.AudioURL,
				})
			}
			fmt.Fprintln(out, renderTable([]column{
				{header: "#", right: true},
				{header: "ID", right: true},
				{header: "Title", maxWidth: 48},
				{header: "Audio"},
			}, rows))
			return nil
		},
	}
}
