package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/audiobook-reader/internal/config"
	"github.com/ytget/audiobook-reader/internal/storage"
)

func newStateCommand(ctx *commandContext) *cobra.Command {
	stateCmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect persisted player and reader preferences",
	}
	stateCmd.AddCommand(newStateListCommand(ctx))
	stateCmd.AddCommand(newStateClearCommand(ctx))
	return stateCmd
}

func newStateListCommand(ctx *commandContext) *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStorage(func(db *storage.SQLite) error {
				entries, err := db.List(cmd.Context(), prefix)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "No stored preferences")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, []string{e.Key, e.Value, e.UpdatedAt.Local().Format("2006-01-02 15:04:05")})
				}
				fmt.Fprintln(out, renderTable([]column{
					{header: "Key"},
					{header: "Value", maxWidth: 40},
					{header: "Updated"},
				}, rows))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "Only keys starting with this prefix")
	return cmd
}

func newStateClearCommand(ctx *commandContext) *cobra.Command {
	var player, reader bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget stored volume, speed and reading position",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !player && !reader {
				player, reader = true, true
			}
			return ctx.withStorage(func(db *storage.SQLite) error {
				out := cmd.OutOrStdout()
				if player {
					config.NewSettings(db, config.PlayerNamespace).Clear()
					fmt.Fprintf(out, "Cleared %s preferences\n", config.PlayerNamespace)
				}
				if reader {
					config.NewSettings(db, config.ReaderNamespace).Clear()
					fmt.Fprintf(out, "Cleared %s preferences\n", config.ReaderNamespace)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&player, "player", false, "Clear player preferences only")
	cmd.Flags().BoolVar(&reader, "reader", false, "Clear reader preferences only")
	return cmd
}
