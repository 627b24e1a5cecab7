package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/jask/spantag/internal/database/repository"
)

// statusCmd lists stored runs and their progress.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "List annotation runs and their progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		runs, err := repository.NewRunRepo(db).List(cmd.Context())
		if err != nil {
			return fmt.Errorf("list runs: %w", err)
		}
		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no runs yet")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), runTable(runs))
		return nil
	},
}

func runTable(runs []repository.RunProgress) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("RUN", "SENTENCES", "OUTPUT", "SAVED", "POSITION", "STATE", "UPDATED")
	for _, r := range runs {
		state := "open"
		if r.FinishedAt != nil {
			state = "finished"
		}
		t.Row(
			r.Name,
			r.SentencePath,
			r.OutputDir,
			strconv.Itoa(r.Saved),
			strconv.Itoa(r.CurrentSentID),
			state,
			r.UpdatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	return t.String()
}
