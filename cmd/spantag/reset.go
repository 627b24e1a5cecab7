package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/spantag/internal/session"
)

var resetCmd = &cobra.Command{
	Use:   "reset [run]",
	Short: "Forget a run's progress so it starts from the first sentence",
	Long: `Removes the named run and its recorded annotations from the database.
Annotation files already written to the output directory are kept.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := session.Reset(cmd.Context(), db, args[0]); err != nil {
			return err
		}
		logger.Info("run reset", zap.String("run", args[0]))
		fmt.Fprintf(cmd.OutOrStdout(), "run %q reset\n", args[0])
		return nil
	},
}
