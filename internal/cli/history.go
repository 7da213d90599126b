package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iurnickita/creditorder/internal/model"
	"github.com/iurnickita/creditorder/internal/store"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		jsonOutput bool
		customerID int64
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List settled order submissions from the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			journal, err := store.NewStore(a.cfg.Store)
			if err != nil {
				if errors.Is(err, store.ErrNoDatabase) {
					return fmt.Errorf("history needs DATABASE_URI: %w", err)
				}
				return err
			}
			defer journal.Close()

			var submissions []model.Submission
			if customerID != 0 {
				submissions, err = journal.SubmissionGet(cmd.Context(), customerID)
				if errors.Is(err, store.ErrNoRows) {
					err = nil
				}
			} else {
				submissions, err = journal.SubmissionList(cmd.Context(), limit)
			}
			if err != nil {
				return fmt.Errorf("reading journal: %w", err)
			}

			if jsonOutput {
				return writeJSON(cmd, submissions)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderHistory(submissions))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().Int64Var(&customerID, "cliente", 0, "Only this customer's submissions")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of submissions")

	return cmd
}
