package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/inkboard/internal/dataset"
	"github.com/cleared-dev/inkboard/internal/render"
)

func newCheckCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the record files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			return runCheck(cmd, s)
		},
	}
}

func runCheck(cmd *cobra.Command, s *session) error {
	ds, err := s.dataset().Load()
	if err != nil {
		return fmt.Errorf("loading data: %w", err)
	}
	issues := dataset.Check(ds)

	if s.json {
		rows := make([]map[string]string, len(issues))
		for i, is := range issues {
			rows[i] = map[string]string{"entity": is.Entity, "id": is.RecordID, "issue": is.Description}
		}
		if err := render.JSON(cmd.OutOrStdout(), rows); err != nil {
			return err
		}
	} else if err := s.printer(cmd).Issues(issues); err != nil {
		return err
	}

	if len(issues) > 0 {
		return fmt.Errorf("%d issue(s) found", len(issues))
	}
	return nil
}
