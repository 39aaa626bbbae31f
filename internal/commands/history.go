package commands

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/inkboard/internal/importlog"
	"github.com/cleared-dev/inkboard/internal/render"
)

func newHistoryCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List past bank imports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			entries, err := importlog.Read(s.root)
			if err != nil {
				return err
			}
			if s.json {
				return render.JSON(cmd.OutOrStdout(), entries)
			}

			rows := make([][]string, len(entries))
			for i, e := range entries {
				rows[i] = []string{
					e.Timestamp.In(s.cfg.Location()).Format(time.DateTime),
					e.Format,
					e.File,
					strconv.Itoa(e.Imported),
					strconv.Itoa(e.Skipped),
					e.CommitHash,
				}
			}
			return s.printer(cmd).Table(
				[]string{"When", "Format", "File", "Imported", "Skipped", "Commit"},
				[]render.Align{render.AlignLeft, render.AlignLeft, render.AlignLeft, render.AlignRight, render.AlignRight},
				rows,
			)
		},
	}
}
