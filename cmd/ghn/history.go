package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/nhle/ghn/internal/app"
)

const batchIDWidth = 10

func addHistory(topLevel *cobra.Command, o *options) {
	var (
		limit      int
		failedOnly bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently executed actions",
		Example: `
ghn history
ghn history --limit 100 --failed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.OpenStore(o.cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			records, err := st.RecentActions(cmd.Context(), limit)
			if err != nil {
				return err
			}

			green := color.New(color.FgGreen).SprintFunc()
			red := color.New(color.FgRed).SprintFunc()
			faint := color.New(color.Faint).SprintFunc()

			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.MaxColWidth = 60
			tbl.AddRow(bold("TIME"), bold("BATCH"), bold("ACTION"), bold("KIND"), bold("URL"), bold("RESULT"))

			rows := 0
			for _, r := range records {
				if failedOnly && !r.Failed() {
					continue
				}
				result := green("ok")
				if r.Failed() {
					result = red(r.Error)
				}
				batch := r.BatchID
				if len(batch) > batchIDWidth {
					batch = batch[len(batch)-batchIDWidth:]
				}
				tbl.AddRow(
					r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					faint(batch),
					r.Action,
					r.EntryKind,
					r.URL,
					result,
				)
				rows++
			}

			if rows == 0 {
				fmt.Fprintln(color.Output, "No actions recorded.")
				return nil
			}
			fmt.Fprintln(color.Output, tbl)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of records to read")
	cmd.Flags().BoolVar(&failedOnly, "failed", false, "only show failed actions")
	topLevel.AddCommand(cmd)
}
