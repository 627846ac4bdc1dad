package main

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/nhle/ghn/internal/app"
	"github.com/nhle/ghn/internal/ignore"
	"github.com/nhle/ghn/internal/model"
	"github.com/nhle/ghn/internal/store"
)

func addIgnores(topLevel *cobra.Command, o *options) {
	cmd := &cobra.Command{
		Use:   "ignores",
		Short: "List pull requests hidden with the unsubscribe action",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, closeStore, err := o.ignoreBackend()
			if err != nil {
				return err
			}
			defer closeStore()

			urls, err := backend.Load(cmd.Context())
			if err != nil {
				return err
			}
			if len(urls) == 0 {
				fmt.Fprintln(color.Output, "No ignored pull requests.")
				return nil
			}

			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow(bold("#"), bold("URL"))
			for i, u := range urls {
				tbl.AddRow(i+1, u)
			}
			fmt.Fprintln(color.Output, tbl)
			return nil
		},
	}

	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget every ignored pull request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				err := huh.NewConfirm().
					Title("Clear the ignore list?").
					Description("Hidden pull requests reappear on the next refresh.").
					Affirmative("Clear").
					Negative("Cancel").
					Value(&yes).
					Run()
				if err != nil {
					return err
				}
				if !yes {
					return nil
				}
			}

			backend, closeStore, err := o.ignoreBackend()
			if err != nil {
				return err
			}
			defer closeStore()

			if err := backend.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Ignore list cleared.")
			return nil
		},
	}
	clearCmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation")

	cmd.AddCommand(clearCmd)
	topLevel.AddCommand(cmd)
}

// ignoreBackend opens the configured ignore store. The returned func
// closes the database when one was opened.
func (o *options) ignoreBackend() (ignore.Store, func(), error) {
	var st *store.SQLiteStore
	if o.cfg.Ignore.Backend == model.IgnoreBackendSQLite {
		var err error
		st, err = app.OpenStore(o.cfg)
		if err != nil {
			return nil, nil, err
		}
	}
	closeStore := func() {
		if st != nil {
			_ = st.Close()
		}
	}

	backend, err := app.IgnoreBackend(o.cfg, st)
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	return backend, closeStore, nil
}

var bold = color.New(color.Bold).SprintFunc()
