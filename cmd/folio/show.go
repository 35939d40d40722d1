package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aretw0/folio/pkg/core"
	"github.com/aretw0/folio/pkg/panels"
	"github.com/aretw0/folio/pkg/portfolio"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show [collection]",
		Short: "Fetch the portfolio and print it",
		Long: `Without arguments, show prints one line per collection with its item count.
With an entity or collection name (course, courses), it prints that collection.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := a.start(ctx, cmd)
			if err != nil {
				return err
			}
			defer svc.Stop(context.Background())

			snap := svc.Snapshot()
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				return a.render(out, snap.Document.Collections, func() error {
					return panels.Summary(out, snap)
				})
			}

			m, err := portfolio.NewAdmin(svc).Lookup(args[0])
			if err != nil {
				return err
			}
			kind := m.Kind()
			items := m.Items()
			if items == nil {
				items = []core.Item{}
			}
			return a.render(out, items, func() error {
				return panels.Panel{Title: kind.Collection, Kind: kind}.Render(out, snap)
			})
		},
	}
}
