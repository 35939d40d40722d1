package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/folio/pkg/core"
	"github.com/aretw0/folio/pkg/portfolio"
)

// formFlags are the input flags shared by add and update.
type formFlags struct {
	sets []string
	from string
}

func (f *formFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.sets, "set", nil, "Set a form field (key=value); list fields take comma-separated values")
	cmd.Flags().StringVar(&f.from, "from", "", "Read form fields from a YAML file")
}

// withMutator starts the service, resolves the kind and runs fn against its repository.
func (a *app) withMutator(cmd *cobra.Command, name string, fn func(context.Context, portfolio.Mutator) error) error {
	ctx := cmd.Context()
	svc, err := a.start(ctx, cmd)
	if err != nil {
		return err
	}
	defer svc.Stop(context.Background())

	m, err := portfolio.NewAdmin(svc).Lookup(name)
	if err != nil {
		return err
	}
	if err := fn(ctx, m); err != nil {
		return err
	}

	// Serve the reload the mutation raised before the process exits.
	if err := svc.Reload(ctx); err != nil {
		a.logger.Warn("reload after mutation failed", "error", err)
		return nil
	}
	if a.output == "text" {
		return nil
	}
	items := m.Items()
	if items == nil {
		items = []core.Item{}
	}
	return a.render(cmd.OutOrStdout(), items, nil)
}

func newAddCmd(a *app) *cobra.Command {
	var f formFlags
	cmd := &cobra.Command{
		Use:   "add <kind>",
		Short: "Create a new item of the given kind",
		Example: `  folio add course --set title=Go --set imageURL=https://img/go.png \
    --set description="Concurrency" --set link=https://go.dev --set technologies="Go, SQL"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := parseForm(f.from, f.sets)
			if err != nil {
				return err
			}
			return a.withMutator(cmd, args[0], func(ctx context.Context, m portfolio.Mutator) error {
				return m.Create(ctx, form)
			})
		},
	}
	f.bind(cmd)
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var f formFlags
	cmd := &cobra.Command{
		Use:   "update <kind> <id>",
		Short: "Update an existing item, starting from its current values",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			changes, err := parseForm(f.from, f.sets)
			if err != nil {
				return err
			}
			id := args[1]
			return a.withMutator(cmd, args[0], func(ctx context.Context, m portfolio.Mutator) error {
				current := findItem(m.Items(), id)
				if current == nil {
					return fmt.Errorf("%s %q not found", m.Kind().Entity, id)
				}
				form := m.Kind().Form(current)
				for k, v := range changes {
					form[k] = v
				}
				return m.Update(ctx, id, form)
			})
		},
	}
	f.bind(cmd)
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <kind> <id>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withMutator(cmd, args[0], func(ctx context.Context, m portfolio.Mutator) error {
				return m.Delete(ctx, args[1])
			})
		},
	}
}

func findItem(items []core.Item, id string) core.Item {
	for _, item := range items {
		if item.ID() == id {
			return item
		}
	}
	return nil
}
