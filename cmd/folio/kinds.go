package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/folio/pkg/portfolio"
)

// kindInfo is the printable description of an entity kind.
type kindInfo struct {
	Entity     string   `json:"entity" yaml:"entity"`
	Collection string   `json:"collection" yaml:"collection"`
	Singleton  bool     `json:"singleton" yaml:"singleton"`
	Required   []string `json:"required" yaml:"required"`
	Lists      []string `json:"lists,omitempty" yaml:"lists,omitempty"`
}

func newKindsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the entity kinds and their form fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var infos []kindInfo
			for _, name := range portfolio.EntityNames() {
				k := portfolio.Kinds()[name]
				info := kindInfo{Entity: k.Entity, Collection: k.Collection, Singleton: k.Singleton, Required: []string{}}
				for _, f := range k.Fields {
					if f.Required {
						info.Required = append(info.Required, f.Name)
					}
					if f.List {
						info.Lists = append(info.Lists, f.Name)
					}
				}
				infos = append(infos, info)
			}

			out := cmd.OutOrStdout()
			return a.render(out, infos, func() error {
				for _, info := range infos {
					mode := "crud"
					if info.Singleton {
						mode = "update-only"
					}
					line := fmt.Sprintf("%-11s %-12s %-11s %s", info.Entity, info.Collection, mode, strings.Join(info.Required, ", "))
					if len(info.Lists) > 0 {
						line += fmt.Sprintf(" (lists: %s)", strings.Join(info.Lists, ", "))
					}
					if _, err := fmt.Fprintln(out, line); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}
