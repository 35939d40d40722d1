package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	folioLifecycle "github.com/aretw0/folio/pkg/adapters/lifecycle"
	"github.com/aretw0/folio/pkg/core"
	"github.com/aretw0/folio/pkg/panels"
	"github.com/aretw0/folio/pkg/portfolio"
)

func newWatchCmd(a *app) *cobra.Command {
	var (
		pattern string
		poll    time.Duration
		count   int
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep the portfolio open and print it again after every reload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !doublestar.ValidatePattern(pattern) {
				return fmt.Errorf("invalid collection pattern %q", pattern)
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			svc, err := a.start(ctx, cmd)
			if err != nil {
				return err
			}
			defer svc.Stop(context.Background())

			events, err := svc.Watch(ctx, pattern)
			if err != nil {
				return err
			}
			src := folioLifecycle.NewSource(events)
			if err := src.Start(ctx); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			views := watchedPanels(pattern)
			if err := a.renderPanels(out, views, svc.Snapshot()); err != nil {
				return err
			}

			var tick <-chan time.Time
			if poll > 0 {
				ticker := time.NewTicker(poll)
				defer ticker.Stop()
				tick = ticker.C
			}

			seen := 0
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-tick:
					a.logger.Debug("poll interval elapsed, requesting reload")
					svc.Store().RequestReload()
				case le, ok := <-src.Events():
					if !ok {
						return nil
					}
					e, _ := le.(core.Event)
					err := a.render(out, e, func() error {
						if _, err := fmt.Fprintf(out, "-- %s\n", e); err != nil {
							return err
						}
						if e.Type != core.EventReload {
							return nil
						}
						return a.renderPanels(out, views, svc.Snapshot())
					})
					if err != nil {
						return err
					}
					seen++
					if count > 0 && seen >= count {
						return nil
					}
				}
			}
		},
	}

	cmd.Flags().StringVar(&pattern, "collections", "**", "Glob of collection names to watch (e.g. {courses,projects})")
	cmd.Flags().DurationVar(&poll, "poll", 0, "Request a reload at this interval (0 disables polling)")
	cmd.Flags().IntVar(&count, "count", 0, "Exit after this many events (0 runs until interrupted)")
	return cmd
}

// watchedPanels returns one panel per built-in kind whose collection matches pattern.
func watchedPanels(pattern string) []panels.Panel {
	var out []panels.Panel
	for _, name := range portfolio.EntityNames() {
		kind := portfolio.Kinds()[name]
		if ok, _ := doublestar.Match(pattern, kind.Collection); ok {
			out = append(out, panels.Panel{Title: kind.Collection, Kind: kind})
		}
	}
	return out
}

// renderPanels prints every panel in text mode; structured formats only stream events.
func (a *app) renderPanels(w io.Writer, views []panels.Panel, snap core.Snapshot) error {
	if a.output != "text" {
		return nil
	}
	for _, p := range views {
		if err := p.Render(w, snap); err != nil {
			return err
		}
	}
	return nil
}
