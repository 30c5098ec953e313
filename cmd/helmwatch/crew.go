package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"helmwatch/internal/bootstrap"
	crewdto "helmwatch/internal/modules/crew/dto"
)

func newCrewCmd(dataDir *string) *cobra.Command {
	crew := &cobra.Command{Use: "crew", Short: "Roster and alert flags"}

	crew.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the roster",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEngine(*dataDir, func(engine *bootstrap.Engine) error {
				members, err := engine.CrewCLI.List(cmd.Context())
				if err != nil {
					return err
				}
				for _, m := range members {
					flare := m.ActiveFlare
					if flare == "" {
						flare = "-"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%s\t%s\n",
						m.ID, m.Name, m.Kind, m.Status, flare, m.LastHeartbeat.Format(time.RFC3339))
				}
				return nil
			})
		},
	})

	crew.AddCommand(transitionCmd(dataDir, "emergency <member-id>", "Raise man overboard for a member",
		func(ctx context.Context, e *bootstrap.Engine, args []string) (crewdto.TransitionOutput, error) {
			return e.CrewCLI.Emergency(ctx, args[0])
		}))
	crew.AddCommand(transitionCmd(dataDir, "rescue <member-id>", "Bring a member back aboard",
		func(ctx context.Context, e *bootstrap.Engine, args []string) (crewdto.TransitionOutput, error) {
			return e.CrewCLI.Rescue(ctx, args[0])
		}))
	crew.AddCommand(transitionCmd(dataDir, "flare <member-id> <red|white|green>", "Fire an alert flare for a member",
		func(ctx context.Context, e *bootstrap.Engine, args []string) (crewdto.TransitionOutput, error) {
			return e.CrewCLI.FireFlare(ctx, args[0], args[1])
		}))
	crew.AddCommand(transitionCmd(dataDir, "resolve <member-id>", "Stand down a member's flare",
		func(ctx context.Context, e *bootstrap.Engine, args []string) (crewdto.TransitionOutput, error) {
			return e.CrewCLI.ResolveFlare(ctx, args[0])
		}))

	crew.AddCommand(&cobra.Command{
		Use:   "check <member-id>",
		Short: "Run a welfare check on a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(*dataDir, func(engine *bootstrap.Engine) error {
				out, err := engine.SafetyCLI.Check(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "welfare check on %s: %d in window advised=%t\n", args[0], out.InWindow, out.Advised)
				return nil
			})
		},
	})

	return crew
}

// transitionCmd builds a crew order whose arity comes from its usage line.
func transitionCmd(dataDir *string, use, short string, order func(context.Context, *bootstrap.Engine, []string) (crewdto.TransitionOutput, error)) *cobra.Command {
	arity := countArgs(use)
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(arity),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(*dataDir, func(engine *bootstrap.Engine) error {
				out, err := order(cmd.Context(), engine, args)
				if err != nil {
					return err
				}
				state := "unchanged"
				if out.Changed {
					state = "changed"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s status=%s flare=%q\n", out.Member.ID, state, out.Member.Status, out.Member.ActiveFlare)
				return nil
			})
		},
	}
}

func countArgs(use string) int {
	n := 0
	for _, r := range use {
		if r == '<' {
			n++
		}
	}
	return n
}
