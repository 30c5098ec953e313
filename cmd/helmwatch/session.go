package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"helmwatch/internal/bootstrap"
	"helmwatch/internal/platform/markdown"
)

func newSessionCmd(dataDir *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Voyage lifecycle"}

	session.AddCommand(&cobra.Command{
		Use:   "start",
		Short: "Cast off: open a new voyage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEngine(*dataDir, func(engine *bootstrap.Engine) error {
				out, err := engine.SessionCLI.Start(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "voyage started: %s at %s\n", out.SessionID, out.StartedAt.Format(time.RFC3339))
				return nil
			})
		},
	})

	var force bool
	stop := &cobra.Command{
		Use:   "stop",
		Short: "Make port: close the open voyage and settle it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEngine(*dataDir, func(engine *bootstrap.Engine) error {
				out, err := engine.SessionCLI.Stop(cmd.Context(), force)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "voyage settled: %s duration=%s earnings=%.2f catch=%d overtime=%t\n",
					out.SessionID, time.Duration(out.DurationSeconds)*time.Second, out.Earnings, out.ItemsCaught, out.Overtime)
				return nil
			})
		},
	}
	stop.Flags().BoolVar(&force, "force", false, "stop even if the voyage is shorter than the minimum")
	session.AddCommand(stop)

	session.AddCommand(&cobra.Command{
		Use:   "catch",
		Short: "Log one item caught on the open voyage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEngine(*dataDir, func(engine *bootstrap.Engine) error {
				out, err := engine.SessionCLI.Catch(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "catch logged: %d aboard\n", out.ItemsCaught)
				return nil
			})
		},
	})

	session.AddCommand(&cobra.Command{
		Use:   "sign <session-id> <efficiency>",
		Short: "Countersign a closed voyage with an efficiency score (0-100)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			efficiency, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("efficiency must be a number: %w", err)
			}
			return withEngine(*dataDir, func(engine *bootstrap.Engine) error {
				out, err := engine.SessionCLI.Sign(cmd.Context(), args[0], efficiency)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "voyage signed: %s efficiency=%.0f\n", out.ID, efficiency)
				return nil
			})
		},
	})

	session.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the open voyage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEngine(*dataDir, func(engine *bootstrap.Engine) error {
				out, err := engine.SessionCLI.Status(cmd.Context())
				if err != nil {
					return err
				}
				if !out.Open {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "in port: no voyage under way")
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "voyage %s elapsed=%s shift=%s earnings=%.2f catch=%d overtime=%t\n",
					out.SessionID,
					time.Duration(out.ElapsedSeconds)*time.Second,
					time.Duration(out.ShiftSeconds)*time.Second,
					out.Earnings, out.ItemsCaught, out.Overtime)
				return nil
			})
		},
	})

	var limit int
	history := &cobra.Command{
		Use:   "history",
		Short: "List recent voyages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEngine(*dataDir, func(engine *bootstrap.Engine) error {
				sessions, err := engine.SessionCLI.History(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(sessions) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "the logbook is empty")
					return nil
				}
				for _, s := range sessions {
					ended := "under way"
					if s.EndedAt != nil {
						ended = s.EndedAt.Format(time.RFC3339)
					}
					signed := "unsigned"
					if s.Efficiency != nil {
						signed = fmt.Sprintf("signed %.0f%%", *s.Efficiency)
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%.2f\t%d\t%s\n",
						s.ID, s.StartedAt.Format(time.RFC3339), ended, s.Earnings, s.ItemsCaught, signed)
				}
				return nil
			})
		},
	}
	history.Flags().IntVar(&limit, "limit", 20, "voyages to show")
	session.AddCommand(history)

	var asHTML bool
	show := &cobra.Command{
		Use:   "show <session-id>",
		Short: "Print the logbook entry of a closed voyage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(*dataDir, func(engine *bootstrap.Engine) error {
				out, err := engine.SessionCLI.Logbook(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !asHTML {
					_, _ = fmt.Fprint(cmd.OutOrStdout(), out.Markdown)
					return nil
				}
				doc, err := markdown.Parse(out.Markdown)
				if err != nil {
					return err
				}
				rendered, err := doc.HTML()
				if err != nil {
					return err
				}
				_, _ = fmt.Fprint(cmd.OutOrStdout(), rendered)
				return nil
			})
		},
	}
	show.Flags().BoolVar(&asHTML, "html", false, "render the entry as HTML")
	session.AddCommand(show)

	return session
}
