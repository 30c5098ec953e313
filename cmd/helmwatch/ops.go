package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"helmwatch/internal/bootstrap"
)

func newAuditCmd(dataDir *string) *cobra.Command {
	audit := &cobra.Command{Use: "audit", Short: "Query the audit trail"}

	var recordType, crewID string
	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List audit records, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEngine(*dataDir, func(engine *bootstrap.Engine) error {
				records, err := engine.AuditCLI.List(cmd.Context(), recordType, crewID, limit)
				if err != nil {
					return err
				}
				if len(records) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no records")
					return nil
				}
				for _, r := range records {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%s\n",
						r.Timestamp.Format(time.RFC3339), r.Type, orDash(r.CrewID), orDash(r.ReasonCode), r.Details)
				}
				return nil
			})
		},
	}
	list.Flags().StringVar(&recordType, "type", "", "record type filter")
	list.Flags().StringVar(&crewID, "crew", "", "crew member filter")
	list.Flags().IntVar(&limit, "limit", 50, "records to show")
	audit.AddCommand(list)

	var countType, countCrew string
	count := &cobra.Command{
		Use:   "count",
		Short: "Count audit records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEngine(*dataDir, func(engine *bootstrap.Engine) error {
				n, err := engine.AuditCLI.Count(cmd.Context(), countType, countCrew)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), n)
				return nil
			})
		},
	}
	count.Flags().StringVar(&countType, "type", "", "record type filter")
	count.Flags().StringVar(&countCrew, "crew", "", "crew member filter")
	audit.AddCommand(count)

	return audit
}

func newVitalsCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "vitals",
		Short: "Print a diagnostic snapshot as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEngine(*dataDir, func(engine *bootstrap.Engine) error {
				out, err := engine.TelemetryCLI.Vitals(cmd.Context())
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			})
		},
	}
}

func newLogsCmd(dataDir *string) *cobra.Command {
	var limit int
	logs := &cobra.Command{
		Use:   "logs",
		Short: "Show the diagnostic log kept in developer mode",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEngine(*dataDir, func(engine *bootstrap.Engine) error {
				entries, err := engine.TelemetryCLI.Logs(cmd.Context(), limit)
				if err != nil {
					return err
				}
				for _, e := range entries {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %-5s %s %s\n", e.Timestamp.Format(time.RFC3339), e.Level, e.Source, e.Message)
				}
				return nil
			})
		},
	}
	logs.Flags().IntVar(&limit, "limit", 50, "entries to show")
	return logs
}

func newDevModeCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:       "devmode [on|off]",
		Short:     "Show or switch developer mode",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(*dataDir, func(engine *bootstrap.Engine) error {
				if len(args) == 0 {
					out, err := engine.TelemetryCLI.DeveloperMode(cmd.Context())
					if err != nil {
						return err
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "developer mode: %s\n", onOff(out.Enabled))
					return nil
				}
				out, err := engine.TelemetryCLI.SetDeveloperMode(cmd.Context(), args[0] == "on")
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "developer mode: %s\n", onOff(out.Enabled))
				return nil
			})
		},
	}
}

func newConnectionCmd(dataDir *string) *cobra.Command {
	connection := &cobra.Command{Use: "connection", Short: "Link quality"}
	connection.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the last known link state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEngine(*dataDir, func(engine *bootstrap.Engine) error {
				out, err := engine.ConnectivityCLI.Status(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "state=%s latency=%dms\n", out.State, out.LatencyMS)
				return nil
			})
		},
	})
	connection.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Probe the link now",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEngine(*dataDir, func(engine *bootstrap.Engine) error {
				out, err := engine.ConnectivityCLI.Check(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "state=%s latency=%dms\n", out.State, out.LatencyMS)
				return nil
			})
		},
	})
	return connection
}

func newPositionCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "position",
		Short: "Resolve the ship's position",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEngine(*dataDir, func(engine *bootstrap.Engine) error {
				out, err := engine.PositionCLI.Resolve(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%.4f, %.4f)\n", out.Status, out.Label, out.Latitude, out.Longitude)
				if out.Message != "" {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Message)
				}
				return nil
			})
		},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
