package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"reelfx/internal/projectstore"
)

func newSessionsCommand(ctx *commandContext) *cobra.Command {
	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect recorded render sessions",
	}
	sessionsCmd.AddCommand(newSessionsListCommand(ctx))
	sessionsCmd.AddCommand(newSessionsShowCommand(ctx))
	return sessionsCmd
}

func withStore(ctx *commandContext, fn func(*projectstore.Store) error) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	store, err := projectstore.Open(cfg)
	if err != nil {
		if errors.Is(err, projectstore.ErrLocked) {
			return fmt.Errorf("%w; wait for the recording render to finish", err)
		}
		return fmt.Errorf("open project store: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func newSessionsListCommand(ctx *commandContext) *cobra.Command {
	var (
		limit   int
		jsonOut bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded sessions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(ctx, func(store *projectstore.Store) error {
				sessions, err := store.ListSessions(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if jsonOut {
					if sessions == nil {
						sessions = []*projectstore.Session{}
					}
					return writeJSON(cmd, sessions)
				}
				if len(sessions) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No sessions recorded")
					return nil
				}
				rows := make([][]string, 0, len(sessions))
				for _, s := range sessions {
					rows = append(rows, []string{
						s.ID,
						truncateCell(s.Name, nameColumnWidth),
						displayLabel(string(s.Status)),
						strconv.Itoa(s.FramesRendered),
						strconv.Itoa(s.CacheHits),
						formatTimestamp(s.StartedAt),
						formatSessionDuration(s),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Name", "Status", "Frames", "Cache hits", "Started", "Duration"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignRight},
				))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of sessions to list (0 for all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

type sessionDetail struct {
	Session *projectstore.Session      `json:"session"`
	Events  []projectstore.EventRecord `json:"events"`
	Frames  []projectstore.FrameRecord `json:"frames"`
}

func newSessionsShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a session with its journaled events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(ctx, func(store *projectstore.Store) error {
				session, err := store.GetSession(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				evs, err := store.SessionEvents(cmd.Context(), session.ID)
				if err != nil {
					return err
				}
				frames, err := store.SessionFrames(cmd.Context(), session.ID)
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, sessionDetail{Session: session, Events: evs, Frames: frames})
				}

				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "Session:  %s\n", session.ID)
				fmt.Fprintf(w, "Name:     %s\n", session.Name)
				if session.ScenePath != "" {
					fmt.Fprintf(w, "Scene:    %s\n", session.ScenePath)
				}
				if session.Profile != "" {
					fmt.Fprintf(w, "Profile:  %s\n", session.Profile)
				}
				fmt.Fprintf(w, "Status:   %s\n", displayLabel(string(session.Status)))
				if session.ErrorMessage != "" {
					fmt.Fprintf(w, "Error:    %s\n", session.ErrorMessage)
				}
				fmt.Fprintf(w, "Started:  %s\n", formatTimestamp(session.StartedAt))
				fmt.Fprintf(w, "Duration: %s\n", formatSessionDuration(session))
				fmt.Fprintf(w, "Frames:   %d rendered, %d cache hits, %d journaled\n",
					session.FramesRendered, session.CacheHits, len(frames))

				if len(evs) == 0 {
					fmt.Fprintln(w, "No events journaled")
					return nil
				}
				rows := make([][]string, 0, len(evs))
				for _, ev := range evs {
					target := ev.TargetID
					if target == "" {
						target = "-"
					}
					rows = append(rows, []string{strconv.Itoa(ev.Seq), ev.Kind, target})
				}
				fmt.Fprintln(w, renderTable(
					[]string{"Seq", "Event", "Target"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format("2006-01-02 15:04:05")
}

func formatSessionDuration(s *projectstore.Session) string {
	if s.FinishedAt == nil {
		return "running"
	}
	return s.Duration().Round(time.Millisecond).String()
}
