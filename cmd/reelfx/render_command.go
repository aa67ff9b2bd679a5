package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"reelfx/internal/engine"
	"reelfx/internal/logging"
	"reelfx/internal/projectstore"
	"reelfx/internal/render"
	"reelfx/internal/reqctx"
	"reelfx/internal/scene"
)

type renderOutput struct {
	Scene     string            `json:"scene"`
	SessionID string            `json:"session_id,omitempty"`
	Options   render.Options    `json:"options"`
	Effects   map[string]string `json:"effects"`
	Frames    []render.Result   `json:"frames"`
	Stats     engine.Stats      `json:"stats"`
}

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var (
		from    int
		to      int
		jsonOut bool
		record  bool
		name    string
	)

	cmd := &cobra.Command{
		Use:   "render <scene.toml>",
		Short: "Apply a scene and render its frame range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			scenePath := args[0]
			doc, err := scene.Load(scenePath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("from") || cmd.Flags().Changed("to") {
				if err := overrideRange(doc, cmd.Flags().Changed("from"), from, cmd.Flags().Changed("to"), to); err != nil {
					return err
				}
			}

			e, logger, err := ctx.newEngine(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			opts := doc.Options(cfg.RenderOptions())
			if err := opts.Validate(); err != nil {
				return err
			}

			runCtx := cmd.Context()
			if runCtx == nil {
				runCtx = context.Background()
			}

			var (
				store   *projectstore.Store
				session *projectstore.Session
				journal *projectstore.Journal
			)
			if record {
				store, err = projectstore.Open(cfg)
				if err != nil {
					return fmt.Errorf("open project store: %w", err)
				}
				defer store.Close()
				label := strings.TrimSpace(name)
				if label == "" {
					label = sessionLabel(doc, scenePath)
				}
				session, err = store.StartSession(runCtx, label, scenePath, cfg.Engine.Profile)
				if err != nil {
					return err
				}
				runCtx = reqctx.WithSessionID(runCtx, session.ID)
				journal = projectstore.Attach(runCtx, store, e.Bus(), session.ID, logger)
			}

			// The journal is attached first so scene construction is recorded too.
			var results []render.Result
			applied, renderErr := doc.Apply(e)
			if renderErr != nil {
				renderErr = fmt.Errorf("apply scene: %w", renderErr)
			} else {
				results, renderErr = renderFrames(runCtx, e, doc.Frames(opts.FPS), opts)
			}
			stats := e.GetStats()

			if journal != nil {
				journalErr := journal.Detach()
				summary := projectstore.Summary{
					Status:         projectstore.StatusCompleted,
					FramesRendered: int(stats.FramesRendered),
					CacheHits:      int(stats.CacheHits),
				}
				if failure := errors.Join(renderErr, journalErr); failure != nil {
					summary.Status = projectstore.StatusFailed
					summary.ErrorMessage = failure.Error()
				}
				if err := store.FinishSession(context.WithoutCancel(runCtx), session.ID, summary); err != nil {
					logging.WarnWithContext(logger, "failed to close session", "session_finish",
						logging.SessionID(session.ID),
						logging.Error(err),
					)
				}
			}
			if renderErr != nil {
				return renderErr
			}

			if jsonOut {
				out := renderOutput{
					Scene:   scenePath,
					Options: opts,
					Effects: applied.Effects,
					Frames:  results,
					Stats:   stats,
				}
				if session != nil {
					out.SessionID = session.ID
				}
				return writeJSON(cmd, out)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, renderFramesTable(results))
			fmt.Fprintf(w, "Rendered %d frames (%d from cache) at %s %s\n",
				len(results), stats.CacheHits, opts.Quality, opts.Resolution)
			if session != nil {
				fmt.Fprintf(w, "Session %s recorded\n", session.ID)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&from, "from", 0, "First frame to render (overrides the scene)")
	cmd.Flags().IntVar(&to, "to", 0, "Last frame to render (overrides the scene)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&record, "record", false, "Journal the session to the project store")
	cmd.Flags().StringVar(&name, "name", "", "Session name used with --record")
	return cmd
}

func overrideRange(doc *scene.Document, setFrom bool, from int, setTo bool, to int) error {
	if doc.Render == nil {
		doc.Render = &scene.RenderSection{}
	}
	if setFrom {
		doc.Render.From = from
		if !setTo && doc.Render.To < from {
			doc.Render.To = from
		}
	}
	if setTo {
		doc.Render.To = to
	}
	return doc.Validate()
}

func renderFrames(ctx context.Context, e *engine.Engine, frames []scene.Frame, opts render.Options) ([]render.Result, error) {
	results := make([]render.Result, 0, len(frames))
	for _, f := range frames {
		res, err := e.RenderFrame(ctx, f.Number, f.Time, opts)
		if err != nil {
			return results, fmt.Errorf("render frame %d: %w", f.Number, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func renderFramesTable(results []render.Result) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			strconv.Itoa(r.FrameNumber),
			strconv.FormatFloat(r.Time, 'f', 3, 64),
			strconv.Itoa(r.EffectsApplied),
			strconv.Itoa(len(r.Passes)),
			r.RenderTime.String(),
			yesNo(r.Cached),
		})
	}
	return renderTable(
		[]string{"Frame", "Time", "Effects", "Passes", "Render", "Cached"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft},
	)
}

func sessionLabel(doc *scene.Document, path string) string {
	if name := strings.TrimSpace(doc.Name); name != "" {
		return name
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
