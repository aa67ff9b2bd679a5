package projectstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"reelfx/internal/events"
	"reelfx/internal/faults"
)

// StartSession records a new running session and returns it.
func (s *Store) StartSession(ctx context.Context, name, scenePath, profile string) (*Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, faults.Wrap(faults.ErrValidation, "start session", "name is required", nil)
	}
	session := &Session{
		ID:        uuid.NewString(),
		Name:      name,
		ScenePath: scenePath,
		Profile:   profile,
		Status:    StatusRunning,
		StartedAt: s.now().UTC(),
	}
	_, err := s.exec(ctx,
		`INSERT INTO sessions (id, name, scene_path, profile, status, started_at) VALUES (?, ?, ?, ?, ?, ?)`,
		session.ID, session.Name, nullableString(scenePath), nullableString(profile),
		string(session.Status), formatTime(session.StartedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return session, nil
}

// FinishSession stores the final status and counters of a session.
func (s *Store) FinishSession(ctx context.Context, id string, summary Summary) error {
	if summary.Status == StatusRunning || summary.Status == "" {
		return faults.Wrap(faults.ErrValidation, "finish session", "a terminal status is required", nil)
	}
	res, err := s.exec(ctx,
		`UPDATE sessions SET status = ?, error_message = ?, frames_rendered = ?, cache_hits = ?, finished_at = ? WHERE id = ?`,
		string(summary.Status), nullableString(summary.ErrorMessage), summary.FramesRendered,
		summary.CacheHits, formatTime(s.now()), id,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return faults.NotFound("finish session", "session", id)
	}
	return nil
}

// GetSession fetches a session by id.
func (s *Store) GetSession(ctx context.Context, id string) (*Session, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, faults.NotFound("get session", "session", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return session, nil
}

// ListSessions returns sessions newest first. A limit of zero or less returns all.
func (s *Store) ListSessions(ctx context.Context, limit int) ([]*Session, error) {
	ctx = ensureContext(ctx)
	query := `SELECT ` + sessionColumns + ` FROM sessions ORDER BY started_at DESC, id`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// DeleteSession removes a session together with its events and frames.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	res, err := s.exec(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return faults.NotFound("delete session", "session", id)
	}
	return nil
}

// AppendEvent journals one bus event under the given sequence number.
func (s *Store) AppendEvent(ctx context.Context, sessionID string, seq int, ev events.Event) error {
	if ev == nil {
		return nil
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", ev.Kind(), err)
	}
	_, err = s.exec(ctx,
		`INSERT INTO session_events (session_id, seq, kind, target_id, payload, recorded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		sessionID, seq, ev.Kind().String(), nullableString(targetOf(ev)), string(payload), formatTime(s.now()),
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// RecordFrame stores a rendered frame. Re-rendering a frame replaces the row.
func (s *Store) RecordFrame(ctx context.Context, sessionID string, frame events.FrameRendered) error {
	_, err := s.exec(ctx,
		`INSERT OR REPLACE INTO session_frames (session_id, frame_number, frame_time, effects_applied, render_nanos, request_id) VALUES (?, ?, ?, ?, ?, ?)`,
		sessionID, frame.FrameNumber, frame.Time, frame.EffectsApplied, int64(frame.RenderTime), nullableString(frame.RequestID),
	)
	if err != nil {
		return fmt.Errorf("insert frame: %w", err)
	}
	return nil
}

// SessionEvents returns the journaled events of a session in sequence order.
func (s *Store) SessionEvents(ctx context.Context, sessionID string) ([]EventRecord, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, kind, target_id, payload, recorded_at FROM session_events WHERE session_id = ? ORDER BY seq, id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var records []EventRecord
	for rows.Next() {
		var (
			rec      EventRecord
			target   sql.NullString
			recorded sql.NullString
		)
		if err := rows.Scan(&rec.Seq, &rec.Kind, &target, &rec.Payload, &recorded); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		rec.TargetID = target.String
		if ts, err := parseTimeString(recorded.String); err == nil {
			rec.RecordedAt = ts
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// SessionFrames returns the rendered frames of a session ordered by frame number.
func (s *Store) SessionFrames(ctx context.Context, sessionID string) ([]FrameRecord, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT frame_number, frame_time, effects_applied, render_nanos, request_id FROM session_frames WHERE session_id = ? ORDER BY frame_number`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list frames: %w", err)
	}
	defer rows.Close()

	var frames []FrameRecord
	for rows.Next() {
		var (
			rec       FrameRecord
			nanos     int64
			requestID sql.NullString
		)
		if err := rows.Scan(&rec.FrameNumber, &rec.Time, &rec.EffectsApplied, &nanos, &requestID); err != nil {
			return nil, fmt.Errorf("scan frame: %w", err)
		}
		rec.RenderTime = time.Duration(nanos)
		rec.RequestID = requestID.String
		frames = append(frames, rec)
	}
	return frames, rows.Err()
}

func targetOf(ev events.Event) string {
	switch e := ev.(type) {
	case events.EffectCreated:
		return e.Effect.ID
	case events.EffectUpdated:
		return e.Effect.ID
	case events.EffectDeleted:
		return e.EffectID
	case events.EffectToggled:
		return e.EffectID
	case events.EffectDuplicated:
		return e.NewID
	case events.TrackingUpdated:
		return e.EffectID
	case events.StabilizationApplied:
		return e.Effect.ID
	case events.ChromaKeyDetected:
		return e.EffectID
	case events.LUTApplied:
		return e.EffectID
	case events.CurvesUpdated:
		return e.EffectID
	case events.LayerCreated:
		return e.Layer.ID
	case events.LayerUpdated:
		return e.Layer.ID
	case events.LayerDeleted:
		return e.LayerID
	case events.PresetCreated:
		return e.PresetID
	case events.PresetDeleted:
		return e.PresetID
	case events.PresetApplied:
		return e.PresetID
	case events.ActivityLogged:
		return e.TargetID
	case events.Error:
		return e.TargetID
	default:
		return ""
	}
}
