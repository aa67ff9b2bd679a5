package projectstore

import (
	"database/sql"
	"errors"
	"time"
)

const sessionColumns = "id, name, scene_path, profile, status, error_message, frames_rendered, cache_hits, started_at, finished_at"

func scanSession(scanner interface{ Scan(dest ...any) error }) (*Session, error) {
	var (
		id           string
		name         string
		scenePath    sql.NullString
		profile      sql.NullString
		statusStr    string
		errorMessage sql.NullString
		frames       sql.NullInt64
		hits         sql.NullInt64
		startedRaw   sql.NullString
		finishedRaw  sql.NullString
	)
	if err := scanner.Scan(
		&id,
		&name,
		&scenePath,
		&profile,
		&statusStr,
		&errorMessage,
		&frames,
		&hits,
		&startedRaw,
		&finishedRaw,
	); err != nil {
		return nil, err
	}

	session := &Session{
		ID:             id,
		Name:           name,
		ScenePath:      scenePath.String,
		Profile:        profile.String,
		Status:         Status(statusStr),
		ErrorMessage:   errorMessage.String,
		FramesRendered: int(frames.Int64),
		CacheHits:      int(hits.Int64),
	}
	if started, err := parseTimeString(startedRaw.String); err == nil {
		session.StartedAt = started
	}
	if finishedRaw.Valid {
		if finished, err := parseTimeString(finishedRaw.String); err == nil {
			session.FinishedAt = &finished
		}
	}
	return session, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func formatTime(value time.Time) string {
	return value.UTC().Format(time.RFC3339Nano)
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	return time.Parse(time.RFC3339Nano, value)
}
