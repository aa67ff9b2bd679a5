// Package projectstore journals rendering sessions to SQLite.
//
// A Store owns a single database file under the configured data directory and
// holds an exclusive file lock next to it, so only one process records at a
// time. Sessions are fed by attaching a Journal to an engine's event bus; the
// engine never touches disk itself.
package projectstore
