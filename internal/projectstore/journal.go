package projectstore

import (
	"context"
	"log/slog"
	"sync"

	"reelfx/internal/events"
	"reelfx/internal/logging"
)

// Journal copies bus events into a session while attached.
// ActivityLogged events are skipped because each mirrors a domain event
// that is already journaled.
type Journal struct {
	store     *Store
	bus       *events.Bus
	sessionID string
	ctx       context.Context
	logger    *slog.Logger

	mu     sync.Mutex
	subs   []events.Subscription
	seq    int
	frames int
	err    error
}

// Attach subscribes a journal for sessionID to every event kind on bus.
func Attach(ctx context.Context, store *Store, bus *events.Bus, sessionID string, logger *slog.Logger) *Journal {
	if logger == nil {
		logger = logging.NewNop()
	}
	j := &Journal{
		store:     store,
		bus:       bus,
		sessionID: sessionID,
		ctx:       ensureContext(ctx),
		logger:    logging.NewComponentLogger(logger, "journal").With(logging.SessionID(sessionID)),
	}
	j.subs = bus.OnAll(j.handle)
	return j
}

func (j *Journal) handle(ev events.Event) {
	if ev.Kind() == events.KindActivityLogged {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.subs == nil {
		return
	}
	j.seq++
	err := j.store.AppendEvent(j.ctx, j.sessionID, j.seq, ev)
	if frame, ok := ev.(events.FrameRendered); ok && err == nil {
		err = j.store.RecordFrame(j.ctx, j.sessionID, frame)
		if err == nil {
			j.frames++
		}
	}
	if err != nil {
		if j.err == nil {
			j.err = err
		}
		logging.WarnWithContext(j.logger, "journal write failed", "journal_write",
			logging.String("event", ev.Kind().String()),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check free space and permissions on the data directory"),
			logging.String(logging.FieldImpact, "session history will be incomplete"),
		)
	}
}

// Events reports how many events have been journaled.
func (j *Journal) Events() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.seq
}

// Frames reports how many rendered frames have been journaled.
func (j *Journal) Frames() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.frames
}

// Detach unsubscribes the journal and returns the first write error, if any.
func (j *Journal) Detach() error {
	j.mu.Lock()
	subs := j.subs
	j.subs = nil
	err := j.err
	j.mu.Unlock()
	for _, sub := range subs {
		j.bus.Off(sub)
	}
	return err
}
