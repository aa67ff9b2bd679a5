package engine

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"reelfx/internal/activity"
	"reelfx/internal/events"
	"reelfx/internal/faults"
	"reelfx/internal/layers"
	"reelfx/internal/logging"
	"reelfx/internal/presets"
	"reelfx/internal/registry"
	"reelfx/internal/render"
	"reelfx/internal/tuning"
)

// Engine is the composition engine facade. Mutations are serialized by a
// single writer lock; reads go straight to the components, each of which
// guards itself. Events are published after the writer lock is released.
type Engine struct {
	mu       sync.Mutex
	cfg      tuning.Config
	registry *registry.Registry
	layers   *layers.Manager
	presets  *presets.Library
	activity *activity.Log
	bus      *events.Bus
	pipeline *render.Pipeline
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string

	statsMu        sync.Mutex
	lastRenderTime time.Duration
	framesRendered uint64
	cacheHits      uint64
}

// Option customizes engine construction.
type Option func(*settings)

type settings struct {
	cfg     tuning.Config
	logger  *slog.Logger
	backend render.Backend
	now     func() time.Time
	newID   func() string
}

// WithConfig replaces the default tuning.
func WithConfig(cfg tuning.Config) Option {
	return func(s *settings) { s.cfg = cfg }
}

// WithLogger sets the base logger. The engine adds its component attribute.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithBackend sets the renderer frames are delegated to.
func WithBackend(backend render.Backend) Option {
	return func(s *settings) { s.backend = backend }
}

// WithClock overrides the time source used for activity timestamps and metadata.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// WithRequestIDs overrides the render request id generator.
func WithRequestIDs(next func() string) Option {
	return func(s *settings) { s.newID = next }
}

// New constructs an engine and seeds the built-in presets.
func New(opts ...Option) (*Engine, error) {
	s := settings{
		cfg:   tuning.Default(),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:      s.cfg,
		registry: registry.New(),
		layers:   layers.NewManager(s.cfg.MaxLayers, s.cfg.MaxEffectsPerLayer),
		presets:  presets.NewLibrary(),
		activity: activity.NewLog(s.cfg.ActivityCapacity),
		bus:      events.NewBus(),
		pipeline: render.NewPipeline(render.NewCache(s.cfg.CacheSize), s.backend, s.cfg.RenderTimeout),
		logger:   logging.NewComponentLogger(s.logger, "engine"),
		now:      s.now,
		newID:    s.newID,
	}
	e.activity.SetClock(s.now)
	e.presets.Seed()
	e.logger.Debug("engine initialized",
		logging.Int("max_layers", s.cfg.MaxLayers),
		logging.Int("max_effects_per_layer", s.cfg.MaxEffectsPerLayer),
		logging.Int("cache_size", s.cfg.CacheSize),
		logging.Int("presets", e.presets.Len()),
	)
	return e, nil
}

// NewWithProfile constructs an engine from a named profile (basic, pro, dev).
func NewWithProfile(profile string, opts ...Option) (*Engine, error) {
	cfg, err := tuning.Profile(profile)
	if err != nil {
		return nil, err
	}
	return New(append([]Option{WithConfig(cfg)}, opts...)...)
}

// batch collects the events a mutation produces so they can be published
// once the writer lock is released.
type batch struct {
	events []events.Event
}

func (b *batch) emit(ev events.Event) {
	b.events = append(b.events, ev)
}

// run executes fn under the writer lock, then publishes the collected events.
// CapacityExceeded and Validation failures additionally publish one error event.
func (e *Engine) run(operation, target string, fn func(b *batch) error) error {
	b := &batch{}
	e.mu.Lock()
	err := fn(b)
	e.mu.Unlock()
	if err != nil {
		e.fail(b, operation, target, err)
	}
	for _, ev := range b.events {
		e.bus.Publish(ev)
	}
	return err
}

func (e *Engine) fail(b *batch, operation, target string, err error) {
	code := faults.CodeOf(err)
	switch code {
	case faults.CodeCapacityExceeded, faults.CodeValidation:
		b.emit(events.Error{Code: string(code), Operation: operation, TargetID: target, Message: err.Error()})
		logging.WarnWithContext(e.logger, operation+" rejected", "engine_"+string(code),
			logging.String("target", target),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, hintFor(code)),
		)
	default:
		e.logger.Debug(operation+" failed",
			logging.String("target", target),
			logging.String("code", string(code)),
			logging.Error(err),
		)
	}
}

func hintFor(code faults.Code) string {
	if code == faults.CodeCapacityExceeded {
		return "raise the engine limits or remove unused layers and effects"
	}
	return "check the supplied values"
}

// record appends an activity entry and queues its event. Callers hold e.mu.
func (e *Engine) record(b *batch, typ activity.Type, targetID, description string, metadata map[string]any) {
	entry := e.activity.Append(typ, targetID, description, metadata)
	b.emit(events.ActivityLogged{
		Sequence:    entry.Sequence,
		Type:        string(entry.Type),
		TargetID:    entry.TargetID,
		Description: entry.Description,
		Timestamp:   entry.Timestamp,
	})
}

// On registers a handler for events of kind k.
func (e *Engine) On(k events.Kind, fn events.Handler) events.Subscription {
	return e.bus.On(k, fn)
}

// Off removes a handler registered with On or events.Subscribe.
func (e *Engine) Off(sub events.Subscription) bool {
	return e.bus.Off(sub)
}

// Bus exposes the event bus for typed subscriptions via events.Subscribe.
func (e *Engine) Bus() *events.Bus {
	return e.bus
}

// Close drops every event handler. The engine stays usable.
func (e *Engine) Close() {
	e.bus.Clear()
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() tuning.Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// UpdateConfig merges p into the configuration and applies the new limits.
// Lowered limits never remove existing layers or effects.
func (e *Engine) UpdateConfig(p tuning.Patch) (tuning.Config, error) {
	var merged tuning.Config
	err := e.run("update config", "", func(b *batch) error {
		next := e.cfg.Merge(p)
		if err := next.Validate(); err != nil {
			return err
		}
		e.cfg = next
		e.layers.SetLimits(next.MaxLayers, next.MaxEffectsPerLayer)
		e.pipeline.Cache().Resize(next.CacheSize)
		e.pipeline.SetTimeout(next.RenderTimeout)
		e.activity.Resize(next.ActivityCapacity)
		merged = next
		b.emit(events.ConfigUpdated{Config: next})
		return nil
	})
	if err != nil {
		return tuning.Config{}, err
	}
	e.logger.Info("engine config updated",
		logging.Int("max_layers", merged.MaxLayers),
		logging.Int("max_effects_per_layer", merged.MaxEffectsPerLayer),
		logging.Int("cache_size", merged.CacheSize),
		logging.String("preview_quality", string(merged.PreviewQuality)),
	)
	return merged, nil
}

// Stats summarizes engine state.
type Stats struct {
	TotalEffects   int               `json:"total_effects"`
	ActiveEffects  int               `json:"active_effects"`
	EffectsByKind  map[string]int    `json:"effects_by_kind"`
	TotalLayers    int               `json:"total_layers"`
	TotalPresets   int               `json:"total_presets"`
	Activities     int               `json:"activities"`
	RenderTime     time.Duration     `json:"render_time"`
	FramesRendered uint64            `json:"frames_rendered"`
	CacheHits      uint64            `json:"cache_hits"`
	Cache          render.CacheStats `json:"cache"`
	Config         tuning.Config     `json:"config"`
}

// GetStats returns derived counters. RenderTime is the duration of the most
// recent backend render; cache hits do not change it.
func (e *Engine) GetStats() Stats {
	all := e.registry.All()
	byKind := make(map[string]int)
	for _, ef := range all {
		byKind[string(ef.Kind())]++
	}
	e.statsMu.Lock()
	renderTime, frames, hits := e.lastRenderTime, e.framesRendered, e.cacheHits
	e.statsMu.Unlock()
	return Stats{
		TotalEffects:   len(all),
		ActiveEffects:  e.registry.EnabledCount(),
		EffectsByKind:  byKind,
		TotalLayers:    e.layers.Len(),
		TotalPresets:   e.presets.Len(),
		Activities:     e.activity.Len(),
		RenderTime:     renderTime,
		FramesRendered: frames,
		CacheHits:      hits,
		Cache:          e.pipeline.Cache().Stats(),
		Config:         e.GetConfig(),
	}
}

// GetActivities returns up to limit entries, most recent first. A limit of
// zero or less returns the whole log.
func (e *Engine) GetActivities(limit int) []activity.Entry {
	return e.activity.Recent(limit)
}

// ActivitiesSince returns the entries appended after seq, oldest first,
// and the sequence to pass on the next call.
func (e *Engine) ActivitiesSince(seq uint64) ([]activity.Entry, uint64) {
	return e.activity.Since(seq)
}

// Reset clears effects, layers, activities and the frame cache, then seeds
// the built-in presets again. Id sequences are not rewound.
func (e *Engine) Reset() {
	_ = e.run("reset", "", func(b *batch) error {
		e.registry.Clear()
		e.layers.Clear()
		e.activity.Clear()
		e.pipeline.Cache().Clear()
		e.presets.Clear()
		e.presets.Seed()
		e.statsMu.Lock()
		e.lastRenderTime, e.framesRendered, e.cacheHits = 0, 0, 0
		e.statsMu.Unlock()
		b.emit(events.SystemReset{})
		return nil
	})
	e.logger.Info("engine reset", logging.Int("presets", e.presets.Len()))
}

// ClearRenderCache empties the frame cache and returns the number of frames dropped.
func (e *Engine) ClearRenderCache() int {
	evicted := e.pipeline.Cache().Clear()
	e.bus.Publish(events.CacheCleared{Evicted: evicted})
	e.logger.Debug("render cache cleared", logging.Int("evicted", evicted))
	return evicted
}

// IsNotFound reports whether err refers to an unknown effect, layer or preset.
func IsNotFound(err error) bool {
	return errors.Is(err, faults.ErrNotFound)
}
