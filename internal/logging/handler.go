package logging

import (
	"context"
	"log/slog"
	"slices"
	"sync/atomic"
)

// SwappableHandler forwards records to a handler that can be replaced at
// runtime. Handlers derived through WithAttrs or WithGroup share the
// replaceable base, so a logger built with slog.Logger.With before Upgrade
// still writes to the upgraded outputs.
type SwappableHandler struct {
	base  *atomic.Pointer[slog.Handler]
	steps []func(slog.Handler) slog.Handler

	// derived caches steps applied to the current base.
	derived atomic.Pointer[derivedHandler]
}

type derivedHandler struct {
	base    *slog.Handler
	handler slog.Handler
}

// NewSwappableHandler creates a handler forwarding to initial.
func NewSwappableHandler(initial slog.Handler) *SwappableHandler {
	base := new(atomic.Pointer[slog.Handler])
	base.Store(&initial)
	return &SwappableHandler{base: base}
}

// Swap replaces the base handler for sh and every handler derived from it.
// Safe to call while records are being handled.
func (sh *SwappableHandler) Swap(next slog.Handler) {
	sh.base.Store(&next)
}

// current returns the base handler with this handler's attrs and groups applied.
func (sh *SwappableHandler) current() slog.Handler {
	base := sh.base.Load()
	if len(sh.steps) == 0 {
		return *base
	}
	if d := sh.derived.Load(); d != nil && d.base == base {
		return d.handler
	}

	h := *base
	for _, step := range sh.steps {
		h = step(h)
	}
	sh.derived.Store(&derivedHandler{base: base, handler: h})
	return h
}

func (sh *SwappableHandler) derive(step func(slog.Handler) slog.Handler) *SwappableHandler {
	steps := append(slices.Clone(sh.steps), step)
	return &SwappableHandler{base: sh.base, steps: steps}
}

// Enabled reports whether the current handler handles records at level.
func (sh *SwappableHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return sh.current().Enabled(ctx, level)
}

// Handle forwards r to the current handler.
func (sh *SwappableHandler) Handle(ctx context.Context, r slog.Record) error {
	return sh.current().Handle(ctx, r)
}

// WithAttrs returns a handler adding attrs to every record.
func (sh *SwappableHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return sh
	}
	return sh.derive(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

// WithGroup returns a handler nesting later attrs under name.
func (sh *SwappableHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return sh
	}
	return sh.derive(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}
