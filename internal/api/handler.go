package api

import (
	"github.com/SherClockHolmes/webpush-go"

	"balboa-parking-backend/internal/engine"
	"balboa-parking-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	engine  *engine.Engine
	webpush *webpush.Options

	defaultVisitHours float64
	tramFrequency     *int
}

// Options configures a Handler.
type Options struct {
	Webpush *webpush.Options

	// DefaultVisitHours is used when a request omits visit_hours.
	DefaultVisitHours float64

	// TramFrequencyMinutes is the tram headway; zero means no schedule data.
	TramFrequencyMinutes int
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, eng *engine.Engine, opts Options) *Handler {
	h := &Handler{
		store:             s,
		engine:            eng,
		webpush:           opts.Webpush,
		defaultVisitHours: opts.DefaultVisitHours,
	}
	if h.defaultVisitHours <= 0 {
		h.defaultVisitHours = 2
	}
	if opts.TramFrequencyMinutes > 0 {
		freq := opts.TramFrequencyMinutes
		h.tramFrequency = &freq
	}
	return h
}
