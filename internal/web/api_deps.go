package web

import (
	"github.com/rook-computer/drawstring/internal/render"
	"github.com/rook-computer/drawstring/internal/state"
)

// logger matches the logging shape used across the host. It is tiny so callers can
// pass existing loggers without adapters.
type logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Infof(string, string, ...interface{})  {}
func (noopLogger) Errorf(string, string, ...interface{}) {}

// APIV1Deps are the collaborators of the API handlers.
type APIV1Deps struct {
	// Fonts is shared by every request; FontBook is safe for concurrent use.
	Fonts *render.FontBook
	// Store holds the live panels. Without one the /panels routes report 501.
	Store  *state.Store
	Logger logger
}

func (d APIV1Deps) withDefaults() APIV1Deps {
	out := d
	if out.Fonts == nil {
		out.Fonts = render.NewFontBook()
	}
	if out.Logger == nil {
		out.Logger = noopLogger{}
	}
	return out
}
