package web

import "net/http"

// RegisterAPIV1 registers the public API routes under /api/v1/.
func RegisterAPIV1(mux *http.ServeMux, deps APIV1Deps) {
	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", apiV1Router(deps)))
}

// RegisterUI serves either embedded UI assets or a directory.
func RegisterUI(mux *http.ServeMux, staticDir string) {
	mux.Handle("/", StaticUIHandler(staticDir))
}

// NewDefaultMux builds the standard mux used by both binaries:
// - /api/v1/* for the API
// - / for the preview page
func NewDefaultMux(staticDir string, deps APIV1Deps) *http.ServeMux {
	mux := http.NewServeMux()
	RegisterAPIV1(mux, deps)
	RegisterUI(mux, staticDir)
	return mux
}
