package drawstring

import "github.com/rook-computer/drawstring/internal/render"

// Trace runs script against a Recorder of the given size and returns the recorded
// surface calls together with the result.
func Trace(script string, width, height int) ([]render.Call, Result) {
	rec := render.NewRecorder(width, height)
	in, err := New(rec)
	if err != nil {
		return nil, Result{}
	}
	res := in.Render(script)
	return rec.Calls, res
}
