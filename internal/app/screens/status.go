package screens

import (
	"fmt"
	"strings"

	"github.com/rook-computer/drawstring/internal/state"
)

// StatusScript returns a drawstring script that shows the host phase and error.
// Commas in the error would split the text field, so they are replaced.
func StatusScript(st state.State, width, height int) string {
	var b strings.Builder
	color := "white"
	if st.Phase == state.ERROR {
		color = "red"
	}
	fmt.Fprintf(&b, "fill,black\n")
	fmt.Fprintf(&b, "fcolor,%s\n", color)
	fmt.Fprintf(&b, "textf,%s,0,%d,%d,%d\n", st.Phase, height/4, width, height/4)
	msg := st.Err
	if msg == "" && len(st.Panels) == 0 {
		msg = "no scripts"
	}
	if msg != "" {
		msg = strings.NewReplacer(",", ";", "\n", " ").Replace(msg)
		fmt.Fprintf(&b, "fcolor,gray\n")
		fmt.Fprintf(&b, "textf,%s,8,%d,%d,%d\n", msg, height/2, width-16, height/8)
	}
	return b.String()
}
