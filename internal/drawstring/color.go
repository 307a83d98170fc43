package drawstring

import "strings"

var namedColors = map[string]string{
	"black":       "#000000",
	"white":       "#FFFFFF",
	"red":         "#FF0000",
	"green":       "#00FF00",
	"blue":        "#0000FF",
	"yellow":      "#FFFF00",
	"cyan":        "#00FFFF",
	"magenta":     "#FF00FF",
	"gray":        "#808080",
	"transparent": "transparent",
}

// ResolveColor normalizes a script color token. "#..." passes unchanged, "0x..." is
// rewritten to "#...", the basic color names map to hex, and anything else is passed
// through for the surface to interpret or reject.
func ResolveColor(token string) string {
	switch {
	case strings.HasPrefix(token, "#"):
		return token
	case strings.HasPrefix(token, "0x"):
		return "#" + token[2:]
	}
	if c, ok := namedColors[strings.ToLower(token)]; ok {
		return c
	}
	return token
}

// isTransparent reports whether a resolved color disables painting.
func isTransparent(c string) bool {
	return c == "" || strings.EqualFold(c, "transparent")
}
