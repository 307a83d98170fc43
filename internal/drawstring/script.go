package drawstring

import "strings"

const (
	commentMarker = "//"
	fieldSep      = ","
)

// Instruction is one non-comment script line: a lower-cased command name and its
// trimmed positional parameters. Line is 1-based.
type Instruction struct {
	Line   int
	Name   string
	Params []string
}

// Parse splits a script into instructions. Blank lines and lines starting with "//"
// are dropped. Fields are split on every comma; there is no escaping, so a comma
// inside text content splits the text.
func Parse(script string) []Instruction {
	var out []Instruction
	for i, line := range strings.Split(script, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, commentMarker) {
			continue
		}
		fields := strings.Split(line, fieldSep)
		for j := range fields {
			fields[j] = strings.TrimSpace(fields[j])
		}
		out = append(out, Instruction{
			Line:   i + 1,
			Name:   strings.ToLower(fields[0]),
			Params: fields[1:],
		})
	}
	return out
}
