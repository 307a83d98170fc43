package drawstring

import (
	"sort"
	"strings"
)

// Command identifies a logical drawstring operation. Several script names (aliases)
// may map to one Command.
type Command int

const (
	CmdFill Command = iota
	CmdLine
	CmdCircle
	CmdFillCircle
	CmdRect
	CmdFillRect
	CmdTriangle
	CmdFillTriangle
	CmdArc
	CmdSmoothArc
	CmdText
	CmdTextCentered
	CmdTextFitted
	CmdFont
	CmdFontSize
	CmdFontAlign
	CmdFontColor
	CmdFontBackColor
	CmdQRCode

	numCommands
)

var commandNames = [numCommands]string{
	CmdFill:          "fill",
	CmdLine:          "line",
	CmdCircle:        "circle",
	CmdFillCircle:    "fcircle",
	CmdRect:          "rectangle",
	CmdFillRect:      "frectangle",
	CmdTriangle:      "triangle",
	CmdFillTriangle:  "ftriangle",
	CmdArc:           "arc",
	CmdSmoothArc:     "sarc",
	CmdText:          "text",
	CmdTextCentered:  "textc",
	CmdTextFitted:    "textf",
	CmdFont:          "font",
	CmdFontSize:      "fsize",
	CmdFontAlign:     "falign",
	CmdFontColor:     "fcolor",
	CmdFontBackColor: "fbcolor",
	CmdQRCode:        "qr",
}

// commandTable maps every accepted script name, canonical or alias, to its command.
var commandTable = map[string]Command{
	"fill": CmdFill,
	"f":    CmdFill,

	"line": CmdLine,
	"l":    CmdLine,

	"circle": CmdCircle,
	"c":      CmdCircle,

	"fcircle": CmdFillCircle,
	"fc":      CmdFillCircle,

	"rectangle": CmdRect,
	"rect":      CmdRect,
	"r":         CmdRect,

	"frectangle": CmdFillRect,
	"frect":      CmdFillRect,
	"fr":         CmdFillRect,

	"triangle": CmdTriangle,
	"tri":      CmdTriangle,

	"ftriangle": CmdFillTriangle,
	"ftri":      CmdFillTriangle,

	"arc": CmdArc,

	"sarc": CmdSmoothArc,

	"text": CmdText,
	"t":    CmdText,

	"textc": CmdTextCentered,
	"tc":    CmdTextCentered,

	"textf": CmdTextFitted,
	"tf":    CmdTextFitted,

	"font": CmdFont,

	"fsize": CmdFontSize,
	"fs":    CmdFontSize,

	"falign": CmdFontAlign,
	"fa":     CmdFontAlign,

	"fcolor": CmdFontColor,
	"fcol":   CmdFontColor,

	"fbcolor": CmdFontBackColor,
	"fbcol":   CmdFontBackColor,

	"qr":     CmdQRCode,
	"qrcode": CmdQRCode,
}

// Lookup resolves a script command name, case-insensitively.
func Lookup(name string) (Command, bool) {
	cmd, ok := commandTable[strings.ToLower(strings.TrimSpace(name))]
	return cmd, ok
}

func (c Command) String() string {
	if c < 0 || c >= numCommands {
		return "unknown"
	}
	return commandNames[c]
}

// Names returns every script name accepted for c, canonical name first, the rest sorted.
func (c Command) Names() []string {
	var aliases []string
	for name, cmd := range commandTable {
		if cmd == c && name != c.String() {
			aliases = append(aliases, name)
		}
	}
	sort.Strings(aliases)
	return append([]string{c.String()}, aliases...)
}

// Commands returns all commands in declaration order.
func Commands() []Command {
	out := make([]Command, numCommands)
	for i := range out {
		out[i] = Command(i)
	}
	return out
}
