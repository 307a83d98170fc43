package drawstring

import (
	"fmt"
	"runtime/debug"

	"github.com/rook-computer/drawstring/internal/render"
)

// Logger receives non-fatal instruction failures.
type Logger interface {
	Infof(component, format string, args ...interface{})
	Errorf(component, format string, args ...interface{})
}

type handler func(in *Interpreter, p params) error

// handlers binds every Command to its drawer. It is filled once in init and never
// modified afterwards.
var handlers [numCommands]handler

func init() {
	handlers = [numCommands]handler{
		CmdFill:          (*Interpreter).fill,
		CmdLine:          (*Interpreter).line,
		CmdCircle:        (*Interpreter).circle,
		CmdFillCircle:    (*Interpreter).fillCircle,
		CmdRect:          (*Interpreter).rectangle,
		CmdFillRect:      (*Interpreter).fillRectangle,
		CmdTriangle:      (*Interpreter).triangle,
		CmdFillTriangle:  (*Interpreter).fillTriangle,
		CmdArc:           (*Interpreter).arc,
		CmdSmoothArc:     (*Interpreter).smoothArc,
		CmdText:          (*Interpreter).text,
		CmdTextCentered:  (*Interpreter).textCentered,
		CmdTextFitted:    (*Interpreter).textFitted,
		CmdFont:          (*Interpreter).setFont,
		CmdFontSize:      (*Interpreter).setFontSize,
		CmdFontAlign:     (*Interpreter).setFontAlign,
		CmdFontColor:     (*Interpreter).setFontColor,
		CmdFontBackColor: (*Interpreter).setFontBackColor,
		CmdQRCode:        (*Interpreter).qrCode,
	}
}

// Interpreter executes drawstring scripts against one surface. It is not safe for
// concurrent use; use one Interpreter per surface.
type Interpreter struct {
	surface render.Surface
	state   State

	Logger Logger
}

// New binds an interpreter to surface.
func New(surface render.Surface) (*Interpreter, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}
	return &Interpreter{surface: surface, state: DefaultState()}, nil
}

// State returns the drawing state left by the last Render call.
func (in *Interpreter) State() State { return in.state }

// Render clears the surface, resets the drawing state and executes script in order.
// Instruction failures are collected in the result and never stop the run.
func (in *Interpreter) Render(script string) Result {
	in.surface.Clear()
	in.reset()

	instructions := Parse(script)
	res := Result{Instructions: len(instructions)}
	for _, inst := range instructions {
		cmd, ok := Lookup(inst.Name)
		if !ok {
			res.Skipped = append(res.Skipped, inst)
			continue
		}
		res.Executed++
		if err := in.exec(cmd, inst.Params); err != nil {
			ie := &InstructionError{Line: inst.Line, Command: inst.Name, Err: err}
			res.Errors = append(res.Errors, ie)
			if in.Logger != nil {
				in.Logger.Errorf("drawstring", "%v", ie)
			}
		}
	}
	return res
}

func (in *Interpreter) reset() {
	in.state = DefaultState()
	if err := in.applyFont(); err != nil && in.Logger != nil {
		in.Logger.Errorf("drawstring", "default font: %v", err)
	}
	in.surface.SetTextAlign(in.state.Align)
	in.surface.SetLineWidth(1)
}

// exec runs one handler, turning a panic into an error.
func (in *Interpreter) exec(cmd Command, p params) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if in.Logger != nil {
				in.Logger.Errorf("drawstring", "panic in %s: %v\n%s", cmd, r, debug.Stack())
			}
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return handlers[cmd](in, p)
}

// applyFont pushes the state's font to the surface.
func (in *Interpreter) applyFont() error {
	return in.surface.SetFont(in.state.FontFamily, in.state.FontSize)
}
