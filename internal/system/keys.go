package system

import "encoding/binary"

// Key codes from linux/input-event-codes.h.
const (
	KeyR  uint16 = 19
	KeyF4 uint16 = 62
	KeyF5 uint16 = 63
)

const (
	evKey      = 0x01
	keyPressed = 1
)

// KeyActions maps key codes to the function run on every press of that key.
type KeyActions map[uint16]func()

// inputEventSize is the size of struct input_event: a timeval of tvSize bytes, then
// u16 type, u16 code and s32 value.
func inputEventSize(tvSize int) int { return tvSize + 8 }

// decodeKeyPresses returns the key codes pressed in buf, a run of little-endian
// input_event records. Releases, autorepeats, other event types and a trailing
// partial record are ignored.
func decodeKeyPresses(buf []byte, tvSize int) []uint16 {
	size := inputEventSize(tvSize)
	var codes []uint16
	for off := 0; off+size <= len(buf); off += size {
		rec := buf[off+tvSize : off+size]
		typ := binary.LittleEndian.Uint16(rec[0:2])
		code := binary.LittleEndian.Uint16(rec[2:4])
		value := int32(binary.LittleEndian.Uint32(rec[4:8]))
		if typ == evKey && value == keyPressed {
			codes = append(codes, code)
		}
	}
	return codes
}

// dispatch runs the action of every pressed key that has one and returns how many ran.
func (a KeyActions) dispatch(codes []uint16) int {
	n := 0
	for _, code := range codes {
		if action := a[code]; action != nil {
			action()
			n++
		}
	}
	return n
}
