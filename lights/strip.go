// Package lights drives the sculpture's addressable LED string.
package lights

// Color is an 8-bit RGB triple, one LED's worth of frame data.
type Color struct {
	R, G, B uint8
}

// ColorOff is an unlit LED.
var ColorOff = Color{}

// Strip is a write-only, fixed-length LED device. Implementations own
// their transport; the display loop owns the Strip.
type Strip interface {
	// Size is the number of LEDs on the string.
	Size() int
	// Write pushes a full frame. len(frame) must equal Size.
	Write(frame []Color) error
	// Blank turns every LED off.
	Blank() error
	// Close blanks the string and releases the transport.
	Close() error
}
