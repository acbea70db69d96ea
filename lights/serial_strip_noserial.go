//go:build noserial

package lights

import "fmt"

// SerialStrip is the stub used when serial support is compiled out.
type SerialStrip struct{}

// NewSerialStrip always fails in a noserial build.
func NewSerialStrip(portName string, baudRate, size int) (*SerialStrip, error) {
	return nil, fmt.Errorf("serial port support not available in this build")
}

func (s *SerialStrip) Size() int {
	return 0
}

func (s *SerialStrip) Write(frame []Color) error {
	return fmt.Errorf("serial port support not available in this build")
}

func (s *SerialStrip) Blank() error {
	return fmt.Errorf("serial port support not available in this build")
}

func (s *SerialStrip) Close() error {
	return nil
}
