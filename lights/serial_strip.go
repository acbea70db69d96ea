//go:build !noserial

package lights

import (
	"fmt"
	"log"

	"github.com/tarm/serial"
)

// SerialStrip drives an Adalight-speaking LED controller over a serial
// port. The port stays open for the strip's lifetime; frames go out at
// display rate.
type SerialStrip struct {
	port *serial.Port
	size int
	buf  []byte
}

// NewSerialStrip opens the serial port and blanks the string.
func NewSerialStrip(portName string, baudRate, size int) (*SerialStrip, error) {
	c := &serial.Config{
		Name: portName,
		Baud: baudRate,
	}
	p, err := serial.OpenPort(c)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", portName, err)
	}
	s := &SerialStrip{port: p, size: size}
	if err := s.Blank(); err != nil {
		if cerr := p.Close(); cerr != nil {
			log.Printf("Error closing serial port: %s", cerr.Error())
		}
		return nil, err
	}
	return s, nil
}

func (s *SerialStrip) Size() int {
	return s.size
}

func (s *SerialStrip) Write(frame []Color) error {
	if len(frame) != s.size {
		return fmt.Errorf("frame has %d colors, strip has %d LEDs", len(frame), s.size)
	}
	s.buf = framePacket(frame, s.buf)
	if _, err := s.port.Write(s.buf); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	return nil
}

func (s *SerialStrip) Blank() error {
	return s.Write(make([]Color, s.size))
}

func (s *SerialStrip) Close() error {
	if err := s.Blank(); err != nil {
		log.Printf("Error blanking strip on close: %s", err.Error())
	}
	return s.port.Close()
}
