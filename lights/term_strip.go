package lights

import (
	"fmt"
	"io"
)

// TermStrip renders frames as truecolor blocks on a terminal, for
// running the lamp without its hardware attached.
type TermStrip struct {
	out  io.Writer
	size int
}

func NewTermStrip(out io.Writer, size int) *TermStrip {
	return &TermStrip{out: out, size: size}
}

func (t *TermStrip) Size() int {
	return t.size
}

func (t *TermStrip) Write(frame []Color) error {
	if len(frame) != t.size {
		return fmt.Errorf("frame has %d colors, strip has %d LEDs", len(frame), t.size)
	}
	if _, err := fmt.Fprint(t.out, "\r"); err != nil {
		return err
	}
	for _, c := range frame {
		if _, err := fmt.Fprintf(t.out, "\x1b[38;2;%d;%d;%dm██", c.R, c.G, c.B); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(t.out, "\x1b[0m")
	return err
}

func (t *TermStrip) Blank() error {
	return t.Write(make([]Color, t.size))
}

func (t *TermStrip) Close() error {
	if err := t.Blank(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(t.out)
	return err
}
