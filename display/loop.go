package display

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"helix-lamp/genome"
	"helix-lamp/lights"
	"helix-lamp/types"
)

// Source supplies consecutive loci to scroll across the strip.
// genome.Consensus implements it.
type Source interface {
	Next() (genome.Locus, error)
	Close() error
}

// Options tune a Loop.
type Options struct {
	// Refresh is the time between frames pushed to the strip.
	Refresh time.Duration
	// BasesPerSecond is the scroll speed; 0 disables scrolling.
	BasesPerSecond float64
	// JumpProb is the chance, per base scrolled, of jumping to a new
	// genome location.
	JumpProb float64
	// HomRefFactor dims loci that match the reference.
	HomRefFactor float64
}

// Loop owns the strip for its lifetime and renders at a fixed rate.
type Loop struct {
	strip lights.Strip
	log   *types.Logger
	opts  Options

	window []genome.Locus // loci currently on display
	pairs  int            // window length in scroll mode; 0 in static mode
	src    Source
	jump   func() (Source, error)
	rng    *rand.Rand
}

// NewStatic builds a loop that holds one fixed frame: len(loci) must
// equal the strip size, one call per LED.
func NewStatic(strip lights.Strip, loci []genome.Locus, opts Options, logger *types.Logger) (*Loop, error) {
	if len(loci) != strip.Size() {
		return nil, fmt.Errorf("have %d calls, strip has %d LEDs", len(loci), strip.Size())
	}
	return &Loop{strip: strip, log: logger, opts: opts, window: loci}, nil
}

// NewScroll builds a loop that walks src across the strip, showing
// pairs loci and their complements. jump, when non-nil, produces a
// replacement source at a fresh genome location; it is used when the
// source runs dry and for random jumps.
func NewScroll(strip lights.Strip, src Source, jump func() (Source, error), opts Options, logger *types.Logger) (*Loop, error) {
	pairs := strip.Size() / 2
	if pairs == 0 {
		return nil, fmt.Errorf("strip of %d LEDs cannot show paired strands", strip.Size())
	}
	l := &Loop{
		strip: strip,
		log:   logger,
		opts:  opts,
		pairs: pairs,
		src:   src,
		jump:  jump,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	window := make([]genome.Locus, 0, pairs)
	for len(window) < pairs {
		locus, err := src.Next()
		if err != nil {
			return nil, fmt.Errorf("failed to fill initial window: %w", err)
		}
		window = append(window, locus)
	}
	l.window = window
	return l, nil
}

// Run renders until ctx is cancelled, then blanks the strip. Hardware
// write failures drop the frame and keep going; a lost frame is not
// visible at display rate.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.opts.Refresh)
	defer ticker.Stop()
	defer func() {
		if err := l.strip.Blank(); err != nil {
			l.log.WarnLog.Printf("Failed to blank strip on exit: %s", err.Error())
		}
	}()

	var owed float64 // bases the scroll position is behind
	for {
		select {
		case <-ctx.Done():
			l.log.InfoLog.Printf("Display loop stopping: %s", ctx.Err())
			return nil
		case <-ticker.C:
		}

		if l.pairs > 0 && l.opts.BasesPerSecond > 0 {
			owed += l.opts.BasesPerSecond * l.opts.Refresh.Seconds()
			for owed >= 1 {
				owed--
				l.step()
			}
		}

		frame, err := l.buildFrame()
		if err != nil {
			l.log.ErrorLog.Printf("Failed to build frame: %s", err.Error())
			continue
		}
		if err := l.strip.Write(frame); err != nil {
			l.log.WarnLog.Printf("Failed to write frame: %s", err.Error())
		}
	}
}

// Close releases the loop's source, if any.
func (l *Loop) Close() error {
	if l.src != nil {
		return l.src.Close()
	}
	return nil
}

func (l *Loop) buildFrame() ([]lights.Color, error) {
	if l.pairs > 0 {
		return PairedFrame(l.window, l.pairs, l.opts.HomRefFactor)
	}
	return Frame(l.window, l.strip.Size(), l.opts.HomRefFactor)
}

// step advances the window one locus, occasionally teleporting the
// whole display to a new genome location.
func (l *Loop) step() {
	if l.jump != nil && l.rng.Float64() < l.opts.JumpProb {
		if err := l.doJump(); err != nil {
			l.log.ErrorLog.Printf("Jump failed: %s", err.Error())
		}
		return
	}

	locus, err := l.src.Next()
	if err == io.EOF {
		if l.jump == nil {
			return
		}
		if err := l.doJump(); err != nil {
			l.log.ErrorLog.Printf("Failed to restart at contig end: %s", err.Error())
		}
		return
	}
	if err != nil {
		l.log.ErrorLog.Printf("Failed to read next locus: %s", err.Error())
		return
	}
	copy(l.window, l.window[1:])
	l.window[len(l.window)-1] = locus
}

func (l *Loop) doJump() error {
	src, err := l.jump()
	if err != nil {
		return err
	}
	window := make([]genome.Locus, 0, l.pairs)
	for len(window) < l.pairs {
		locus, err := src.Next()
		if err != nil {
			src.Close()
			return fmt.Errorf("failed to fill window after jump: %w", err)
		}
		window = append(window, locus)
	}
	if err := l.src.Close(); err != nil {
		l.log.WarnLog.Printf("Failed to close previous source: %s", err.Error())
	}
	l.src = src
	l.window = window
	return nil
}
