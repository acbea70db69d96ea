// Package display turns base-pair loci into LED frames and runs the
// render loop.
package display

import (
	"fmt"

	"helix-lamp/genome"
	"helix-lamp/lights"
)

// Frame maps n loci onto n LED colors, one per call. Loci matching the
// reference are dimmed by homRefFactor. Frames are rebuilt every tick
// and never reused.
func Frame(loci []genome.Locus, n int, homRefFactor float64) ([]lights.Color, error) {
	if len(loci) < n {
		return nil, fmt.Errorf("have %d loci, frame needs %d", len(loci), n)
	}
	frame := make([]lights.Color, n)
	for i := 0; i < n; i++ {
		frame[i] = locusColor(loci[i], homRefFactor)
	}
	return frame, nil
}

// PairedFrame maps n loci onto 2n LED colors: the called strand first,
// then its complement. This matches the physical string, which runs up
// one rail of the helix and back down the other.
func PairedFrame(loci []genome.Locus, n int, homRefFactor float64) ([]lights.Color, error) {
	if len(loci) < n {
		return nil, fmt.Errorf("have %d loci, frame needs %d", len(loci), n)
	}
	frame := make([]lights.Color, 2*n)
	for i := 0; i < n; i++ {
		l := loci[i]
		c1 := lights.BaseColor(l.Bases[1])
		c2 := lights.ComplementColor(l.Bases[1])
		if l.Status == genome.HomRef {
			c1 = lights.Dim(c1, homRefFactor)
			c2 = lights.Dim(c2, homRefFactor)
		}
		frame[i] = c1
		// The second strand is wired in reverse.
		frame[2*n-1-i] = c2
	}
	return frame, nil
}

func locusColor(l genome.Locus, homRefFactor float64) lights.Color {
	c := lights.BaseColor(l.Bases[1])
	if l.Status == genome.HomRef {
		c = lights.Dim(c, homRefFactor)
	}
	return c
}
