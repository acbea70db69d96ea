package genome

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"helix-lamp/types"
)

// Reference streams the bases of one contig out of an uncompressed
// FASTA, seeking with the byte arithmetic the .fai index provides.
type Reference struct {
	f   *os.File
	br  *bufio.Reader
	fai FaiRecord
	pos int64 // last returned position, 1-based
	log *types.Logger
}

// OpenReference opens the FASTA and positions the stream so that the
// next base returned is startPos+1 (1-based).
func OpenReference(path string, fai FaiRecord, startPos int64, logger *types.Logger) (*Reference, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fasta %s: %w", path, err)
	}
	if _, err := f.Seek(fai.SeqOffset(startPos), io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to seek fasta to %s:%d: %w", fai.Contig, startPos, err)
	}
	return &Reference{
		f:   f,
		br:  bufio.NewReaderSize(f, 1<<16),
		fai: fai,
		pos: startPos,
		log: logger,
	}, nil
}

func (r *Reference) Close() error {
	return r.f.Close()
}

// Contig is the contig this reference stream walks.
func (r *Reference) Contig() string {
	return r.fai.Contig
}

// Next returns the next reference base and its 1-based position.
// io.EOF ends the contig.
func (r *Reference) Next() (int64, Base, error) {
	for {
		if r.pos >= r.fai.Length {
			return 0, BaseN, io.EOF
		}
		c, err := r.br.ReadByte()
		if err != nil {
			if err == io.EOF {
				r.log.WarnLog.Printf("%s:%d contig ended prematurely, expected %d bases",
					r.fai.Contig, r.pos, r.fai.Length)
				return 0, BaseN, io.EOF
			}
			return 0, BaseN, fmt.Errorf("failed to read fasta: %w", err)
		}
		switch {
		case c == '\n' || c == '\r':
			continue
		case c == '>':
			r.log.WarnLog.Printf("%s:%d contig ended prematurely, expected %d bases, got %d",
				r.fai.Contig, r.pos, r.fai.Length, r.pos)
			return 0, BaseN, io.EOF
		case IsValidBase(c):
			r.pos++
			b, _ := ParseBase(c)
			return r.pos, b, nil
		default:
			r.log.ErrorLog.Printf("%s:%d invalid char %q in fasta", r.fai.Contig, r.pos, c)
		}
	}
}

// Skip discards n bases, used when a deletion consumes reference ahead
// of the cursor.
func (r *Reference) Skip(n int) error {
	for i := 0; i < n; i++ {
		if _, _, err := r.Next(); err != nil {
			return err
		}
	}
	return nil
}
