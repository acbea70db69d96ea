package genome

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// FaiRecord is one entry of a FASTA index.
type FaiRecord struct {
	Contig       string // contig (chromosome) name
	Length       int64  // bases in the contig
	Start        int64  // byte offset of the contig's sequence in the FASTA
	BasesPerLine int64  // bases per sequence line
	BytesPerLine int64  // bytes per sequence line, including the newline
}

// ReadFai parses a .fai file, keeping only the requested contigs.
// Every requested contig must be present.
func ReadFai(path string, contigs []string) (map[string]FaiRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fai %s: %w", path, err)
	}
	defer f.Close()

	wanted := make(map[string]bool, len(contigs))
	for _, c := range contigs {
		wanted[c] = true
	}

	index := make(map[string]FaiRecord)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		cols := strings.Split(strings.TrimRight(scanner.Text(), "\r\n"), "\t")
		if len(cols) < 5 || !wanted[cols[0]] {
			continue
		}
		rec := FaiRecord{Contig: cols[0]}
		nums := []*int64{&rec.Length, &rec.Start, &rec.BasesPerLine, &rec.BytesPerLine}
		for i, dst := range nums {
			v, err := strconv.ParseInt(cols[i+1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("bad fai entry for %s: %w", cols[0], err)
			}
			*dst = v
		}
		index[rec.Contig] = rec
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read fai %s: %w", path, err)
	}

	for _, c := range contigs {
		if _, ok := index[c]; !ok {
			return nil, fmt.Errorf("contig %s missing from fai %s", c, path)
		}
	}
	return index, nil
}

// SeqOffset is the byte offset in the FASTA of the base after skipping
// pos bases into the contig.
func (r FaiRecord) SeqOffset(pos int64) int64 {
	return r.Start + pos/r.BasesPerLine*r.BytesPerLine + pos%r.BasesPerLine
}
