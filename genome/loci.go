package genome

import (
	"fmt"
	"io"
)

// LoadLoci reads the pre-filtered variant file at path and returns
// exactly the first n single-nucleotide calls for contig, in file
// order. A missing file, a malformed record, or fewer than n usable
// calls all fail: the display cannot start without its base pairs.
func LoadLoci(path, contig string, n int) ([]Locus, error) {
	s, err := OpenVCF(path, contig)
	if err != nil {
		return nil, err
	}
	defer s.Close()
	s.Strict = true

	loci := make([]Locus, 0, n)
	for len(loci) < n {
		v, err := s.Next()
		if err == io.EOF {
			return nil, fmt.Errorf("variant file %s has %d usable calls, need %d", path, len(loci), n)
		}
		if err != nil {
			return nil, fmt.Errorf("variant file %s: %w", path, err)
		}
		if v.Type != SNP {
			continue
		}
		gt := v.Genotype()
		options := flattenAlleles(v)
		loci = append(loci, Locus{
			Contig: v.Contig,
			Pos:    v.Pos,
			Bases:  [2]Base{options[gt[0]], options[gt[1]]},
			Status: StatusForGenotype(gt),
		})
	}
	return loci, nil
}
