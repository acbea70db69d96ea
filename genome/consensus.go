package genome

import (
	"fmt"
	"io"
	"sort"

	"helix-lamp/types"
)

// Locus is the genotype at one position. Diploid: Bases holds both
// alleles, identical when homozygous. Bases[1] is the displayed allele.
type Locus struct {
	Contig string
	Pos    int64
	Bases  [2]Base
	Status RefStatus
}

// Consensus merges the reference base stream with the sample's variant
// calls, yielding one Locus per displayed base.
type Consensus struct {
	ref     *Reference
	vcf     *Scanner
	next    *Variant // lookahead into the vcf stream
	pending []Locus  // queued loci from a multi-base variant
	log     *types.Logger
}

// OpenConsensus builds the consensus stream for one contig starting at
// startPos (0-based offset into the contig).
func OpenConsensus(fastaPath, vcfPath string, fai FaiRecord, startPos int64, logger *types.Logger) (*Consensus, error) {
	ref, err := OpenReference(fastaPath, fai, startPos, logger)
	if err != nil {
		return nil, err
	}
	vcf, err := OpenVCF(vcfPath, fai.Contig)
	if err != nil {
		ref.Close()
		return nil, err
	}
	if err := vcf.SeekPos(startPos + 1); err != nil {
		ref.Close()
		vcf.Close()
		return nil, fmt.Errorf("failed to position vcf at %s:%d: %w", fai.Contig, startPos, err)
	}
	c := &Consensus{ref: ref, vcf: vcf, log: logger}
	if c.next, err = vcf.Next(); err != nil && err != io.EOF {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Consensus) Close() error {
	err := c.ref.Close()
	if cerr := c.vcf.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// Next returns the next locus of the consensus sequence. io.EOF ends
// the contig.
func (c *Consensus) Next() (Locus, error) {
	if len(c.pending) > 0 {
		l := c.pending[0]
		c.pending = c.pending[1:]
		return l, nil
	}

	pos, refBase, err := c.ref.Next()
	if err != nil {
		return Locus{}, err
	}
	contig := c.ref.Contig()

	if c.next == nil || pos != c.next.Pos {
		return Locus{Contig: contig, Pos: pos, Bases: [2]Base{refBase, refBase}, Status: HomRef}, nil
	}

	// Collect every call at this position.
	variants := []*Variant{c.next}
	c.next = nil
	for {
		v, err := c.vcf.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Locus{}, err
		}
		if v.Pos != pos {
			c.next = v
			break
		}
		variants = append(variants, v)
	}

	for _, v := range variants {
		if v.Ref[0] != refBase {
			c.log.ErrorLog.Printf("%s:%d difference between vcf ref (%s) and fasta ref (%s)",
				contig, pos, v.Ref[0], refBase)
		}
	}

	variants = c.filterVariants(variants, contig, pos)
	v := pickVariant(variants)
	gt := v.Genotype()
	status := StatusForGenotype(gt)

	if v.Type == SNP {
		options := flattenAlleles(v)
		bases := [2]Base{options[gt[0]], options[gt[1]]}
		return Locus{Contig: contig, Pos: pos, Bases: bases, Status: status}, nil
	}

	// Indel: emit the two allele sequences base by base, padding the
	// short side, then resync the reference and variant streams.
	alleles := v.Alleles()
	a0, a1 := alleles[gt[0]], alleles[gt[1]]
	n := len(a0)
	if len(a1) > n {
		n = len(a1)
	}
	loci := make([]Locus, n)
	for i := 0; i < n; i++ {
		b0, b1 := BaseX, BaseX
		if i < len(a0) {
			b0 = a0[i]
		}
		if i < len(a1) {
			b1 = a1[i]
		}
		loci[i] = Locus{Contig: contig, Pos: pos, Bases: [2]Base{b0, b1}, Status: status}
	}

	if err := c.ref.Skip(len(v.Ref) - 1); err != nil && err != io.EOF {
		return Locus{}, err
	}
	// Calls overlapping the deleted span cannot be represented; skip them.
	for c.next != nil && c.next.Pos < pos+int64(len(v.Ref)) {
		c.log.WarnLog.Printf("%s:%d dropping call inside deleted span starting at %d",
			contig, c.next.Pos, pos)
		nv, err := c.vcf.Next()
		if err == io.EOF {
			c.next = nil
			break
		}
		if err != nil {
			return Locus{}, err
		}
		c.next = nv
	}

	c.pending = loci[1:]
	return loci[0], nil
}

// flattenAlleles lists the single-base options a SNP genotype indexes:
// reference first, then each alternate.
func flattenAlleles(v *Variant) []Base {
	options := []Base{v.Ref[0]}
	for _, a := range v.Alts {
		options = append(options, a...)
	}
	return options
}

// pickVariant prefers an SNP when one is present; the quality scores of
// SNP and indel calls are not comparable.
func pickVariant(variants []*Variant) *Variant {
	for _, v := range variants {
		if v.Type == SNP {
			return v
		}
	}
	return variants[0]
}

// filterVariants reduces colocated calls to a compatible diploid pair.
// The upstream caller emits occasional SNP calls on top of indels; keep
// the highest-quality calls, preferring SNPs, and log the rest.
func (c *Consensus) filterVariants(variants []*Variant, contig string, pos int64) []*Variant {
	sort.SliceStable(variants, func(i, j int) bool {
		return variants[i].Qual > variants[j].Qual
	})

	if len(variants) > 2 {
		c.log.WarnLog.Printf("%d variant calls at %s:%d, dropping lowest quality non-SNPs",
			len(variants), contig, pos)
		kept := make([]*Variant, 0, len(variants))
		toDrop := len(variants) - 2
		for i := len(variants) - 1; i >= 0; i-- {
			if toDrop > 0 && variants[i].Type != SNP {
				toDrop--
				continue
			}
			kept = append(kept, variants[i])
		}
		sort.SliceStable(kept, func(i, j int) bool {
			return kept[i].Qual > kept[j].Qual
		})
		if len(kept) > 2 {
			c.log.ErrorLog.Printf("%d SNP variant calls at %s:%d", len(kept), contig, pos)
			kept = kept[:2]
		}
		variants = kept
	}

	if len(variants) == 2 {
		het := true
		for _, v := range variants {
			gt := v.Genotype()
			if gt != [2]int{0, 1} {
				het = false
			}
		}
		if !het {
			hasSNP := false
			for _, v := range variants {
				if v.Type == SNP {
					hasSNP = true
				}
			}
			if hasSNP {
				c.log.WarnLog.Printf("%s:%d one of 2 variant calls not heterozygous, dropping indel", contig, pos)
				snps := variants[:0]
				for _, v := range variants {
					if v.Type == SNP {
						snps = append(snps, v)
					}
				}
				variants = snps
			} else {
				c.log.WarnLog.Printf("%s:%d one of 2 variant calls not heterozygous, dropping lowest quality", contig, pos)
				variants = variants[:1]
			}
		}
	}

	return variants
}
