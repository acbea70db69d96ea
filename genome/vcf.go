package genome

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// VariantType classifies a variant call.
type VariantType int

const (
	SNP VariantType = iota
	Insertion
	Deletion
	OtherVariant // mostly mixes between insertions and deletions
)

func (t VariantType) String() string {
	switch t {
	case SNP:
		return "SNP"
	case Insertion:
		return "INS"
	case Deletion:
		return "DEL"
	default:
		return "OTHER"
	}
}

// RefStatus relates a genotype to the reference sequence.
type RefStatus int

const (
	HomRef RefStatus = iota // both alleles match the reference
	HetMix                  // one reference, one alternate allele
	HomAlt                  // both alleles the same alternate
	HetAlt                  // two different alternate alleles
)

var gtStatus = map[[2]int]RefStatus{
	{0, 0}: HomRef,
	{0, 1}: HetMix,
	{1, 1}: HomAlt,
	{1, 2}: HetAlt,
	{2, 2}: HomAlt,
}

// StatusForGenotype maps a diploid genotype to its reference status.
func StatusForGenotype(gt [2]int) RefStatus {
	if s, ok := gtStatus[gt]; ok {
		return s
	}
	if gt[0] == gt[1] {
		if gt[0] == 0 {
			return HomRef
		}
		return HomAlt
	}
	if gt[0] == 0 || gt[1] == 0 {
		return HetMix
	}
	return HetAlt
}

// Variant is one call from a filtered VCF.
type Variant struct {
	Contig string
	Pos    int64 // 1-based
	Type   VariantType
	Ref    []Base
	Alts   [][]Base
	Qual   float64
	Filter string
	Info   string
	GT     []int  // allele indices; length 1 for haploid contigs
	PL     string // phred-scaled genotype likelihoods, unparsed
}

// Genotype normalizes GT to a diploid pair; haploid calls are doubled.
func (v *Variant) Genotype() [2]int {
	if len(v.GT) == 1 {
		return [2]int{v.GT[0], v.GT[0]}
	}
	return [2]int{v.GT[0], v.GT[1]}
}

// Alleles returns the allele sequences a genotype indexes into:
// the reference first, then each alternate.
func (v *Variant) Alleles() [][]Base {
	return append([][]Base{v.Ref}, v.Alts...)
}

// ParseVCFLine parses one data line of a VCF. Lines for other contigs
// return (nil, nil).
func ParseVCFLine(line, contig string) (*Variant, error) {
	if !strings.HasPrefix(line, contig+"\t") {
		return nil, nil
	}
	cols := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
	if len(cols) < 10 {
		return nil, fmt.Errorf("vcf line has %d columns, want at least 10", len(cols))
	}

	pos, err := strconv.ParseInt(cols[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad position %q: %w", cols[1], err)
	}
	ref, err := ParseBases(cols[3])
	if err != nil {
		return nil, fmt.Errorf("%s:%d ref: %w", contig, pos, err)
	}
	altCols := strings.Split(cols[4], ",")
	alts := make([][]Base, len(altCols))
	for i, a := range altCols {
		if alts[i], err = ParseBases(a); err != nil {
			return nil, fmt.Errorf("%s:%d alt: %w", contig, pos, err)
		}
	}
	qual, err := strconv.ParseFloat(cols[5], 64)
	if err != nil {
		return nil, fmt.Errorf("%s:%d bad quality %q: %w", contig, pos, cols[5], err)
	}

	gt, pl, err := parseSample(cols[len(cols)-1])
	if err != nil {
		return nil, fmt.Errorf("%s:%d %w", contig, pos, err)
	}
	nAlleles := len(alts) + 1
	for _, g := range gt {
		if g < 0 || g >= nAlleles {
			return nil, fmt.Errorf("%s:%d genotype index %d out of range", contig, pos, g)
		}
	}

	return &Variant{
		Contig: cols[0],
		Pos:    pos,
		Type:   classify(ref, alts),
		Ref:    ref,
		Alts:   alts,
		Qual:   qual,
		Filter: cols[6],
		Info:   cols[7],
		GT:     gt,
		PL:     pl,
	}, nil
}

func classify(ref []Base, alts [][]Base) VariantType {
	allShort, allLong := true, true
	for _, a := range alts {
		if len(a) == 1 {
			allLong = false
		} else {
			allShort = false
		}
	}
	switch {
	case len(ref) == 1 && allShort:
		return SNP
	case len(ref) == 1 && allLong:
		return Insertion
	case len(ref) > 1 && allShort:
		return Deletion
	default:
		return OtherVariant
	}
}

func parseSample(col string) (gt []int, pl string, err error) {
	fields := strings.Split(col, ":")
	if len(fields) > 1 {
		pl = fields[1]
	}
	gtField := strings.ReplaceAll(fields[0], "|", "/")
	for _, g := range strings.Split(gtField, "/") {
		gi, err := strconv.Atoi(g)
		if err != nil {
			return nil, "", fmt.Errorf("bad genotype %q: %w", fields[0], err)
		}
		gt = append(gt, gi)
	}
	if len(gt) == 0 || len(gt) > 2 {
		return nil, "", fmt.Errorf("genotype %q is not haploid or diploid", fields[0])
	}
	return gt, pl, nil
}

// Scanner iterates the variants of one contig in a pre-filtered VCF.
type Scanner struct {
	rc     io.ReadCloser
	br     *bufio.Reader
	file   *os.File // non-nil only for seekable plain files
	contig string

	// FilterPass skips records whose FILTER column is not PASS.
	FilterPass bool

	// Strict turns unparsable or out-of-contig data lines into errors
	// instead of skipping them.
	Strict bool
}

// OpenVCF opens the filtered VCF at path for one contig. PASS filtering
// is on by default.
func OpenVCF(path, contig string) (*Scanner, error) {
	rc, gz, err := openReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vcf %s: %w", path, err)
	}
	s := &Scanner{
		rc:         rc,
		br:         bufio.NewReaderSize(rc, 1<<16),
		contig:     contig,
		FilterPass: true,
	}
	if !gz {
		if f, ok := rc.(*os.File); ok {
			s.file = f
		}
	}
	return s, nil
}

// NewScanner wraps an already-open reader, e.g. one instrumented with a
// progress bar. The result is not seekable.
func NewScanner(r io.Reader, contig string) *Scanner {
	return &Scanner{
		rc:         io.NopCloser(r),
		br:         bufio.NewReaderSize(r, 1<<16),
		contig:     contig,
		FilterPass: true,
	}
}

func (s *Scanner) Close() error {
	return s.rc.Close()
}

// Next returns the next variant, honoring FilterPass. io.EOF ends the
// stream.
func (s *Scanner) Next() (*Variant, error) {
	for {
		line, err := s.br.ReadString('\n')
		if line == "" && err != nil {
			if err == io.EOF {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("failed to read vcf: %w", err)
		}
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}
		v, perr := ParseVCFLine(line, s.contig)
		if perr != nil {
			if s.Strict {
				return nil, perr
			}
			continue
		}
		if v == nil {
			if s.Strict {
				return nil, fmt.Errorf("unexpected contig on line %q", strings.TrimSpace(line))
			}
			continue
		}
		if s.FilterPass && v.Filter != "PASS" {
			continue
		}
		return v, nil
	}
}

// SeekPos positions the scanner at the first variant with Pos >= pos.
// Plain files are binary searched; gzipped input is skipped forward
// record by record.
func (s *Scanner) SeekPos(pos int64) error {
	if s.file == nil {
		return s.skipTo(pos)
	}
	return s.searchTo(pos)
}

func (s *Scanner) skipTo(pos int64) error {
	for {
		peek, err := s.br.ReadString('\n')
		if peek == "" && err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		v, perr := ParseVCFLine(peek, s.contig)
		if perr != nil || v == nil {
			continue
		}
		if v.Pos >= pos {
			// Push the record back so Next sees it again.
			s.br = bufio.NewReader(io.MultiReader(strings.NewReader(peek), s.br))
			return nil
		}
	}
}

// searchTo binary searches the plain-text file for the first record at
// or after pos. Unparsable lines (the header) are assumed to sit only at
// the start of the file.
func (s *Scanner) searchTo(pos int64) error {
	size, err := s.file.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("failed to seek vcf: %w", err)
	}

	var lower, upper int64 = 0, size
	for lower < upper {
		if _, err := s.file.Seek(lower+(upper-lower)/2, io.SeekStart); err != nil {
			return fmt.Errorf("failed to seek vcf: %w", err)
		}
		br := bufio.NewReaderSize(s.file, 1<<16)
		// Skip the partial line the seek landed in.
		if _, err := br.ReadString('\n'); err != nil {
			upper = lower + (upper-lower)/2
			continue
		}
		cur, err := s.file.Seek(0, io.SeekCurrent)
		if err != nil {
			return fmt.Errorf("failed to seek vcf: %w", err)
		}
		lineStart := cur - int64(br.Buffered())
		if lineStart >= upper {
			break
		}

		line, err := br.ReadString('\n')
		if line == "" && err != nil {
			upper = lineStart
			continue
		}
		v, perr := ParseVCFLine(line, s.contig)
		if perr != nil || v == nil || v.Pos < pos {
			lower = lineStart
		} else {
			upper = lineStart
		}
	}

	if _, err := s.file.Seek(upper, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek vcf: %w", err)
	}
	s.br = bufio.NewReaderSize(s.file, 1<<16)
	return nil
}
