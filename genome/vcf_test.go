package genome

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func vcfLine(contig string, pos int64, ref, alt string, qual float64, filter, gt string) string {
	return fmt.Sprintf("%s\t%d\t.\t%s\t%s\t%g\t%s\tDP=10\tGT:PL\t%s:30,0,30\n",
		contig, pos, ref, alt, qual, filter, gt)
}

func TestParseVCFLine(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantType   VariantType
		wantGT     [2]int
		wantStatus RefStatus
		wantNil    bool
		wantErr    bool
	}{
		{
			name:       "heterozygous SNP",
			line:       vcfLine("chr1", 42, "A", "G", 228, "PASS", "0/1"),
			wantType:   SNP,
			wantGT:     [2]int{0, 1},
			wantStatus: HetMix,
		},
		{
			name:       "homozygous alt SNP",
			line:       vcfLine("chr1", 42, "A", "G", 228, "PASS", "1/1"),
			wantType:   SNP,
			wantGT:     [2]int{1, 1},
			wantStatus: HomAlt,
		},
		{
			name:       "het alt with two alternates",
			line:       vcfLine("chr1", 42, "A", "G,C", 100, "PASS", "1/2"),
			wantType:   SNP,
			wantGT:     [2]int{1, 2},
			wantStatus: HetAlt,
		},
		{
			name:       "insertion",
			line:       vcfLine("chr1", 42, "A", "ATT", 90, "PASS", "0/1"),
			wantType:   Insertion,
			wantGT:     [2]int{0, 1},
			wantStatus: HetMix,
		},
		{
			name:       "deletion",
			line:       vcfLine("chr1", 42, "TAC", "T", 90, "PASS", "0/1"),
			wantType:   Deletion,
			wantGT:     [2]int{0, 1},
			wantStatus: HetMix,
		},
		{
			name:       "mixed indel is other",
			line:       vcfLine("chr1", 42, "TAC", "T,TACCA", 90, "PASS", "1/2"),
			wantType:   OtherVariant,
			wantGT:     [2]int{1, 2},
			wantStatus: HetAlt,
		},
		{
			name:       "haploid call doubles",
			line:       vcfLine("chrY", 42, "A", "G", 90, "PASS", "1"),
			wantType:   SNP,
			wantGT:     [2]int{1, 1},
			wantStatus: HomAlt,
		},
		{
			name:       "phased separator",
			line:       vcfLine("chr1", 42, "A", "G", 90, "PASS", "0|1"),
			wantType:   SNP,
			wantGT:     [2]int{0, 1},
			wantStatus: HetMix,
		},
		{
			name:    "other contig returns nil",
			line:    vcfLine("chr2", 42, "A", "G", 90, "PASS", "0/1"),
			wantNil: true,
		},
		{
			name:    "bad position",
			line:    "chr1\tforty\t.\tA\tG\t90\tPASS\t.\tGT:PL\t0/1:0\n",
			wantErr: true,
		},
		{
			name:    "genotype out of range",
			line:    vcfLine("chr1", 42, "A", "G", 90, "PASS", "0/2"),
			wantErr: true,
		},
		{
			name:    "too few columns",
			line:    "chr1\t42\t.\tA\tG\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contig := "chr1"
			if strings.HasPrefix(tt.line, "chrY") {
				contig = "chrY"
			}
			v, err := ParseVCFLine(tt.line, contig)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseVCFLine() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if tt.wantNil {
				if v != nil {
					t.Fatalf("ParseVCFLine() = %+v, want nil", v)
				}
				return
			}
			if v == nil {
				t.Fatal("ParseVCFLine() = nil, want variant")
			}
			if v.Type != tt.wantType {
				t.Errorf("Type = %v, want %v", v.Type, tt.wantType)
			}
			if v.Genotype() != tt.wantGT {
				t.Errorf("Genotype() = %v, want %v", v.Genotype(), tt.wantGT)
			}
			if got := StatusForGenotype(v.Genotype()); got != tt.wantStatus {
				t.Errorf("StatusForGenotype() = %v, want %v", got, tt.wantStatus)
			}
		})
	}
}

func writeVCF(t *testing.T, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calls.vcf")
	content := "##fileformat=VCFv4.2\n" +
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT\tsample\n" +
		strings.Join(lines, "")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestScannerFiltersPass(t *testing.T) {
	path := writeVCF(t, []string{
		vcfLine("chr1", 10, "A", "G", 90, "PASS", "0/1"),
		vcfLine("chr1", 20, "C", "T", 20, "LowQual", "0/1"),
		vcfLine("chr1", 30, "G", "A", 90, "PASS", "1/1"),
	})

	s, err := OpenVCF(path, "chr1")
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var positions []int64
	for {
		v, err := s.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		positions = append(positions, v.Pos)
	}
	if len(positions) != 2 || positions[0] != 10 || positions[1] != 30 {
		t.Errorf("positions = %v, want [10 30]", positions)
	}
}

func TestScannerSeekPos(t *testing.T) {
	var lines []string
	for pos := int64(10); pos <= 500; pos += 10 {
		lines = append(lines, vcfLine("chr1", pos, "A", "G", 90, "PASS", "0/1"))
	}
	path := writeVCF(t, lines)

	tests := []struct {
		name string
		seek int64
		want int64
	}{
		{name: "exact hit", seek: 250, want: 250},
		{name: "between records", seek: 255, want: 260},
		{name: "before first", seek: 1, want: 10},
		{name: "at last", seek: 500, want: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := OpenVCF(path, "chr1")
			if err != nil {
				t.Fatal(err)
			}
			defer s.Close()

			if err := s.SeekPos(tt.seek); err != nil {
				t.Fatalf("SeekPos(%d) error = %v", tt.seek, err)
			}
			v, err := s.Next()
			if err != nil {
				t.Fatalf("Next() after SeekPos(%d) error = %v", tt.seek, err)
			}
			if v.Pos != tt.want {
				t.Errorf("first variant after SeekPos(%d) at %d, want %d", tt.seek, v.Pos, tt.want)
			}
		})
	}
}

func TestScannerSeekPosPastEnd(t *testing.T) {
	path := writeVCF(t, []string{
		vcfLine("chr1", 10, "A", "G", 90, "PASS", "0/1"),
	})
	s, err := OpenVCF(path, "chr1")
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if err := s.SeekPos(10000); err != nil {
		t.Fatalf("SeekPos() error = %v", err)
	}
	if _, err := s.Next(); err != io.EOF {
		t.Errorf("Next() past end = %v, want io.EOF", err)
	}
}

func TestScannerStrict(t *testing.T) {
	path := writeVCF(t, []string{
		vcfLine("chr1", 10, "A", "G", 90, "PASS", "0/1"),
		"chr1\tgarbage line\n",
	})
	s, err := OpenVCF(path, "chr1")
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	s.Strict = true

	if _, err := s.Next(); err != nil {
		t.Fatalf("first Next() error = %v", err)
	}
	if _, err := s.Next(); err == nil || err == io.EOF {
		t.Errorf("strict Next() on garbage = %v, want parse error", err)
	}
}
