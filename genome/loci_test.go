package genome

import (
	"path/filepath"
	"testing"
)

func TestLoadLoci(t *testing.T) {
	lines := []string{
		vcfLine("chr1", 100, "A", "G", 90, "PASS", "0/1"),
		vcfLine("chr1", 150, "C", "CTT", 90, "PASS", "0/1"), // indel, skipped
		vcfLine("chr1", 200, "T", "C", 90, "PASS", "1/1"),
		vcfLine("chr1", 250, "G", "A", 10, "LowQual", "0/1"), // filtered
		vcfLine("chr1", 300, "G", "T", 90, "PASS", "0/1"),
		vcfLine("chr1", 400, "A", "C", 90, "PASS", "1/1"),
	}
	path := writeVCF(t, lines)

	loci, err := LoadLoci(path, "chr1", 3)
	if err != nil {
		t.Fatalf("LoadLoci() error = %v", err)
	}
	if len(loci) != 3 {
		t.Fatalf("LoadLoci() returned %d loci, want 3", len(loci))
	}

	wantPos := []int64{100, 200, 300}
	for i, l := range loci {
		if l.Pos != wantPos[i] {
			t.Errorf("locus %d at pos %d, want %d", i, l.Pos, wantPos[i])
		}
	}
	if loci[0].Bases != [2]Base{BaseA, BaseG} || loci[0].Status != HetMix {
		t.Errorf("locus 0 = %+v, want het A/G", loci[0])
	}
	if loci[1].Bases != [2]Base{BaseC, BaseC} || loci[1].Status != HomAlt {
		t.Errorf("locus 1 = %+v, want hom alt C/C", loci[1])
	}
}

func TestLoadLociTooFewCalls(t *testing.T) {
	path := writeVCF(t, []string{
		vcfLine("chr1", 100, "A", "G", 90, "PASS", "0/1"),
		vcfLine("chr1", 200, "T", "C", 90, "PASS", "1/1"),
	})
	if _, err := LoadLoci(path, "chr1", 18); err == nil {
		t.Error("LoadLoci() should fail with fewer calls than LEDs")
	}
}

func TestLoadLociMalformed(t *testing.T) {
	path := writeVCF(t, []string{
		vcfLine("chr1", 100, "A", "G", 90, "PASS", "0/1"),
		"chr1\tnot a number\t.\tA\tG\t90\tPASS\t.\tGT:PL\t0/1:0\n",
		vcfLine("chr1", 200, "T", "C", 90, "PASS", "1/1"),
	})
	if _, err := LoadLoci(path, "chr1", 2); err == nil {
		t.Error("LoadLoci() should fail on a malformed record")
	}
}

func TestLoadLociMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.vcf")
	if _, err := LoadLoci(path, "chr1", 18); err == nil {
		t.Error("LoadLoci() should fail on a missing file")
	}
}
