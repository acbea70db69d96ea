package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"helix-lamp/config"
	"helix-lamp/genome"
	"helix-lamp/types"
)

const seqLineWidth = 80

var (
	seqContig string
	seqStart  int64
	seqCount  int
)

var seqCmd = &cobra.Command{
	Use:   "seq",
	Short: "Print a stretch of the consensus sequence to stdout",
	Long: `Print consensus bases for a region, uppercase where the sample
differs from the reference and lowercase where it matches. Useful for
spot checking the variant data without the sculpture attached.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}
		return printSeq(cfg, os.Stdout)
	},
}

func init() {
	seqCmd.Flags().StringVar(&seqContig, "contig", "chr3", "contig to print")
	seqCmd.Flags().Int64Var(&seqStart, "start", 0, "0-based start offset into the contig")
	seqCmd.Flags().IntVar(&seqCount, "count", 600, "number of bases to print")
	rootCmd.AddCommand(seqCmd)
}

func printSeq(cfg config.Config, out io.Writer) error {
	logger := types.NewLogger(os.Stderr)

	fai, err := genome.ReadFai(cfg.Data.FaiPath, []string{seqContig})
	if err != nil {
		return err
	}

	c, err := genome.OpenConsensus(cfg.Data.FastaPath, cfg.VCFPath(seqContig), fai[seqContig], seqStart, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	w := bufio.NewWriter(out)
	defer w.Flush()

	for i := 0; i < seqCount; i++ {
		locus, err := c.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		b := locus.Bases[1].String()
		if locus.Status == genome.HomRef {
			b = strings.ToLower(b)
		}
		if _, err := w.WriteString(b); err != nil {
			return err
		}
		if (i+1)%seqLineWidth == 0 {
			if err := w.WriteByte('\n'); err != nil {
				return err
			}
		}
	}
	_, err = fmt.Fprintln(w)
	return err
}
