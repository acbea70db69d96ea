package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	pb "gopkg.in/cheggaaa/pb.v1"

	"helix-lamp/config"
	"helix-lamp/genome"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the genome data files before mounting the lamp",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}
		return check(cfg)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func check(cfg config.Config) error {
	fai, err := genome.ReadFai(cfg.Data.FaiPath, cfg.Data.Contigs)
	if err != nil {
		return err
	}
	fmt.Printf("fai index ok, %d contigs\n", len(fai))

	var failed []string
	for _, contig := range cfg.Data.Contigs {
		path := cfg.VCFPath(contig)
		count, err := countCalls(path, contig)
		if err != nil {
			fmt.Printf("%s: %v\n", contig, err)
			failed = append(failed, contig)
			continue
		}
		if count == 0 {
			fmt.Printf("%s: no PASS calls in %s\n", contig, path)
			failed = append(failed, contig)
			continue
		}
		fmt.Printf("%s: %d PASS calls\n", contig, count)
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d contigs failed validation: %v", len(failed), failed)
	}
	return nil
}

// countCalls scans the whole filtered VCF for one contig, with a
// progress bar sized by file bytes.
func countCalls(path, contig string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}

	bar := pb.New64(info.Size()).SetUnits(pb.U_BYTES)
	bar.Prefix(contig + " ")
	bar.Start()
	defer bar.Finish()

	s := genome.NewScanner(bar.NewProxyReader(f), contig)
	count := 0
	for {
		_, err := s.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
