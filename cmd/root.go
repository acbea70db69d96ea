// Package cmd is for command line interactions with the helix lamp.
package cmd

import (
	"log"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is the build version, compared against released tags by the
// update command.
const Version = "0.2.0"

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "helix-lamp",
	Short: `Drive the DNA sculpture's base-pair lighting from personal
genome variant calls`,
	Version: Version,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func init() {
	cobra.OnInitialize(initSettings)
	rootCmd.PersistentFlags().StringVar(&settingsFile, "settings", "", "settings file (default ./settings.yaml)")
}

var settingsFile string

// initSettings loads settings.yaml and registers defaults matching the
// physical installation.
func initSettings() {
	if settingsFile != "" {
		viper.SetConfigFile(settingsFile)
	} else {
		viper.SetConfigName("settings")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.helix-lamp")
	}

	viper.SetDefault("data.fasta", "./data/GCA_000001405.15_GRCh38_no_alt_plus_hs38d1_analysis_set.fna")
	viper.SetDefault("data.fai", "./data/GCA_000001405.15_GRCh38_no_alt_plus_hs38d1_analysis_set.fna.fai")
	viper.SetDefault("data.vcf-pattern", "./data/grch38_calls_filtered_%s.vcf")
	viper.SetDefault("data.contigs", defaultContigs())

	viper.SetDefault("strip.pairs", 9)
	viper.SetDefault("strip.port", "/dev/ttyUSB0")
	viper.SetDefault("strip.baud", 115200)
	viper.SetDefault("strip.term", false)

	viper.SetDefault("display.mode", "scroll")
	viper.SetDefault("display.refresh-hz", 10)
	viper.SetDefault("display.bases-per-second", 6.0)
	viper.SetDefault("display.jump-prob", 0.0001)
	viper.SetDefault("display.homref-factor", 0.1)
	viper.SetDefault("display.static-path", "")
	viper.SetDefault("display.static-contig", "chr1")

	viper.SetDefault("beacon.endpoint", "")
	viper.SetDefault("beacon.interval-sec", 300)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("failed to read settings: %v", err)
		}
	}
}

// defaultContigs is the GRCh38 chromosome set: chr1-chr22, X, Y, M.
func defaultContigs() []string {
	contigs := make([]string, 0, 25)
	for i := 1; i <= 22; i++ {
		contigs = append(contigs, "chr"+strconv.Itoa(i))
	}
	return append(contigs, "chrX", "chrY", "chrM")
}
