package cmd

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"helix-lamp/beacon"
	"helix-lamp/config"
	"helix-lamp/display"
	"helix-lamp/genome"
	"helix-lamp/lights"
	"helix-lamp/node"
	"helix-lamp/types"
)

// jumpMargin keeps random jump targets clear of a contig's end so the
// window can always fill.
const jumpMargin = 10000

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Load variant calls and drive the LED string until stopped",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}
		return run(cfg)
	},
}

func init() {
	runCmd.Flags().String("contig", "chr3", "contig to start displaying")
	runCmd.Flags().Bool("term", false, "render to the terminal instead of the serial strip")
	viper.BindPFlag("strip.term", runCmd.Flags().Lookup("term"))
	viper.BindPFlag("contig", runCmd.Flags().Lookup("contig"))
	rootCmd.AddCommand(runCmd)
}

func run(cfg config.Config) error {
	logger := types.NewLogger(os.Stdout)
	logger.InfoLog.Printf("Helix lamp %s", types.StateStarting)

	strip, err := openStrip(cfg)
	if err != nil {
		return err
	}
	defer strip.Close()

	loop, err := buildLoop(cfg, strip, logger)
	if err != nil {
		return err
	}
	defer loop.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b := beacon.New(cfg.Beacon.Endpoint, time.Duration(cfg.Beacon.IntervalSec)*time.Second, logger)
	if b.Enabled() {
		if err := b.CheckConnectivity(); err != nil {
			logger.WarnLog.Printf("Initial connectivity check failed: %s", err.Error())
		}
		if err := b.Notify(fmt.Sprintf("%s helix lamp is online", node.GetNodeName())); err != nil {
			logger.WarnLog.Printf("Failed to send startup notification: %s", err.Error())
		}
		go b.Run(ctx)
	}

	logger.InfoLog.Printf("Helix lamp %s at %d Hz", types.StateRunning, cfg.Display.RefreshHz)
	err = loop.Run(ctx)
	logger.InfoLog.Printf("Helix lamp %s", types.StateStopping)
	return err
}

func openStrip(cfg config.Config) (lights.Strip, error) {
	if cfg.Strip.Term {
		return lights.NewTermStrip(os.Stdout, cfg.LEDCount()), nil
	}
	s, err := lights.NewSerialStrip(cfg.Strip.Port, cfg.Strip.Baud, cfg.LEDCount())
	if err != nil {
		return nil, err
	}
	return s, nil
}

func buildLoop(cfg config.Config, strip lights.Strip, logger *types.Logger) (*display.Loop, error) {
	opts := display.Options{
		Refresh:        cfg.RefreshInterval(),
		BasesPerSecond: cfg.Display.BasesPerSecond,
		JumpProb:       cfg.Display.JumpProb,
		HomRefFactor:   cfg.Display.HomRefFactor,
	}

	if cfg.Display.Mode == "static" {
		if cfg.Display.StaticPath == "" {
			return nil, fmt.Errorf("static mode needs display.static-path")
		}
		loci, err := genome.LoadLoci(cfg.Display.StaticPath, cfg.Display.StaticContig, cfg.LEDCount())
		if err != nil {
			return nil, err
		}
		return display.NewStatic(strip, loci, opts, logger)
	}

	fai, err := genome.ReadFai(cfg.Data.FaiPath, cfg.Data.Contigs)
	if err != nil {
		return nil, err
	}

	contig := viper.GetString("contig")
	if contig == "" {
		contig = cfg.Data.Contigs[0]
	}
	rec, ok := fai[contig]
	if !ok {
		return nil, fmt.Errorf("contig %s not in fai index", contig)
	}

	src, err := genome.OpenConsensus(cfg.Data.FastaPath, cfg.VCFPath(contig), rec, 0, logger)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	jump := func() (display.Source, error) {
		c := cfg.Data.Contigs[rng.Intn(len(cfg.Data.Contigs))]
		rec := fai[c]
		span := rec.Length - jumpMargin
		if span <= 0 {
			span = rec.Length
		}
		start := rng.Int63n(span)
		logger.InfoLog.Printf("Jumping to %s:%d", c, start)
		src, err := genome.OpenConsensus(cfg.Data.FastaPath, cfg.VCFPath(c), rec, start, logger)
		if err != nil {
			return nil, err
		}
		return src, nil
	}

	return display.NewScroll(strip, src, jump, opts, logger)
}
