package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/ironsheep/image-measure/internal/config"
	"github.com/ironsheep/image-measure/internal/display"
	"github.com/ironsheep/image-measure/internal/imaging"
	"github.com/ironsheep/image-measure/internal/logging"
	"github.com/ironsheep/image-measure/internal/pipeline"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and --help before touching the config
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-measure %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			fmt.Printf("  Window support: %t\n", display.WindowSupported)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		}
	}

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		logrus.Fatalf("Configuration error: %v", err)
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	log.WithFields(logrus.Fields{
		"version": Version,
		"built":   BuildTime,
		"commit":  GitCommit,
		"display": cfg.DisplayKind(),
	}).Debug("Image Measure starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	clicks, _ := cfg.ClickPoints()
	surface, err := display.New(display.Options{
		Kind:   cfg.DisplayKind(),
		Title:  cfg.WindowTitle,
		Clicks: clicks,
		Input:  os.Stdin,
		Log:    log,
	})
	if err != nil {
		stop()
		log.Fatalf("Display error: %v", err)
	}

	result, err := pipeline.Run(ctx, cfg, surface, os.Stdout, log)
	if cerr := surface.Close(); cerr != nil {
		log.WithError(cerr).Warn("failed to close display")
	}
	stop()

	if err != nil {
		if errors.Is(err, imaging.ErrDecode) {
			log.WithError(err).Debug("load failed")
			fmt.Println("Error: Unable to load image.")
			os.Exit(1)
		}
		log.Fatalf("Measurement error: %v", err)
	}

	log.WithFields(logrus.Fields{
		"objects":      len(result.Objects),
		"measurements": len(result.Measurements),
	}).Debug("done")
}

func printHelp() {
	fmt.Println("image-measure - measure objects and distances in an image")
	fmt.Println()
	fmt.Println("Usage: image-measure [options] <image>")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Print(config.NewFlagSet("image-measure").FlagUsages())
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Printf("  %s_<KEY>    Override any config key, e.g. %s_SCALE_FACTOR=0.03\n", config.EnvPrefix, config.EnvPrefix)
	fmt.Printf("  %s_LOG_LEVEL=debug    Enable debug logging\n", config.EnvPrefix)
	fmt.Println("  A .env file in the working directory is loaded when present.")
	fmt.Println()
	fmt.Println("Displays:")
	fmt.Println("  window    OpenCV window; click two points, press any key to finish (build with -tags gocv)")
	fmt.Println("  stream    JSON lines on stdin: {\"type\":\"click\",\"x\":10,\"y\":20} / {\"type\":\"key\"}")
	fmt.Println("  replay    Clicks from --click x,y (repeatable), then finish")
}
