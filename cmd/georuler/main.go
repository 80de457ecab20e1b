package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/dpup/georuler"
	"github.com/dpup/georuler/internal/config"
	"github.com/dpup/georuler/internal/logging"
)

var errUsage = errors.New("usage")

type command struct {
	summary string
	example string
	setup   func(fs *flag.FlagSet) func(a *app) error
}

var commands = map[string]command{
	"distance": {
		summary: "Distance in meters between two points",
		example: "georuler distance -lat1 40.7484 -lng1 -73.9857 -lat2 40.7411 -lng2 -73.9897",
		setup:   distanceCommand,
	},
	"bearing": {
		summary: "Initial bearing in degrees from the first point to the second",
		example: "georuler bearing -lat1 40.7484 -lng1 -73.9857 -lat2 40.7411 -lng2 -73.9897 -strict",
		setup:   bearingCommand,
	},
	"destination": {
		summary: "Point reached by moving a distance along a bearing",
		example: "georuler destination -lat 40.7484 -lng -73.9857 -bearing 90 -meters 1000",
		setup:   destinationCommand,
	},
	"interpolate": {
		summary: "Point at a ratio (-t) or a distance (-d) along a segment",
		example: "georuler interpolate -lat1 40.7484 -lng1 -73.9857 -lat2 40.7411 -lng2 -73.9897 -t 0.5",
		setup:   interpolateCommand,
	},
	"sample": {
		summary: "Points spaced at most -spacing meters apart along a segment",
		example: "georuler sample -lat1 40.7484 -lng1 -73.9857 -lat2 40.7411 -lng2 -73.9897 -spacing 50 -kml walk.kml",
		setup:   sampleCommand,
	},
	"length": {
		summary: "Total length of a polyline",
		example: "georuler length -polyline \"_p~iF~ps|U_ulLnnqC_mqNvxq`@\"",
		setup:   lengthCommand,
	},
	"config": {
		summary: "Print the effective configuration",
		example: "georuler config -config georuler.yaml",
		setup:   configCommand,
	},
}

// app carries what every command needs after flags and configuration are resolved
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	out      io.Writer
	model    georuler.Model
	strategy georuler.Strategy
	ref      float64
	set      map[string]bool
}

func main() {
	// An optional .env file feeds the GEORULER_ variables
	_ = godotenv.Load()

	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) && !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) < 1 {
		printUsage(stderr)
		return errUsage
	}

	name := args[0]
	if name == "help" {
		printUsage(stdout)
		return nil
	}

	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", name)
		printUsage(stderr)
		return errUsage
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML configuration file")
	ref := fs.Float64("ref", 0, "Reference latitude for the ruler (default from configuration)")
	handler := cmd.setup(fs)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "%s: %s\n\nExample usage:\n  %s\n\n", name, cmd.summary, cmd.example)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	model, err := cfg.Model()
	if err != nil {
		return err
	}
	strategy, err := cfg.Strategy()
	if err != nil {
		return err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	a := &app{
		cfg:      cfg,
		logger:   logger.With(zap.String("command", name)),
		out:      stdout,
		model:    model,
		strategy: strategy,
		ref:      *ref,
		set:      set,
	}

	a.logger.Debug("configuration loaded",
		zap.Stringer("ellipsoid", model),
		zap.Stringer("strategy", strategy),
		zap.String("config_file", *configPath))

	if err := handler(a); err != nil {
		if errors.Is(err, errUsage) {
			fs.Usage()
		}
		return err
	}
	return nil
}

// ruler builds a ruler at the -ref flag, the first point's latitude when
// auto_reference is on, or the configured reference latitude
func (a *app) ruler(firstLat float64) (georuler.Ruler[float64], error) {
	lat := a.cfg.Ruler.ReferenceLatitude
	switch {
	case a.set["ref"]:
		lat = a.ref
	case a.cfg.Ruler.AutoReference:
		lat = firstLat
	}

	r, err := georuler.NewRuler(a.model, lat, georuler.WithStrategy(a.strategy))
	if err != nil {
		return r, err
	}

	kx, ky := r.Factors()
	a.logger.Debug("ruler ready",
		zap.Float64("reference_latitude", lat),
		zap.Float64("kx", kx),
		zap.Float64("ky", ky))
	return r, nil
}

// require reports a usage error when any named flag was not given
func (a *app) require(names ...string) error {
	var missing []string
	for _, n := range names {
		if !a.set[n] {
			missing = append(missing, "-"+n)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %v", errUsage, missing)
	}
	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "georuler - fast approximate distances on an ellipsoid")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: georuler <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-12s %s\n", name, commands[name].summary)
	}
	fmt.Fprintf(w, "  %-12s %s\n", "help", "Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Every command accepts -config <file> and -ref <latitude>.")
	fmt.Fprintln(w, "Environment variables prefixed GEORULER_ override the file, e.g. GEORULER_RULER__ANGLE_STRATEGY=deg5.")
}
