package main

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/dpup/georuler"
	"github.com/dpup/georuler/internal/lib/geo"
)

type segmentFlags struct {
	lat1, lng1, lat2, lng2 *float64
}

func newSegmentFlags(fs *flag.FlagSet) segmentFlags {
	return segmentFlags{
		lat1: fs.Float64("lat1", 0, "Latitude of first point"),
		lng1: fs.Float64("lng1", 0, "Longitude of first point"),
		lat2: fs.Float64("lat2", 0, "Latitude of second point"),
		lng2: fs.Float64("lng2", 0, "Longitude of second point"),
	}
}

func (s segmentFlags) points(a *app) (from, to georuler.Coordinate[float64], err error) {
	if err := a.require("lat1", "lng1", "lat2", "lng2"); err != nil {
		return from, to, err
	}
	from = georuler.Coordinate[float64]{Lon: *s.lng1, Lat: *s.lat1}
	to = georuler.Coordinate[float64]{Lon: *s.lng2, Lat: *s.lat2}
	return from, to, nil
}

func distanceCommand(fs *flag.FlagSet) func(a *app) error {
	seg := newSegmentFlags(fs)

	return func(a *app) error {
		from, to, err := seg.points(a)
		if err != nil {
			return err
		}
		r, err := a.ruler(from.Lat)
		if err != nil {
			return err
		}

		distance := georuler.Distance(r, from, to)
		a.logger.Debug("distance calculated", zap.Float64("meters", distance))
		fmt.Fprintf(a.out, "%.3f\n", distance)
		return nil
	}
}

func bearingCommand(fs *flag.FlagSet) func(a *app) error {
	seg := newSegmentFlags(fs)
	strict := fs.Bool("strict", false, "Fail instead of returning 0 for coincident points")

	return func(a *app) error {
		from, to, err := seg.points(a)
		if err != nil {
			return err
		}
		r, err := a.ruler(from.Lat)
		if err != nil {
			return err
		}

		bearing := georuler.Bearing(r, from, to)
		if *strict {
			if bearing, err = r.BearingStrict(from, to); err != nil {
				return err
			}
		}

		a.logger.Debug("bearing calculated", zap.Float64("degrees", bearing))
		fmt.Fprintf(a.out, "%.4f\n", bearing)
		return nil
	}
}

func destinationCommand(fs *flag.FlagSet) func(a *app) error {
	lat := fs.Float64("lat", 0, "Latitude of the start point")
	lng := fs.Float64("lng", 0, "Longitude of the start point")
	bearing := fs.Float64("bearing", 0, "Bearing in degrees clockwise from north")
	meters := fs.Float64("meters", 0, "Distance to travel in meters")

	return func(a *app) error {
		if err := a.require("lat", "lng", "meters"); err != nil {
			return err
		}
		start := georuler.Coordinate[float64]{Lon: *lng, Lat: *lat}
		r, err := a.ruler(start.Lat)
		if err != nil {
			return err
		}

		dest := georuler.Destination(r, start, *bearing, *meters)
		a.logger.Debug("destination calculated",
			zap.Float64("lat", dest.Lat),
			zap.Float64("lng", dest.Lon))
		printCoordinate(a, dest)
		return nil
	}
}

func interpolateCommand(fs *flag.FlagSet) func(a *app) error {
	seg := newSegmentFlags(fs)
	ratio := fs.Float64("t", 0, "Ratio along the segment; values outside [0, 1] extrapolate")
	meters := fs.Float64("d", 0, "Distance along the segment in meters")

	return func(a *app) error {
		from, to, err := seg.points(a)
		if err != nil {
			return err
		}
		if a.set["t"] == a.set["d"] {
			return fmt.Errorf("%w: exactly one of -t and -d is required", errUsage)
		}
		r, err := a.ruler(from.Lat)
		if err != nil {
			return err
		}

		var p georuler.Coordinate[float64]
		if a.set["t"] {
			p = georuler.InterpolateRatio(r, from, to, *ratio)
		} else {
			p = georuler.InterpolateDistance(r, from, to, *meters)
		}
		printCoordinate(a, p)
		return nil
	}
}

func sampleCommand(fs *flag.FlagSet) func(a *app) error {
	seg := newSegmentFlags(fs)
	spacing := fs.Float64("spacing", 0, "Maximum spacing in meters (default from configuration)")
	endpoints := fs.Bool("endpoints", true, "Include both endpoints (default from configuration)")
	kmlPath := fs.String("kml", "", "Write the sample as KML to this file, - for stdout")
	encode := fs.Bool("polyline", false, "Print the sample as an encoded polyline")

	return func(a *app) error {
		from, to, err := seg.points(a)
		if err != nil {
			return err
		}
		r, err := a.ruler(from.Lat)
		if err != nil {
			return err
		}

		maxSpacing := a.cfg.Sampling.MaxSpacingMeters
		if a.set["spacing"] {
			maxSpacing = *spacing
		}
		include := a.cfg.Sampling.IncludeEndpoints
		if a.set["endpoints"] {
			include = *endpoints
		}

		points := slices.Collect(georuler.PointsAlongLine(r, from, to, maxSpacing, include))
		a.logger.Debug("segment sampled",
			zap.Int("points", len(points)),
			zap.Float64("spacing_meters", maxSpacing),
			zap.Bool("include_endpoints", include))

		switch {
		case *kmlPath == "-":
			return geo.WriteKML(a.out, "georuler sample", points)
		case *kmlPath != "":
			return writeKMLFile(a, *kmlPath, points)
		case *encode:
			fmt.Fprintln(a.out, geo.EncodePolyline(points))
		default:
			for _, p := range points {
				printCoordinate(a, p)
			}
		}
		return nil
	}
}

func writeKMLFile(a *app, path string, points []georuler.Coordinate[float64]) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := geo.WriteKML(f, "georuler sample", points); err != nil {
		return err
	}
	a.logger.Debug("kml written", zap.String("path", path))
	return nil
}

func lengthCommand(fs *flag.FlagSet) func(a *app) error {
	encoded := fs.String("polyline", "", "Encoded polyline string")
	lonList := fs.String("lons", "", "Comma separated longitudes")
	latList := fs.String("lats", "", "Comma separated latitudes")

	return func(a *app) error {
		var lons, lats []float64
		var err error

		switch {
		case *encoded != "":
			lons, lats, err = geo.DecodePolyline(*encoded)
		case *lonList != "" || *latList != "":
			if lons, err = parseList(*lonList); err != nil {
				return fmt.Errorf("-lons: %w", err)
			}
			lats, err = parseList(*latList)
			if err != nil {
				err = fmt.Errorf("-lats: %w", err)
			}
		default:
			return fmt.Errorf("%w: -polyline or -lons and -lats is required", errUsage)
		}
		if err != nil {
			return err
		}

		length, err := georuler.BatchLengthOn(a.model, lons, lats)
		if err != nil {
			return err
		}

		a.logger.Debug("length calculated",
			zap.Int("points", len(lons)),
			zap.Float64("meters", length))
		fmt.Fprintf(a.out, "%.3f\n", length)
		return nil
	}
}

func configCommand(fs *flag.FlagSet) func(a *app) error {
	return func(a *app) error {
		out, err := a.cfg.YAML()
		if err != nil {
			return err
		}
		_, err = a.out.Write(out)
		return err
	}
}

func printCoordinate(a *app, c georuler.Coordinate[float64]) {
	fmt.Fprintf(a.out, "%.7f,%.7f\n", c.Lat, c.Lon)
}

func parseList(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}
