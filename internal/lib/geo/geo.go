package geo

import (
	"fmt"
	"math"

	"github.com/dpup/georuler/internal/lib/angle"
	"github.com/dpup/georuler/internal/lib/batch"
	"github.com/dpup/georuler/internal/lib/ellipsoid"
	"github.com/dpup/georuler/internal/lib/ruler"
)

// geoUtils implements the Utils interface
type geoUtils struct {
	model    ellipsoid.Model
	strategy angle.Strategy
	kernel   batch.Kernel[float64]
}

// NewGeoUtils creates Utils measuring on model. Rulers are built per call at
// the latitude of the geometry being measured.
func NewGeoUtils(model ellipsoid.Model, strategy angle.Strategy) Utils {
	return &geoUtils{
		model:    model,
		strategy: strategy,
		kernel:   batch.New[float64](model),
	}
}

func (g *geoUtils) rulerAt(lat float64) (ruler.Ruler[float64], error) {
	return ruler.New(g.model, lat, ruler.WithStrategy(g.strategy))
}

// PointToPoint measures with a ruler at the mean latitude, so the result does
// not depend on argument order
func (g *geoUtils) PointToPoint(p1, p2 Point) (float64, error) {
	if !isValidCoordinate(p1) || !isValidCoordinate(p2) {
		return 0, ErrInvalidCoordinate
	}

	if p1 == p2 {
		return 0, nil
	}

	r, err := g.rulerAt((p1.Latitude + p2.Latitude) / 2)
	if err != nil {
		return 0, err
	}
	return r.Distance(p1.Coordinate(), p2.Coordinate()), nil
}

// PointToPolyline calculates minimum distance from point to polyline
func (g *geoUtils) PointToPolyline(point Point, polyline Polyline) (float64, error) {
	_, distance, err := g.closest(point, polyline)
	return distance, err
}

// ClosestPointOnPolyline projects point onto every segment and keeps the nearest
func (g *geoUtils) ClosestPointOnPolyline(point Point, polyline Polyline) (Point, error) {
	closest, _, err := g.closest(point, polyline)
	return closest, err
}

func (g *geoUtils) closest(point Point, polyline Polyline) (Point, float64, error) {
	if !isValidCoordinate(point) {
		return Point{}, 0, fmt.Errorf("point: %w", ErrInvalidCoordinate)
	}

	if len(polyline.Points) == 0 {
		return Point{}, 0, ErrEmptyPolyline
	}

	// One ruler at the query point serves every segment: only the
	// neighbourhood of the point matters for the minimum
	r, err := g.rulerAt(point.Latitude)
	if err != nil {
		return Point{}, 0, err
	}

	if len(polyline.Points) == 1 {
		only := polyline.Points[0]
		return only, r.Distance(point.Coordinate(), only.Coordinate()), nil
	}

	var best Point
	minDistance := math.Inf(1)

	for i := 0; i < len(polyline.Points)-1; i++ {
		onSegment, distance := projectOntoSegment(r, point, polyline.Points[i], polyline.Points[i+1])
		if distance < minDistance {
			minDistance = distance
			best = onSegment
		}
	}

	return best, minDistance, nil
}

// projectOntoSegment works in the ruler's local plane, in meters east and north
// of point
func projectOntoSegment(r ruler.Ruler[float64], point, segmentStart, segmentEnd Point) (Point, float64) {
	kx, ky := r.Factors()

	ax := (segmentStart.Longitude - point.Longitude) * kx
	ay := (segmentStart.Latitude - point.Latitude) * ky
	dx := (segmentEnd.Longitude-point.Longitude)*kx - ax
	dy := (segmentEnd.Latitude-point.Latitude)*ky - ay

	t := 0.0
	if lengthSq := dx*dx + dy*dy; lengthSq > 0 {
		t = math.Max(0, math.Min(1, -(ax*dx+ay*dy)/lengthSq))
	}

	onSegment := PointFrom(r.InterpolateRatio(segmentStart.Coordinate(), segmentEnd.Coordinate(), t))
	return onSegment, math.Hypot(ax+t*dx, ay+t*dy)
}

// FilterPointsByDistance filters points to those within specified distance of center point
func (g *geoUtils) FilterPointsByDistance(points []Point, center Point, maxDistanceMeters float64) ([]Point, error) {
	if !isValidCoordinate(center) {
		return nil, fmt.Errorf("center: %w", ErrInvalidCoordinate)
	}

	r, err := g.rulerAt(center.Latitude)
	if err != nil {
		return nil, err
	}

	var filteredPoints []Point
	for _, point := range points {
		if !isValidCoordinate(point) {
			continue // Skip invalid points
		}

		if r.Distance(center.Coordinate(), point.Coordinate()) <= maxDistanceMeters {
			filteredPoints = append(filteredPoints, point)
		}
	}

	return filteredPoints, nil
}

// PolylineLength hands the points to the batch kernel
func (g *geoUtils) PolylineLength(polyline Polyline) (float64, error) {
	if len(polyline.Points) == 0 {
		return 0, ErrEmptyPolyline
	}

	lons := make([]float64, len(polyline.Points))
	lats := make([]float64, len(polyline.Points))
	for i, p := range polyline.Points {
		if !isValidCoordinate(p) {
			return 0, fmt.Errorf("point %d: %w", i, ErrInvalidCoordinate)
		}
		lons[i], lats[i] = p.Longitude, p.Latitude
	}

	return g.kernel.Length(lons, lats)
}

// Densify samples every segment with a ruler at its origin latitude. Original
// vertices are kept and shared vertices appear once. The result carries its
// encoded form.
func (g *geoUtils) Densify(polyline Polyline, maxSpacing float64) (Polyline, error) {
	if len(polyline.Points) == 0 {
		return Polyline{}, ErrEmptyPolyline
	}
	if !(maxSpacing > 0) || math.IsInf(maxSpacing, 0) {
		return Polyline{}, fmt.Errorf("spacing must be positive and finite, got %v", maxSpacing)
	}

	dense := []Point{polyline.Points[0]}
	for i := 0; i < len(polyline.Points)-1; i++ {
		start, end := polyline.Points[i], polyline.Points[i+1]
		if !isValidCoordinate(start) || !isValidCoordinate(end) {
			return Polyline{}, fmt.Errorf("segment %d: %w", i, ErrInvalidCoordinate)
		}

		r, err := g.rulerAt(start.Latitude)
		if err != nil {
			return Polyline{}, err
		}

		// The start is already in place from the previous segment
		skip := true
		for c := range r.PointsAlongLine(start.Coordinate(), end.Coordinate(), maxSpacing, true) {
			if skip {
				skip = false
				continue
			}
			dense = append(dense, PointFrom(c))
		}
	}

	return Polyline{
		EncodedPolyline: EncodePoints(dense),
		Points:          dense,
	}, nil
}

// DistanceFromCoords calculates distance between two coordinate pairs
// Convenience method for raw latitude/longitude values
func (g *geoUtils) DistanceFromCoords(lat1, lon1, lat2, lon2 float64) (float64, error) {
	point1 := Point{Latitude: lat1, Longitude: lon1}
	point2 := Point{Latitude: lat2, Longitude: lon2}

	return g.PointToPoint(point1, point2)
}

// NewPoint creates a Point from latitude and longitude values with validation
func NewPoint(latitude, longitude float64) (Point, error) {
	point := Point{Latitude: latitude, Longitude: longitude}
	if !isValidCoordinate(point) {
		return Point{}, ErrInvalidCoordinate
	}
	return point, nil
}

// isValidCoordinate validates latitude and longitude values
func isValidCoordinate(point Point) bool {
	return point.Latitude >= -90 && point.Latitude <= 90 &&
		point.Longitude >= -180 && point.Longitude <= 180
}
