package geo

import (
	"errors"

	"github.com/dpup/georuler/internal/lib/ruler"
)

var (
	// ErrEmptyPolyline is returned for an empty encoded string or a polyline with no points
	ErrEmptyPolyline = errors.New("polyline has no points")

	// ErrInvalidCoordinate is returned when a latitude is outside [-90, 90] or a longitude outside [-180, 180]
	ErrInvalidCoordinate = errors.New("invalid coordinates: latitude must be [-90, 90], longitude must be [-180, 180]")
)

// Point represents a geographic coordinate
type Point struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// Lon implements ruler.LonLat
func (p Point) Lon() float64 { return p.Longitude }

// Lat implements ruler.LonLat
func (p Point) Lat() float64 { return p.Latitude }

// Coordinate converts p to the ruler's coordinate type
func (p Point) Coordinate() ruler.Coordinate[float64] { return ruler.From[float64](p) }

// PointFrom converts a ruler coordinate back to a Point
func PointFrom(c ruler.Coordinate[float64]) Point {
	return Point{Latitude: c.Lat, Longitude: c.Lon}
}

// Polyline represents an encoded polyline with optional decoded points
type Polyline struct {
	EncodedPolyline string  `json:"encoded_polyline"`
	Points          []Point `json:"points"`
}

// Utils measures points and polylines with cheap rulers built on one ellipsoid
type Utils interface {
	// Distance in meters between two points, with a ruler at their mean latitude
	PointToPoint(p1, p2 Point) (float64, error)

	// Minimum distance in meters from point to any segment of polyline
	PointToPolyline(point Point, polyline Polyline) (float64, error)

	// Point on polyline nearest to point
	ClosestPointOnPolyline(point Point, polyline Polyline) (Point, error)

	// Filter points to those within specified distance of center point
	FilterPointsByDistance(points []Point, center Point, maxDistanceMeters float64) ([]Point, error)

	// Total length in meters, each segment measured at its origin latitude
	PolylineLength(polyline Polyline) (float64, error)

	// Insert points so no two consecutive points are more than maxSpacing meters apart
	Densify(polyline Polyline, maxSpacing float64) (Polyline, error)

	// Distance between coordinate pairs (convenience method)
	DistanceFromCoords(lat1, lon1, lat2, lon2 float64) (float64, error)
}
