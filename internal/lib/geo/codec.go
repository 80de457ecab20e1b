package geo

import (
	"fmt"

	"github.com/twpayne/go-polyline"

	"github.com/dpup/georuler/internal/lib/ruler"
)

// DecodePoints decodes a Google polyline string to a point sequence
func DecodePoints(encoded string) ([]Point, error) {
	if encoded == "" {
		return nil, ErrEmptyPolyline
	}

	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to decode polyline: %w", err)
	}

	points := make([]Point, len(coords))
	for i, coord := range coords {
		points[i] = Point{
			Latitude:  coord[0],
			Longitude: coord[1],
		}

		if !isValidCoordinate(points[i]) {
			return nil, fmt.Errorf("decoded point %d: %w", i, ErrInvalidCoordinate)
		}
	}

	return points, nil
}

// DecodePolyline decodes a Google polyline string into the parallel longitude
// and latitude slices the batch kernel consumes
func DecodePolyline(encoded string) (lons, lats []float64, err error) {
	points, err := DecodePoints(encoded)
	if err != nil {
		return nil, nil, err
	}

	lons = make([]float64, len(points))
	lats = make([]float64, len(points))
	for i, p := range points {
		lons[i], lats[i] = p.Longitude, p.Latitude
	}
	return lons, lats, nil
}

// EncodePoints encodes points with the standard five decimal precision
func EncodePoints(points []Point) string {
	coords := make([][]float64, len(points))
	for i, p := range points {
		coords[i] = []float64{p.Latitude, p.Longitude}
	}
	return string(polyline.EncodeCoords(coords))
}

// EncodePolyline encodes ruler coordinates, such as a PointsAlongLine sample
func EncodePolyline(coords []ruler.Coordinate[float64]) string {
	points := make([]Point, len(coords))
	for i, c := range coords {
		points[i] = PointFrom(c)
	}
	return EncodePoints(points)
}
