package geo

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpup/georuler/internal/lib/angle"
	"github.com/dpup/georuler/internal/lib/ellipsoid"
	"github.com/dpup/georuler/internal/lib/ruler"
)

// Highway 4 test coordinates: Angels Camp to Murphys (real route)
var (
	angelsCamp = Point{Latitude: 38.0675, Longitude: -120.5436}
	murphys    = Point{Latitude: 38.1391, Longitude: -120.4561}
	highway4   = Polyline{Points: []Point{angelsCamp, murphys}}
)

// The example polyline from Google's encoding documentation
const googleExample = "_p~iF~ps|U_ulLnnqC_mqNvxq`@"

func newUtils() Utils {
	return NewGeoUtils(ellipsoid.WGS84(), angle.Exact)
}

func TestGeoUtils_PointToPoint(t *testing.T) {
	geoUtils := newUtils()

	distance, err := geoUtils.PointToPoint(angelsCamp, murphys)
	require.NoError(t, err)
	// Vincenty on WGS84 gives 11048.1 m
	assert.InDelta(t, 11048.13, distance, 0.05)

	reverse, err := geoUtils.PointToPoint(murphys, angelsCamp)
	require.NoError(t, err)
	assert.Equal(t, distance, reverse, "mean latitude ruler is symmetric")

	same, err := geoUtils.PointToPoint(murphys, murphys)
	require.NoError(t, err)
	assert.Zero(t, same)

	invalidPoint := Point{Latitude: 200, Longitude: -300}
	_, err = geoUtils.PointToPoint(angelsCamp, invalidPoint)
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
}

func TestGeoUtils_DistanceFromCoords(t *testing.T) {
	geoUtils := newUtils()

	want, err := geoUtils.PointToPoint(angelsCamp, murphys)
	require.NoError(t, err)

	got, err := geoUtils.DistanceFromCoords(angelsCamp.Latitude, angelsCamp.Longitude, murphys.Latitude, murphys.Longitude)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGeoUtils_PointToPolyline(t *testing.T) {
	geoUtils := newUtils()

	tests := []struct {
		name  string
		point Point
		want  float64
	}{
		{"beside the road", Point{Latitude: 38.1000, Longitude: -120.5000}, 244.99},
		{"on a vertex", angelsCamp, 0},
		{"past the end", Point{Latitude: 38.2000, Longitude: -120.4000}, 8357.26},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			distance, err := geoUtils.PointToPolyline(tt.point, highway4)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, distance, 0.01)
		})
	}
}

func TestGeoUtils_PointToPolyline_Errors(t *testing.T) {
	geoUtils := newUtils()

	_, err := geoUtils.PointToPolyline(angelsCamp, Polyline{})
	assert.ErrorIs(t, err, ErrEmptyPolyline)

	_, err = geoUtils.PointToPolyline(Point{Latitude: 91}, highway4)
	assert.ErrorIs(t, err, ErrInvalidCoordinate)

	// A single point polyline is a point to point measurement
	distance, err := geoUtils.PointToPolyline(angelsCamp, Polyline{Points: []Point{murphys}})
	require.NoError(t, err)
	assert.InDelta(t, 11050.7, distance, 0.1)
}

func TestGeoUtils_ClosestPointOnPolyline(t *testing.T) {
	geoUtils := newUtils()

	closest, err := geoUtils.ClosestPointOnPolyline(Point{Latitude: 38.1000, Longitude: -120.5000}, highway4)
	require.NoError(t, err)
	assert.InDelta(t, 38.101533, closest.Latitude, 1e-6)
	assert.InDelta(t, -120.502009, closest.Longitude, 1e-6)

	// Beyond the last vertex the projection clamps to it
	closest, err = geoUtils.ClosestPointOnPolyline(Point{Latitude: 38.2000, Longitude: -120.4000}, highway4)
	require.NoError(t, err)
	assert.InDelta(t, murphys.Latitude, closest.Latitude, 1e-12)
	assert.InDelta(t, murphys.Longitude, closest.Longitude, 1e-12)
}

func TestGeoUtils_FilterPointsByDistance(t *testing.T) {
	geoUtils := newUtils()

	points := []Point{
		angelsCamp,
		{Latitude: 38.0700, Longitude: -120.5400}, // a few hundred meters away
		murphys,
		{Latitude: 200, Longitude: 0}, // invalid, skipped
	}

	nearby, err := geoUtils.FilterPointsByDistance(points, angelsCamp, 1000)
	require.NoError(t, err)
	assert.Equal(t, points[:2], nearby)

	all, err := geoUtils.FilterPointsByDistance(points, angelsCamp, 20000)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = geoUtils.FilterPointsByDistance(points, Point{Latitude: -95}, 1000)
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
}

func TestGeoUtils_PolylineLength(t *testing.T) {
	geoUtils := newUtils()

	points, err := DecodePoints(googleExample)
	require.NoError(t, err)

	length, err := geoUtils.PolylineLength(Polyline{Points: points})
	require.NoError(t, err)
	assert.InDelta(t, 797453.40, length, 0.5)

	single, err := geoUtils.PolylineLength(Polyline{Points: points[:1]})
	require.NoError(t, err)
	assert.Zero(t, single)

	_, err = geoUtils.PolylineLength(Polyline{})
	assert.ErrorIs(t, err, ErrEmptyPolyline)

	_, err = geoUtils.PolylineLength(Polyline{Points: []Point{angelsCamp, {Latitude: 100}}})
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
}

func TestGeoUtils_Densify(t *testing.T) {
	geoUtils := newUtils()

	dense, err := geoUtils.Densify(highway4, 1000)
	require.NoError(t, err)

	// 11050.7 m at the Angels Camp ruler is 12 steps
	require.Len(t, dense.Points, 13)
	assert.Equal(t, angelsCamp, dense.Points[0])
	assert.Equal(t, murphys, dense.Points[12])
	for i := 1; i < len(dense.Points); i++ {
		step, err := geoUtils.PointToPoint(dense.Points[i-1], dense.Points[i])
		require.NoError(t, err)
		assert.LessOrEqual(t, step, 1000.0, "step %d", i)
	}
	assert.NotEmpty(t, dense.EncodedPolyline)

	// Shared vertices are not repeated
	there := Polyline{Points: []Point{angelsCamp, murphys, angelsCamp}}
	back, err := geoUtils.Densify(there, 1000)
	require.NoError(t, err)
	assert.Len(t, back.Points, 25)
	assert.Equal(t, murphys, back.Points[12])

	_, err = geoUtils.Densify(highway4, 0)
	assert.Error(t, err)
	_, err = geoUtils.Densify(Polyline{}, 10)
	assert.ErrorIs(t, err, ErrEmptyPolyline)
}

func TestDecodePoints(t *testing.T) {
	points, err := DecodePoints(googleExample)
	require.NoError(t, err)

	require.Len(t, points, 3)
	assert.InDelta(t, 38.5, points[0].Latitude, 1e-5)
	assert.InDelta(t, -120.2, points[0].Longitude, 1e-5)
	assert.InDelta(t, 40.7, points[1].Latitude, 1e-5)
	assert.InDelta(t, -120.95, points[1].Longitude, 1e-5)
	assert.InDelta(t, 43.252, points[2].Latitude, 1e-5)
	assert.InDelta(t, -126.453, points[2].Longitude, 1e-5)

	_, err = DecodePoints("")
	assert.ErrorIs(t, err, ErrEmptyPolyline)

	_, err = DecodePoints("_p~iF~ps|U_")
	assert.Error(t, err, "unterminated sequence")

	_, err = DecodePoints("!!!!")
	assert.Error(t, err, "bytes below the encoding alphabet")
}

func TestDecodePolyline(t *testing.T) {
	lons, lats, err := DecodePolyline(googleExample)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-120.2, -120.95, -126.453}, lons, 1e-5)
	assert.InDeltaSlice(t, []float64{38.5, 40.7, 43.252}, lats, 1e-5)
}

func TestEncode(t *testing.T) {
	points := []Point{
		{Latitude: 38.5, Longitude: -120.2},
		{Latitude: 40.7, Longitude: -120.95},
		{Latitude: 43.252, Longitude: -126.453},
	}
	assert.Equal(t, googleExample, EncodePoints(points))

	coords := make([]ruler.Coordinate[float64], len(points))
	for i, p := range points {
		coords[i] = p.Coordinate()
	}
	assert.Equal(t, googleExample, EncodePolyline(coords))
}

func TestWriteKML(t *testing.T) {
	coords := []ruler.Coordinate[float64]{angelsCamp.Coordinate(), murphys.Coordinate()}

	var buf bytes.Buffer
	require.NoError(t, WriteKML(&buf, "highway 4", coords))

	out := buf.String()
	assert.Contains(t, out, "<kml")
	assert.Contains(t, out, "<name>highway 4</name>")
	assert.Contains(t, out, "<LineString>")
	assert.Contains(t, out, "-120.5436")
	assert.Contains(t, out, "38.1391")
	assert.Equal(t, 3, strings.Count(out, "<Placemark>"))

	buf.Reset()
	require.NoError(t, WriteKML(&buf, "empty", nil))
	assert.NotContains(t, buf.String(), "<Placemark>")
}

func TestNewPoint(t *testing.T) {
	p, err := NewPoint(38.0675, -120.5436)
	require.NoError(t, err)
	assert.Equal(t, angelsCamp, p)
	assert.Equal(t, ruler.Coordinate[float64]{Lon: -120.5436, Lat: 38.0675}, p.Coordinate())
	assert.Equal(t, p, PointFrom(p.Coordinate()))

	_, err = NewPoint(-91, 0)
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
}
