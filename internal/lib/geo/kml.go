package geo

import (
	"io"

	"github.com/twpayne/go-kml"

	"github.com/dpup/georuler/internal/lib/ruler"
)

// WriteKML renders coords as one LineString placemark plus a placemark for
// each endpoint. Nothing but the document header is written for an empty line.
func WriteKML(w io.Writer, name string, coords []ruler.Coordinate[float64]) error {
	line := make([]kml.Coordinate, len(coords))
	for i, c := range coords {
		line[i] = kml.Coordinate{Lon: c.Lon, Lat: c.Lat}
	}

	var placemarks []kml.Element
	if len(line) > 0 {
		placemarks = append(placemarks,
			kml.Placemark(
				kml.Name(name),
				kml.LineString(
					kml.Tessellate(true),
					kml.Coordinates(line...),
				),
			),
			kml.Placemark(
				kml.Name("start"),
				kml.Point(kml.Coordinates(line[0])),
			),
			kml.Placemark(
				kml.Name("end"),
				kml.Point(kml.Coordinates(line[len(line)-1])),
			),
		)
	}

	doc := kml.KML(
		kml.Document(append([]kml.Element{kml.Name(name)}, placemarks...)...),
	)
	return doc.WriteIndent(w, "", "  ")
}
