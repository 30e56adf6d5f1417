package export

import (
	"os"

	"github.com/golang/geo/r2"
	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"

	"github.com/notargets/gowarp/geometry2D"
)

const (
	KindPolygon = "polygon"
	KindBall    = "ball"
	KindAnchor  = "anchor"
)

/*
Snapshot is the exported content of a scene. Ball is packed x,y and Anchor is
only written when HasAnchor is set.
*/
type Snapshot struct {
	Preset    string
	Polygons  [][]r2.Point
	Ball      []float64
	Anchor    r2.Point
	HasAnchor bool
}

func ring(pts []r2.Point) (coords [][]float64) {
	coords = make([][]float64, 0, len(pts)+1)
	for _, p := range pts {
		coords = append(coords, []float64{p.X, p.Y})
	}
	if len(pts) > 0 {
		coords = append(coords, []float64{pts[0].X, pts[0].Y})
	}
	return
}

func FeatureCollection(snap *Snapshot) (fc *geojson.FeatureCollection) {
	fc = geojson.NewFeatureCollection()
	for i, poly := range snap.Polygons {
		f := geojson.NewPolygonFeature([][][]float64{ring(poly)})
		f.SetProperty("kind", KindPolygon)
		f.SetProperty("index", i)
		f.SetProperty("preset", snap.Preset)
		fc.AddFeature(f)
	}
	if n := len(snap.Ball) / 2; n > 1 {
		coords := make([][]float64, 0, n+1)
		for i := 0; i < n; i++ {
			coords = append(coords, []float64{snap.Ball[2*i], snap.Ball[2*i+1]})
		}
		coords = append(coords, coords[0])
		f := geojson.NewLineStringFeature(coords)
		f.SetProperty("kind", KindBall)
		fc.AddFeature(f)
	}
	if snap.HasAnchor {
		f := geojson.NewPointFeature([]float64{snap.Anchor.X, snap.Anchor.Y})
		f.SetProperty("kind", KindAnchor)
		fc.AddFeature(f)
	}
	return
}

func Marshal(snap *Snapshot) ([]byte, error) {
	data, err := FeatureCollection(snap).MarshalJSON()
	return data, errors.Wrap(err, "encoding feature collection")
}

func WriteFile(path string, snap *Snapshot) (err error) {
	var data []byte
	if data, err = Marshal(snap); err != nil {
		return
	}
	return errors.Wrapf(os.WriteFile(path, data, 0644), "writing %s", path)
}

/*
ReadPolygons returns the outer ring of every polygon feature, without the
closing vertex. Other geometry types are ignored.
*/
func ReadPolygons(data []byte) (polys []*geometry2D.Polygon, err error) {
	var fc *geojson.FeatureCollection
	if fc, err = geojson.UnmarshalFeatureCollection(data); err != nil {
		return nil, errors.Wrap(err, "decoding feature collection")
	}
	for i, f := range fc.Features {
		if f.Geometry == nil || !f.Geometry.IsPolygon() || len(f.Geometry.Polygon) == 0 {
			continue
		}
		outer := f.Geometry.Polygon[0]
		if n := len(outer); n > 1 && outer[0][0] == outer[n-1][0] && outer[0][1] == outer[n-1][1] {
			outer = outer[:n-1]
		}
		pts := make([]r2.Point, 0, len(outer))
		for _, c := range outer {
			if len(c) < 2 {
				return nil, errors.Errorf("feature %d: short position", i)
			}
			pts = append(pts, r2.Point{X: c[0], Y: c[1]})
		}
		var pg *geometry2D.Polygon
		if pg, err = geometry2D.NewPolygon(pts); err != nil {
			return nil, errors.Wrapf(err, "feature %d", i)
		}
		polys = append(polys, pg)
	}
	return
}

func ReadPolygonsFile(path string) ([]*geometry2D.Polygon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return ReadPolygons(data)
}
