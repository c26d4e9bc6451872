package model

// Axis identifies one of the two raw coordinate columns of the dataset.
type Axis int

const (
	// AxisA is the column configured as coordinate_a_column ("Long" in the
	// published workbook).
	AxisA Axis = iota + 1
	// AxisB is the column configured as coordinate_b_column ("Lat" in the
	// published workbook).
	AxisB
)

// The workbook's "Long" column holds latitudes and its "Lat" column holds
// longitudes. This mapping is fixed here and must not be inferred from data.
const (
	LatitudeAxis  = AxisA
	LongitudeAxis = AxisB
)

func (a Axis) String() string {
	switch a {
	case AxisA:
		return "coordinate_a"
	case AxisB:
		return "coordinate_b"
	default:
		return "unknown"
	}
}

// Bounds is a latitude/longitude bounding box.
type Bounds struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// Australia covers the mainland plus Tasmania and the nearby islands that
// appear in suburb-level data.
var Australia = Bounds{MinLat: -44, MaxLat: -9, MinLon: 112, MaxLon: 154}

// Contains reports whether the point lies inside b (edges inclusive).
func (b Bounds) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// NumericField selects a numeric attribute of a record.
type NumericField int

const (
	FieldRanking NumericField = iota
	FieldLatitude
	FieldLongitude
)

// Value extracts the field from r.
func (f NumericField) Value(r SuburbRecord) float64 {
	switch f {
	case FieldLatitude:
		return r.Latitude()
	case FieldLongitude:
		return r.Longitude()
	default:
		return r.Ranking
	}
}

func (f NumericField) String() string {
	switch f {
	case FieldLatitude:
		return "latitude"
	case FieldLongitude:
		return "longitude"
	default:
		return "ranking"
	}
}
