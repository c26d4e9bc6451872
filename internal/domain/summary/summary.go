// Package summary flattens a single suburb record for display and export.
package summary

import "github.com/okian/socio/internal/domain/model"

// Summary field keys, in display order.
const (
	KeySuburb    = "suburb"
	KeyState     = "state"
	KeyRanking   = "ranking"
	KeyLatitude  = "latitude"
	KeyLongitude = "longitude"
)

// RankingLabel is the display label of the ranking field.
const RankingLabel = "Socio-economic Ranking"

// Project converts rec into a SummaryRecord. Latitude and longitude are read
// through the fixed coordinate mapping; extra columns follow in header order.
func Project(rec model.SuburbRecord) model.SummaryRecord {
	fields := make([]model.SummaryField, 0, 5+len(rec.Extras))
	fields = append(fields,
		model.SummaryField{Key: KeySuburb, Label: "Suburb", Value: rec.Suburb},
		model.SummaryField{Key: KeyState, Label: "State", Value: rec.State},
		model.SummaryField{Key: KeyRanking, Label: RankingLabel, Value: rec.Ranking},
		model.SummaryField{Key: KeyLatitude, Label: "Latitude", Value: rec.Latitude()},
		model.SummaryField{Key: KeyLongitude, Label: "Longitude", Value: rec.Longitude()},
	)
	for _, e := range rec.Extras {
		fields = append(fields, model.SummaryField{Key: e.Name, Label: e.Name, Value: e.Value})
	}
	return model.SummaryRecord{Suburb: rec.Suburb, State: rec.State, Fields: fields}
}
