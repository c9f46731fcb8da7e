package models

// GeoPoint is a latitude/longitude pair. It has no lifecycle of its own and
// is always embedded in another record.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
