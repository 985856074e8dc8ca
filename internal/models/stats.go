package models

// CatalogStatsParams are the raw query parameters of GET /stats/catalog.
// Dates accept RFC 3339 or plain YYYY-MM-DD and are parsed by the stats
// service; flag parsing treats anything but "true"/"1" as false.
//
// Use with the ValidateQuery middleware:
//
//	r.With(m.ValidateQuery[models.CatalogStatsParams]).
//	    Get("/catalog", handler)
type CatalogStatsParams struct {
	StartDate    string `json:"start_date"     validate:"omitempty,max=35"`
	EndDate      string `json:"end_date"       validate:"omitempty,max=35"`
	BySource     string `json:"by_source"      validate:"omitempty,oneof=true false 1 0"`
	ByMediaType  string `json:"by_media_type"  validate:"omitempty,oneof=true false 1 0"`
	ByPublicType string `json:"by_public_type" validate:"omitempty,oneof=true false 1 0"`
}

// Flag interprets a boolean query value.
func Flag(value string) bool {
	return value == "true" || value == "1"
}
