package stats

// MetricSet is the four counters carried by every node of a catalog
// statistics response. The three period-scoped counters (entered, archived,
// loans) are zero when the request had no period; active_specimens is a
// point-in-time snapshot and is always computed.
type MetricSet struct {
	ActiveSpecimens   int64 `json:"active_specimens"`
	EnteredSpecimens  int64 `json:"entered_specimens"`
	ArchivedSpecimens int64 `json:"archived_specimens"`
	Loans             int64 `json:"loans"`
}

// Add returns the component-wise sum of two metric sets.
func (m MetricSet) Add(other MetricSet) MetricSet {
	return MetricSet{
		ActiveSpecimens:   m.ActiveSpecimens + other.ActiveSpecimens,
		EnteredSpecimens:  m.EnteredSpecimens + other.EnteredSpecimens,
		ArchivedSpecimens: m.ArchivedSpecimens + other.ArchivedSpecimens,
		Loans:             m.Loans + other.Loans,
	}
}
