package stats

import "encoding/json"

// SourceBreakdown is one entry of a by_source list. Depending on the active
// dimensions it nests either media type or public type children; fields for
// inactive dimensions are never emitted.
type SourceBreakdown struct {
	SourceID   int32  `json:"source_id"`
	SourceName string `json:"source_name"`
	MetricSet
	ByMediaType  []Breakdown `json:"by_media_type,omitempty"`
	ByPublicType []Breakdown `json:"by_public_type,omitempty"`
}

// Breakdown is one entry of a by_media_type or by_public_type list. Only a
// media type entry may carry nested public type children.
type Breakdown struct {
	Label string `json:"label"`
	MetricSet
	ByPublicType []Breakdown `json:"by_public_type,omitempty"`
}

// StatsResponse is the wire shape of a catalog statistics computation.
// Totals is always present; at most one of the breakdown slices is non-nil,
// named after the highest-priority active dimension.
type StatsResponse struct {
	Totals       MetricSet
	BySource     []SourceBreakdown
	ByMediaType  []Breakdown
	ByPublicType []Breakdown
}

// MarshalJSON serializes exactly one breakdown field, the one matching the
// resolved shape. An active dimension with no data serializes as an empty
// list, never as null; inactive dimensions are absent at every depth.
func (r StatsResponse) MarshalJSON() ([]byte, error) {
	switch {
	case r.BySource != nil:
		return json.Marshal(struct {
			Totals   MetricSet         `json:"totals"`
			BySource []SourceBreakdown `json:"by_source"`
		}{r.Totals, r.BySource})
	case r.ByMediaType != nil:
		return json.Marshal(struct {
			Totals      MetricSet   `json:"totals"`
			ByMediaType []Breakdown `json:"by_media_type"`
		}{r.Totals, r.ByMediaType})
	case r.ByPublicType != nil:
		return json.Marshal(struct {
			Totals       MetricSet   `json:"totals"`
			ByPublicType []Breakdown `json:"by_public_type"`
		}{r.Totals, r.ByPublicType})
	default:
		return json.Marshal(struct {
			Totals MetricSet `json:"totals"`
		}{r.Totals})
	}
}

// assembleResponse maps the sorted tree onto the response structs for the
// resolved shape.
func assembleResponse(shape Shape, nodes []Node, totals MetricSet) StatsResponse {
	response := StatsResponse{Totals: totals}
	if shape.Mode == ModeTotalsOnly {
		return response
	}

	switch shape.Root() {
	case DimensionSource:
		response.BySource = assembleSources(shape.Active, nodes)
	case DimensionMediaType:
		response.ByMediaType = assembleBreakdowns(shape.Active, nodes)
	case DimensionPublicType:
		response.ByPublicType = assembleBreakdowns(shape.Active, nodes)
	}
	return response
}

func assembleSources(active []Dimension, nodes []Node) []SourceBreakdown {
	entries := make([]SourceBreakdown, 0, len(nodes))
	for _, node := range nodes {
		entry := SourceBreakdown{
			SourceID:   node.Value.ID,
			SourceName: node.Value.Label,
			MetricSet:  node.Metrics,
		}
		if len(active) > 1 {
			children := assembleBreakdowns(active[1:], node.Children)
			switch active[1] {
			case DimensionMediaType:
				entry.ByMediaType = children
			case DimensionPublicType:
				entry.ByPublicType = children
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

func assembleBreakdowns(active []Dimension, nodes []Node) []Breakdown {
	entries := make([]Breakdown, 0, len(nodes))
	for _, node := range nodes {
		entry := Breakdown{
			Label:     node.Value.Label,
			MetricSet: node.Metrics,
		}
		if len(active) > 1 {
			// The only possible sub-dimension of a label entry is public type.
			entry.ByPublicType = assembleBreakdowns(active[1:], node.Children)
		}
		entries = append(entries, entry)
	}
	return entries
}
