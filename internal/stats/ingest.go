package stats

import (
	"errors"
	"fmt"
)

// ErrInconsistentAggregation is returned when the grouped rows supplied by
// the storage layer do not sum to the totals row it supplied alongside them.
// This indicates a defect in the counting queries (e.g. a double-counted
// loan) and is never silently repaired.
var ErrInconsistentAggregation = errors.New("grouped rows do not sum to totals")

// GroupValue identifies one value of a dimension within a grouped row.
// ID is only meaningful for the source dimension; label-only dimensions
// (media type, public type) leave it zero.
type GroupValue struct {
	ID    int32
	Label string
}

// Row is one grouped-count row from the storage layer: the dimension values
// it was grouped by, in active-dimension priority order, plus its metrics.
type Row struct {
	Values  []GroupValue
	Metrics MetricSet
}

// rowSet is the validated output of ingestion: rows known to be at the
// requested grouping arity and consistent with the totals row.
type rowSet struct {
	active []Dimension
	rows   []Row
	totals MetricSet
}

// ingestRows validates collaborator rows against the active dimension list.
// Rows must all carry exactly one value per active dimension, and their
// component-wise sum must equal totals. The ingestor never re-derives
// counts, it only re-shapes them.
func ingestRows(active []Dimension, rows []Row, totals MetricSet) (rowSet, error) {
	for _, row := range rows {
		if len(row.Values) != len(active) {
			return rowSet{}, fmt.Errorf(
				"grouped row has %d dimension values, want %d", len(row.Values), len(active))
		}
	}

	if len(active) > 0 {
		var sum MetricSet
		for _, row := range rows {
			sum = sum.Add(row.Metrics)
		}
		if sum != totals {
			return rowSet{}, fmt.Errorf(
				"%w: rows sum to %+v, totals row is %+v", ErrInconsistentAggregation, sum, totals)
		}
	}

	return rowSet{active: active, rows: rows, totals: totals}, nil
}
