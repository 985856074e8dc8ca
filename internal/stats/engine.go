package stats

import (
	"context"
	"time"
)

// Period is an inclusive time window scoping entered/archived/loan counts.
// It never scopes the active-specimen snapshot.
type Period struct {
	Start time.Time
	End   time.Time
}

// StatsRequest carries the caller's period and breakdown flags. All eight
// flag combinations are valid.
type StatsRequest struct {
	Period       *Period
	BySource     bool
	ByMediaType  bool
	ByPublicType bool
}

// GroupedCountStore supplies grouped-count rows for exactly the requested
// dimension combination, plus a totals row with no dimension key. Rows are
// computed over active specimens (regardless of period) and over
// entries/archivals/loans restricted to the period when one is supplied.
type GroupedCountStore interface {
	FetchGroupedCounts(ctx context.Context, active []Dimension, period *Period) ([]Row, MetricSet, error)
}

// Engine computes one nested statistics response per request. It is
// stateless; every computation builds an independently owned tree from
// collaborator-supplied rows.
type Engine struct {
	store GroupedCountStore
}

func NewEngine(store GroupedCountStore) *Engine {
	return &Engine{store: store}
}

// ComputeStats resolves the response shape, fetches grouped rows, and
// assembles the sorted tree. It fails only if the storage layer fails or if
// its rows are inconsistent with its totals (ErrInconsistentAggregation);
// there is no partial-result mode.
func (e *Engine) ComputeStats(ctx context.Context, req StatsRequest) (StatsResponse, error) {
	shape := ResolveShape(req.BySource, req.ByMediaType, req.ByPublicType)

	rows, totals, err := e.store.FetchGroupedCounts(ctx, shape.Active, req.Period)
	if err != nil {
		return StatsResponse{}, err
	}

	set, err := ingestRows(shape.Active, rows, totals)
	if err != nil {
		return StatsResponse{}, err
	}

	nodes := buildTree(set)
	sortTree(nodes)

	return assembleResponse(shape, nodes, totals), nil
}
