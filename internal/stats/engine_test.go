package stats

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	rows   []Row
	totals MetricSet
	err    error

	gotActive []Dimension
	gotPeriod *Period
}

func (s *stubStore) FetchGroupedCounts(_ context.Context, active []Dimension, period *Period) ([]Row, MetricSet, error) {
	s.gotActive = active
	s.gotPeriod = period
	return s.rows, s.totals, s.err
}

func TestComputeStats_TotalsOnly(t *testing.T) {
	t.Run("should return totals and nothing else when no flag is set", func(t *testing.T) {
		store := &stubStore{totals: MetricSet{ActiveSpecimens: 12000}}
		engine := NewEngine(store)

		response, err := engine.ComputeStats(context.Background(), StatsRequest{})
		require.NoError(t, err)

		assert.Equal(t, MetricSet{ActiveSpecimens: 12000}, response.Totals)
		assert.Nil(t, response.BySource)
		assert.Nil(t, response.ByMediaType)
		assert.Nil(t, response.ByPublicType)
		assert.Empty(t, store.gotActive)

		payload, err := json.Marshal(response)
		require.NoError(t, err)
		assert.JSONEq(t,
			`{"totals":{"active_specimens":12000,"entered_specimens":0,"archived_specimens":0,"loans":0}}`,
			string(payload))
	})

	t.Run("should forward the period to the store untouched", func(t *testing.T) {
		store := &stubStore{}
		engine := NewEngine(store)

		period := &Period{
			Start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC),
		}
		_, err := engine.ComputeStats(context.Background(), StatsRequest{Period: period})
		require.NoError(t, err)

		assert.Equal(t, period, store.gotPeriod)
	})
}

func TestComputeStats_FlatBreakdown(t *testing.T) {
	t.Run("should sort sources by active specimens descending", func(t *testing.T) {
		store := &stubStore{
			rows: []Row{
				{Values: []GroupValue{{ID: 2, Label: "Annexe"}}, Metrics: MetricSet{ActiveSpecimens: 4000, Loans: 120}},
				{Values: []GroupValue{{ID: 1, Label: "Médiathèque"}}, Metrics: MetricSet{ActiveSpecimens: 8000, Loans: 300}},
			},
			totals: MetricSet{ActiveSpecimens: 12000, Loans: 420},
		}
		engine := NewEngine(store)

		response, err := engine.ComputeStats(context.Background(), StatsRequest{BySource: true})
		require.NoError(t, err)

		require.Len(t, response.BySource, 2)
		assert.Equal(t, "Médiathèque", response.BySource[0].SourceName)
		assert.Equal(t, int32(1), response.BySource[0].SourceID)
		assert.Equal(t, int64(8000), response.BySource[0].ActiveSpecimens)
		assert.Equal(t, "Annexe", response.BySource[1].SourceName)
		assert.Equal(t, int64(4000), response.BySource[1].ActiveSpecimens)
		assert.Equal(t, []Dimension{DimensionSource}, store.gotActive)
	})

	t.Run("should break ties on label then id", func(t *testing.T) {
		store := &stubStore{
			rows: []Row{
				{Values: []GroupValue{{ID: 3, Label: "Dons"}}, Metrics: MetricSet{ActiveSpecimens: 100}},
				{Values: []GroupValue{{ID: 2, Label: "Achats"}}, Metrics: MetricSet{ActiveSpecimens: 100}},
				{Values: []GroupValue{{ID: 1, Label: "Achats"}}, Metrics: MetricSet{ActiveSpecimens: 100}},
			},
			totals: MetricSet{ActiveSpecimens: 300},
		}
		engine := NewEngine(store)

		response, err := engine.ComputeStats(context.Background(), StatsRequest{BySource: true})
		require.NoError(t, err)

		require.Len(t, response.BySource, 3)
		assert.Equal(t, int32(1), response.BySource[0].SourceID)
		assert.Equal(t, int32(2), response.BySource[1].SourceID)
		assert.Equal(t, "Dons", response.BySource[2].SourceName)
	})

	t.Run("should serialize a flat media type list under by_media_type", func(t *testing.T) {
		store := &stubStore{
			rows: []Row{
				{Values: []GroupValue{{Label: "b"}}, Metrics: MetricSet{ActiveSpecimens: 5000}},
				{Values: []GroupValue{{Label: "vd"}}, Metrics: MetricSet{ActiveSpecimens: 1500}},
			},
			totals: MetricSet{ActiveSpecimens: 6500},
		}
		engine := NewEngine(store)

		response, err := engine.ComputeStats(context.Background(), StatsRequest{ByMediaType: true})
		require.NoError(t, err)

		payload, err := json.Marshal(response)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"totals": {"active_specimens": 6500, "entered_specimens": 0, "archived_specimens": 0, "loans": 0},
			"by_media_type": [
				{"label": "b", "active_specimens": 5000, "entered_specimens": 0, "archived_specimens": 0, "loans": 0},
				{"label": "vd", "active_specimens": 1500, "entered_specimens": 0, "archived_specimens": 0, "loans": 0}
			]
		}`, string(payload))
	})

	t.Run("should serialize an empty breakdown as an empty list, not null", func(t *testing.T) {
		store := &stubStore{}
		engine := NewEngine(store)

		response, err := engine.ComputeStats(context.Background(), StatsRequest{ByPublicType: true})
		require.NoError(t, err)

		payload, err := json.Marshal(response)
		require.NoError(t, err)
		assert.JSONEq(t,
			`{"totals":{"active_specimens":0,"entered_specimens":0,"archived_specimens":0,"loans":0},"by_public_type":[]}`,
			string(payload))
	})
}

func TestComputeStats_NestedBreakdown(t *testing.T) {
	t.Run("should rebuild parent metrics from children", func(t *testing.T) {
		store := &stubStore{
			rows: []Row{
				{Values: []GroupValue{{ID: 1, Label: "Médiathèque"}, {Label: "b"}}, Metrics: MetricSet{ActiveSpecimens: 5000, Loans: 200}},
				{Values: []GroupValue{{ID: 1, Label: "Médiathèque"}, {Label: "vd"}}, Metrics: MetricSet{ActiveSpecimens: 1500, Loans: 80}},
				{Values: []GroupValue{{ID: 2, Label: "Annexe"}, {Label: "b"}}, Metrics: MetricSet{ActiveSpecimens: 1000, Loans: 10}},
			},
			totals: MetricSet{ActiveSpecimens: 7500, Loans: 290},
		}
		engine := NewEngine(store)

		response, err := engine.ComputeStats(context.Background(), StatsRequest{BySource: true, ByMediaType: true})
		require.NoError(t, err)

		require.Len(t, response.BySource, 2)
		first := response.BySource[0]
		assert.Equal(t, "Médiathèque", first.SourceName)
		assert.Equal(t, int64(6500), first.ActiveSpecimens)
		assert.Equal(t, int64(280), first.Loans)
		require.Len(t, first.ByMediaType, 2)
		assert.Equal(t, "b", first.ByMediaType[0].Label)
		assert.Equal(t, int64(5000), first.ByMediaType[0].ActiveSpecimens)
		assert.Equal(t, "vd", first.ByMediaType[1].Label)
		assert.Nil(t, first.ByPublicType)
	})

	t.Run("should nest public type under source when media type is inactive", func(t *testing.T) {
		store := &stubStore{
			rows: []Row{
				{Values: []GroupValue{{ID: 1, Label: "Médiathèque"}, {Label: "adult"}}, Metrics: MetricSet{ActiveSpecimens: 4000}},
				{Values: []GroupValue{{ID: 1, Label: "Médiathèque"}, {Label: "children"}}, Metrics: MetricSet{ActiveSpecimens: 2500}},
			},
			totals: MetricSet{ActiveSpecimens: 6500},
		}
		engine := NewEngine(store)

		response, err := engine.ComputeStats(context.Background(), StatsRequest{BySource: true, ByPublicType: true})
		require.NoError(t, err)

		require.Len(t, response.BySource, 1)
		assert.Nil(t, response.BySource[0].ByMediaType)
		require.Len(t, response.BySource[0].ByPublicType, 2)
		assert.Equal(t, "adult", response.BySource[0].ByPublicType[0].Label)
	})

	t.Run("should build three levels with sums holding at every depth", func(t *testing.T) {
		store := &stubStore{
			rows: []Row{
				{Values: []GroupValue{{ID: 1, Label: "Médiathèque"}, {Label: "b"}, {Label: "adult"}}, Metrics: MetricSet{ActiveSpecimens: 3000, Loans: 150}},
				{Values: []GroupValue{{ID: 1, Label: "Médiathèque"}, {Label: "b"}, {Label: "children"}}, Metrics: MetricSet{ActiveSpecimens: 2000, Loans: 50}},
				{Values: []GroupValue{{ID: 1, Label: "Médiathèque"}, {Label: "vd"}, {Label: "adult"}}, Metrics: MetricSet{ActiveSpecimens: 1500, Loans: 80}},
			},
			totals: MetricSet{ActiveSpecimens: 6500, Loans: 280},
		}
		engine := NewEngine(store)

		response, err := engine.ComputeStats(context.Background(), StatsRequest{
			BySource: true, ByMediaType: true, ByPublicType: true,
		})
		require.NoError(t, err)

		require.Len(t, response.BySource, 1)
		source := response.BySource[0]
		assert.Equal(t, int64(6500), source.ActiveSpecimens)
		require.Len(t, source.ByMediaType, 2)

		book := source.ByMediaType[0]
		assert.Equal(t, "b", book.Label)
		assert.Equal(t, int64(5000), book.ActiveSpecimens)
		assert.Equal(t, int64(200), book.Loans)
		require.Len(t, book.ByPublicType, 2)
		assert.Equal(t, "adult", book.ByPublicType[0].Label)
		assert.Equal(t, int64(3000), book.ByPublicType[0].ActiveSpecimens)

		assert.Equal(t, []Dimension{DimensionSource, DimensionMediaType, DimensionPublicType}, store.gotActive)
	})

	t.Run("should merge duplicate leaf tuples additively", func(t *testing.T) {
		store := &stubStore{
			rows: []Row{
				{Values: []GroupValue{{Label: "b"}}, Metrics: MetricSet{ActiveSpecimens: 100}},
				{Values: []GroupValue{{Label: "b"}}, Metrics: MetricSet{ActiveSpecimens: 50}},
			},
			totals: MetricSet{ActiveSpecimens: 150},
		}
		engine := NewEngine(store)

		response, err := engine.ComputeStats(context.Background(), StatsRequest{ByMediaType: true})
		require.NoError(t, err)

		require.Len(t, response.ByMediaType, 1)
		assert.Equal(t, int64(150), response.ByMediaType[0].ActiveSpecimens)
	})

	t.Run("should produce the same output regardless of row order", func(t *testing.T) {
		rows := []Row{
			{Values: []GroupValue{{ID: 1, Label: "Médiathèque"}, {Label: "b"}}, Metrics: MetricSet{ActiveSpecimens: 5000}},
			{Values: []GroupValue{{ID: 2, Label: "Annexe"}, {Label: "vd"}}, Metrics: MetricSet{ActiveSpecimens: 1500}},
			{Values: []GroupValue{{ID: 1, Label: "Médiathèque"}, {Label: "vd"}}, Metrics: MetricSet{ActiveSpecimens: 1000}},
		}
		reversed := []Row{rows[2], rows[1], rows[0]}
		totals := MetricSet{ActiveSpecimens: 7500}
		request := StatsRequest{BySource: true, ByMediaType: true}

		a, err := NewEngine(&stubStore{rows: rows, totals: totals}).
			ComputeStats(context.Background(), request)
		require.NoError(t, err)
		b, err := NewEngine(&stubStore{rows: reversed, totals: totals}).
			ComputeStats(context.Background(), request)
		require.NoError(t, err)

		assert.Equal(t, a, b)
	})
}

func TestComputeStats_Inconsistency(t *testing.T) {
	t.Run("should fail when rows do not sum to totals", func(t *testing.T) {
		store := &stubStore{
			rows: []Row{
				{Values: []GroupValue{{ID: 1, Label: "Médiathèque"}}, Metrics: MetricSet{ActiveSpecimens: 7990}},
			},
			totals: MetricSet{ActiveSpecimens: 8000},
		}
		engine := NewEngine(store)

		_, err := engine.ComputeStats(context.Background(), StatsRequest{BySource: true})

		assert.ErrorIs(t, err, ErrInconsistentAggregation)
	})

	t.Run("should not run the sum check for a totals-only request", func(t *testing.T) {
		store := &stubStore{totals: MetricSet{ActiveSpecimens: 8000}}
		engine := NewEngine(store)

		_, err := engine.ComputeStats(context.Background(), StatsRequest{})

		assert.NoError(t, err)
	})

	t.Run("should reject rows with the wrong dimension arity", func(t *testing.T) {
		store := &stubStore{
			rows: []Row{
				{Values: []GroupValue{{ID: 1, Label: "Médiathèque"}, {Label: "b"}}, Metrics: MetricSet{ActiveSpecimens: 10}},
			},
			totals: MetricSet{ActiveSpecimens: 10},
		}
		engine := NewEngine(store)

		_, err := engine.ComputeStats(context.Background(), StatsRequest{BySource: true})

		assert.Error(t, err)
	})
}
