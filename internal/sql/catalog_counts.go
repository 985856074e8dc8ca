package sql

import (
	"context"
	"fmt"
	"strings"

	"api/internal/models"
	"api/internal/stats"

	"gorm.io/gorm"
)

// allLoansTable unions live and archived loans; together they are the full
// loan record for a period.
const allLoansTable = "(SELECT specimen_id, date FROM loans UNION ALL SELECT specimen_id, date FROM loans_archives) AS all_loans"

// CatalogCountStore reads grouped catalog counts from the database. It is
// the storage collaborator behind the statistics engine.
type CatalogCountStore struct {
	DB *gorm.DB
}

func (s CatalogCountStore) FetchGroupedCounts(ctx context.Context, active []stats.Dimension, period *stats.Period) ([]stats.Row, stats.MetricSet, error) {
	return FetchGroupedCatalogCounts(s.DB.WithContext(ctx), active, period)
}

// groupedCountRow is the scan target shared by the specimen and loan grouped
// queries. Dimension columns not selected by a query stay zero-valued and
// are ignored when the row is keyed.
type groupedCountRow struct {
	SourceID          int32
	SourceName        string
	MediaType         string
	PublicType        string
	ActiveSpecimens   int64
	EnteredSpecimens  int64
	ArchivedSpecimens int64
	Loans             int64
}

func (r groupedCountRow) key() string {
	return fmt.Sprintf("%d|%s|%s|%s", r.SourceID, r.SourceName, r.MediaType, r.PublicType)
}

// values projects the row's dimension columns onto the active dimension
// list, in priority order.
func (r groupedCountRow) values(active []stats.Dimension) []stats.GroupValue {
	values := make([]stats.GroupValue, 0, len(active))
	for _, d := range active {
		switch d {
		case stats.DimensionSource:
			values = append(values, stats.GroupValue{ID: r.SourceID, Label: r.SourceName})
		case stats.DimensionMediaType:
			values = append(values, stats.GroupValue{Label: r.MediaType})
		case stats.DimensionPublicType:
			values = append(values, stats.GroupValue{Label: r.PublicType})
		}
	}
	return values
}

// FetchGroupedCatalogCounts runs the counting queries for one statistics
// request: a totals row, and when dimensions are active, one grouped-count
// row per existing dimension-value combination. Active specimens are counted
// as of now; entries, archivals and loans only within the period, and are
// zero when no period is given.
func FetchGroupedCatalogCounts(db *gorm.DB, active []stats.Dimension, period *stats.Period) ([]stats.Row, stats.MetricSet, error) {
	totals, err := fetchCatalogTotals(db, period)
	if err != nil {
		return nil, stats.MetricSet{}, err
	}

	if len(active) == 0 {
		return nil, totals, nil
	}

	specimenRows, err := fetchSpecimenGroups(db, active, period)
	if err != nil {
		return nil, stats.MetricSet{}, err
	}

	rows := make([]stats.Row, 0, len(specimenRows))
	index := make(map[string]int, len(specimenRows))
	for _, r := range specimenRows {
		index[r.key()] = len(rows)
		rows = append(rows, stats.Row{
			Values: r.values(active),
			Metrics: stats.MetricSet{
				ActiveSpecimens:   r.ActiveSpecimens,
				EnteredSpecimens:  r.EnteredSpecimens,
				ArchivedSpecimens: r.ArchivedSpecimens,
			},
		})
	}

	if period != nil {
		loanRows, err := fetchLoanGroups(db, active, *period)
		if err != nil {
			return nil, stats.MetricSet{}, err
		}
		for _, r := range loanRows {
			if i, ok := index[r.key()]; ok {
				rows[i].Metrics.Loans += r.Loans
				continue
			}
			// Every loan joins a specimen, so its group normally already
			// exists among the specimen rows.
			index[r.key()] = len(rows)
			rows = append(rows, stats.Row{
				Values:  r.values(active),
				Metrics: stats.MetricSet{Loans: r.Loans},
			})
		}
	}

	return rows, totals, nil
}

// dimensionColumns returns the SELECT expressions, GROUP BY expressions and
// required joins for the active dimensions.
func dimensionColumns(active []stats.Dimension) (selects, groups, joins []string) {
	needsItems := false
	for _, d := range active {
		switch d {
		case stats.DimensionSource:
			// Specimens without a source fold into a synthetic "unknown"
			// source with id 0.
			selects = append(selects,
				"COALESCE(sources.id, 0) AS source_id",
				"COALESCE(sources.name, 'unknown') AS source_name")
			groups = append(groups, "COALESCE(sources.id, 0)", "COALESCE(sources.name, 'unknown')")
			joins = append(joins, "LEFT JOIN sources ON sources.id = specimens.source_id")
		case stats.DimensionMediaType:
			selects = append(selects, "COALESCE(items.media_type, 'unknown') AS media_type")
			groups = append(groups, "COALESCE(items.media_type, 'unknown')")
			needsItems = true
		case stats.DimensionPublicType:
			expr := fmt.Sprintf(
				"CASE items.audience_type WHEN %d THEN 'adult' WHEN %d THEN 'children' ELSE 'unknown' END",
				models.AudienceAdult, models.AudienceYouth)
			selects = append(selects, expr+" AS public_type")
			groups = append(groups, expr)
			needsItems = true
		}
	}
	if needsItems {
		joins = append(joins, "JOIN items ON items.id = specimens.item_id")
	}
	return selects, groups, joins
}

func fetchSpecimenGroups(db *gorm.DB, active []stats.Dimension, period *stats.Period) ([]groupedCountRow, error) {
	selects, groups, joins := dimensionColumns(active)

	var args []any
	selects = append(selects, "COUNT(*) FILTER (WHERE specimens.archived_at IS NULL) AS active_specimens")
	if period != nil {
		selects = append(selects,
			"COUNT(*) FILTER (WHERE specimens.created_at BETWEEN ? AND ?) AS entered_specimens",
			"COUNT(*) FILTER (WHERE specimens.archived_at BETWEEN ? AND ?) AS archived_specimens")
		args = append(args, period.Start, period.End, period.Start, period.End)
	} else {
		selects = append(selects, "0 AS entered_specimens", "0 AS archived_specimens")
	}

	query := db.Model(&models.Specimen{}).Select(strings.Join(selects, ", "), args...)
	for _, join := range joins {
		query = query.Joins(join)
	}

	var rows []groupedCountRow
	if err := query.Group(strings.Join(groups, ", ")).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func fetchLoanGroups(db *gorm.DB, active []stats.Dimension, period stats.Period) ([]groupedCountRow, error) {
	selects, groups, joins := dimensionColumns(active)
	selects = append(selects, "COUNT(*) AS loans")

	query := db.Table(allLoansTable).
		Select(strings.Join(selects, ", ")).
		Joins("JOIN specimens ON specimens.id = all_loans.specimen_id")
	for _, join := range joins {
		query = query.Joins(join)
	}

	var rows []groupedCountRow
	err := query.
		Where("all_loans.date BETWEEN ? AND ?", period.Start, period.End).
		Group(strings.Join(groups, ", ")).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func fetchCatalogTotals(db *gorm.DB, period *stats.Period) (stats.MetricSet, error) {
	var totals stats.MetricSet

	var active int64
	if err := db.Model(&models.Specimen{}).Where("archived_at IS NULL").Count(&active).Error; err != nil {
		return stats.MetricSet{}, err
	}
	totals.ActiveSpecimens = active

	if period == nil {
		return totals, nil
	}

	var entered int64
	err := db.Model(&models.Specimen{}).
		Where("created_at BETWEEN ? AND ?", period.Start, period.End).
		Count(&entered).Error
	if err != nil {
		return stats.MetricSet{}, err
	}
	totals.EnteredSpecimens = entered

	var archived int64
	err = db.Model(&models.Specimen{}).
		Where("archived_at BETWEEN ? AND ?", period.Start, period.End).
		Count(&archived).Error
	if err != nil {
		return stats.MetricSet{}, err
	}
	totals.ArchivedSpecimens = archived

	var loans int64
	err = db.Table(allLoansTable).
		Where("all_loans.date BETWEEN ? AND ?", period.Start, period.End).
		Count(&loans).Error
	if err != nil {
		return stats.MetricSet{}, err
	}
	totals.Loans = loans

	return totals, nil
}
