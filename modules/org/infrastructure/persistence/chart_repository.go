package persistence

import (
	"context"

	gerrors "github.com/go-faster/errors"

	"github.com/iota-uz/orgchart/modules/org/domain/aggregates/chart"
	"github.com/iota-uz/orgchart/modules/org/domain/hierarchy"
	"github.com/iota-uz/orgchart/pkg/composables"
)

const (
	chartSelectQuery = `SELECT id, name, organization_id, department_id, reporting_line_type, reporting_structure, created_at FROM org_charts`

	chartInsertQuery = `
INSERT INTO org_charts (name, organization_id, department_id, reporting_line_type, reporting_structure)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at
`
)

type ChartRepository struct{}

func NewChartRepository() chart.Repository {
	return &ChartRepository{}
}

func (r *ChartRepository) Create(ctx context.Context, c chart.Chart) (chart.Chart, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return chart.Chart{}, err
	}

	structure, err := hierarchy.MarshalTree(c.Hierarchy)
	if err != nil {
		return chart.Chart{}, gerrors.Wrap(err, "failed to encode hierarchy")
	}
	if err := tx.QueryRow(ctx, chartInsertQuery,
		c.Name,
		c.OrganizationID,
		c.DepartmentID,
		c.ReportingLineType,
		structure,
	).Scan(&c.ID, &c.CreatedAt); err != nil {
		return chart.Chart{}, gerrors.Wrap(err, "failed to insert chart")
	}
	return c, nil
}

func (r *ChartRepository) GetByID(ctx context.Context, id int64) (chart.Chart, error) {
	charts, err := r.queryCharts(ctx, chartSelectQuery+" WHERE id = $1", id)
	if err != nil {
		return chart.Chart{}, err
	}
	if len(charts) == 0 {
		return chart.Chart{}, chart.ErrNotFound
	}
	return charts[0], nil
}

func (r *ChartRepository) List(ctx context.Context) ([]chart.Chart, error) {
	return r.queryCharts(ctx, chartSelectQuery+" ORDER BY created_at DESC, id DESC")
}

func (r *ChartRepository) queryCharts(ctx context.Context, query string, args ...any) ([]chart.Chart, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var charts []chart.Chart
	for rows.Next() {
		var (
			c         chart.Chart
			structure []byte
		)
		if err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.OrganizationID,
			&c.DepartmentID,
			&c.ReportingLineType,
			&structure,
			&c.CreatedAt,
		); err != nil {
			return nil, gerrors.Wrap(err, "failed to scan chart row")
		}
		if c.Hierarchy, err = hierarchy.UnmarshalTree(structure); err != nil {
			return nil, gerrors.Wrapf(err, "failed to decode hierarchy of chart %d", c.ID)
		}
		charts = append(charts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, gerrors.Wrap(err, "failed to iterate charts")
	}
	return charts, nil
}
