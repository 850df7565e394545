package memory

import (
	"context"
	"slices"

	"github.com/iota-uz/orgchart/modules/org/domain/aggregates/chart"
)

type ChartRepository struct {
	s *Store
}

var _ chart.Repository = (*ChartRepository)(nil)

func (r *ChartRepository) Create(ctx context.Context, c chart.Chart) (chart.Chart, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = r.s.st.id()
	c.CreatedAt = r.s.now().UTC()
	r.s.st.charts = append(r.s.st.charts, c)
	return c, nil
}

func (r *ChartRepository) GetByID(ctx context.Context, id int64) (chart.Chart, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.st.charts {
		if c.ID == id {
			return c, nil
		}
	}
	return chart.Chart{}, chart.ErrNotFound
}

func (r *ChartRepository) List(ctx context.Context) ([]chart.Chart, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := slices.Clone(r.s.st.charts)
	slices.Reverse(out)
	return out, nil
}
