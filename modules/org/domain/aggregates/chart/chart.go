package chart

import (
	"context"
	"errors"
	"time"

	"github.com/iota-uz/orgchart/modules/org/domain/hierarchy"
)

// DefaultReportingLine is stored when no reporting line type is given.
const DefaultReportingLine = "hierarchical"

var ErrNotFound = errors.New("org chart not found")

// Chart is a stored rendering of an organization's hierarchy.
type Chart struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	OrganizationID    int64           `json:"organization_id"`
	DepartmentID      *int64          `json:"department_id,omitempty"`
	ReportingLineType string          `json:"reporting_line_type"`
	Hierarchy         *hierarchy.Node `json:"reporting_structure"`
	CreatedAt         time.Time       `json:"created_at"`
}

// NameFor returns the display name of a company's chart.
func NameFor(company string) string {
	return company + " Org Chart"
}

type Repository interface {
	Create(ctx context.Context, c Chart) (Chart, error)
	// GetByID returns ErrNotFound for an unknown id.
	GetByID(ctx context.Context, id int64) (Chart, error)
	// List returns charts newest first.
	List(ctx context.Context) ([]Chart, error)
}
