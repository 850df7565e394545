package organization

import "context"

type Organization struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Department struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	OrganizationID int64  `json:"organization_id"`
	ParentID       *int64 `json:"parent_id,omitempty"`
}

type Repository interface {
	// FindOrCreate returns the organization with that name, creating it when
	// absent.
	FindOrCreate(ctx context.Context, name string) (Organization, error)
}

type DepartmentRepository interface {
	// FindOrCreate looks a department up by (name, organization) and creates
	// it when absent.
	FindOrCreate(ctx context.Context, organizationID int64, name string) (Department, error)
}
