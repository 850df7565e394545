package persistence

import (
	"context"

	gerrors "github.com/go-faster/errors"

	"github.com/iota-uz/orgchart/modules/org/domain/aggregates/organization"
	"github.com/iota-uz/orgchart/pkg/composables"
)

const (
	organizationUpsertQuery = `
INSERT INTO organizations (name)
VALUES ($1)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id, name
`
	departmentUpsertQuery = `
INSERT INTO departments (organization_id, name)
VALUES ($1, $2)
ON CONFLICT (organization_id, name) DO UPDATE SET name = EXCLUDED.name
RETURNING id, name, organization_id, parent_id
`
)

type OrganizationRepository struct{}

func NewOrganizationRepository() organization.Repository {
	return &OrganizationRepository{}
}

func (r *OrganizationRepository) FindOrCreate(ctx context.Context, name string) (organization.Organization, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return organization.Organization{}, err
	}

	var o organization.Organization
	if err := tx.QueryRow(ctx, organizationUpsertQuery, name).Scan(&o.ID, &o.Name); err != nil {
		return organization.Organization{}, gerrors.Wrap(err, "failed to upsert organization")
	}
	return o, nil
}

type DepartmentRepository struct{}

func NewDepartmentRepository() organization.DepartmentRepository {
	return &DepartmentRepository{}
}

func (r *DepartmentRepository) FindOrCreate(ctx context.Context, organizationID int64, name string) (organization.Department, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return organization.Department{}, err
	}

	var d organization.Department
	if err := tx.QueryRow(ctx, departmentUpsertQuery, organizationID, name).Scan(&d.ID, &d.Name, &d.OrganizationID, &d.ParentID); err != nil {
		return organization.Department{}, gerrors.Wrap(err, "failed to upsert department")
	}
	return d, nil
}
