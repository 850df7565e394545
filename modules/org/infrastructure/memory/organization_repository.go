package memory

import (
	"context"

	"github.com/iota-uz/orgchart/modules/org/domain/aggregates/organization"
)

type OrganizationRepository struct {
	s *Store
}

var _ organization.Repository = (*OrganizationRepository)(nil)

func (r *OrganizationRepository) FindOrCreate(ctx context.Context, name string) (organization.Organization, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.st.orgs {
		if o.Name == name {
			return o, nil
		}
	}
	o := organization.Organization{ID: r.s.st.id(), Name: name}
	r.s.st.orgs = append(r.s.st.orgs, o)
	return o, nil
}

type DepartmentRepository struct {
	s *Store
}

var _ organization.DepartmentRepository = (*DepartmentRepository)(nil)

func (r *DepartmentRepository) FindOrCreate(ctx context.Context, organizationID int64, name string) (organization.Department, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range r.s.st.departments {
		if d.OrganizationID == organizationID && d.Name == name {
			return d, nil
		}
	}
	d := organization.Department{ID: r.s.st.id(), Name: name, OrganizationID: organizationID}
	r.s.st.departments = append(r.s.st.departments, d)
	return d, nil
}
