package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/iota-uz/orgchart/modules/org/domain/aggregates/employee"
)

type EmployeeRepository struct {
	s *Store
}

var _ employee.Repository = (*EmployeeRepository)(nil)

func (r *EmployeeRepository) index(id int64) (int, error) {
	for i, e := range r.s.st.employees {
		if e.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("employee %d: %w", id, employee.ErrNotFound)
}

func (r *EmployeeRepository) FindByName(ctx context.Context, organizationID int64, name string) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.st.employees {
		if e.OrganizationID == organizationID && e.Name == name {
			return cloneEmployee(e), nil
		}
	}
	return employee.Employee{}, employee.ErrNotFound
}

func (r *EmployeeRepository) Create(ctx context.Context, e employee.Employee) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.st.employees {
		if existing.OrganizationID == e.OrganizationID && existing.Name == e.Name {
			return 0, fmt.Errorf("employee %q already exists in organization %d", e.Name, e.OrganizationID)
		}
	}
	e = cloneEmployee(e)
	e.ID = r.s.st.id()
	r.s.st.employees = append(r.s.st.employees, e)
	return e.ID, nil
}

func (r *EmployeeRepository) SetManager(ctx context.Context, employeeID, managerID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i, err := r.index(employeeID)
	if err != nil {
		return err
	}
	if _, err := r.index(managerID); err != nil {
		return err
	}
	r.s.st.employees[i].ManagerID = &managerID
	return nil
}

func (r *EmployeeRepository) AddSecondaryManager(ctx context.Context, employeeID, managerID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i, err := r.index(employeeID)
	if err != nil {
		return err
	}
	if _, err := r.index(managerID); err != nil {
		return err
	}
	e := &r.s.st.employees[i]
	if !slices.Contains(e.SecondaryManagerIDs, managerID) {
		e.SecondaryManagerIDs = append(e.SecondaryManagerIDs, managerID)
	}
	return nil
}

func (r *EmployeeRepository) ListByOrganization(ctx context.Context, organizationID int64) ([]employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []employee.Employee
	for _, e := range r.s.st.employees {
		if e.OrganizationID == organizationID {
			out = append(out, cloneEmployee(e))
		}
	}
	return out, nil
}
