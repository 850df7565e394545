// Package memory keeps organizations, employees and charts in process memory.
// It backs dry runs of the CLI and service tests.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/iota-uz/orgchart/modules/org/domain/aggregates/chart"
	"github.com/iota-uz/orgchart/modules/org/domain/aggregates/employee"
	"github.com/iota-uz/orgchart/modules/org/domain/aggregates/organization"
)

type txKey struct{}

type state struct {
	orgs        []organization.Organization
	departments []organization.Department
	employees   []employee.Employee
	charts      []chart.Chart
	nextID      int64
}

func (s *state) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *state) clone() state {
	c := *s
	c.orgs = slices.Clone(s.orgs)
	c.departments = slices.Clone(s.departments)
	c.charts = slices.Clone(s.charts)
	c.employees = make([]employee.Employee, len(s.employees))
	for i, e := range s.employees {
		c.employees[i] = cloneEmployee(e)
	}
	return c
}

func cloneEmployee(e employee.Employee) employee.Employee {
	if e.ManagerID != nil {
		id := *e.ManagerID
		e.ManagerID = &id
	}
	e.SecondaryManagerIDs = slices.Clone(e.SecondaryManagerIDs)
	return e
}

// Store is safe for concurrent use. Transactions are serialised and restore
// the state captured at begin when fn fails.
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex
	st   state
	now  func() time.Time
}

func New() *Store {
	return &Store{now: time.Now}
}

func (s *Store) InTx(ctx context.Context, fn func(context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.st.clone()
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.st = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) Employees() *EmployeeRepository {
	return &EmployeeRepository{s: s}
}

func (s *Store) Organizations() *OrganizationRepository {
	return &OrganizationRepository{s: s}
}

func (s *Store) Departments() *DepartmentRepository {
	return &DepartmentRepository{s: s}
}

func (s *Store) Charts() *ChartRepository {
	return &ChartRepository{s: s}
}
