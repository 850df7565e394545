package employee

import (
	"context"
	"errors"
	"fmt"

	"github.com/iota-uz/orgchart/modules/org/domain/hierarchy"
)

// BuildResult summarises one GraphBuilder run.
type BuildResult struct {
	// Employees holds one row per unique name in first-occurrence order.
	Employees      []Employee `json:"employees"`
	Created        int        `json:"created"`
	Existing       int        `json:"existing"`
	ManagerLinks   int        `json:"manager_links"`
	SecondaryLinks int        `json:"secondary_links"`
	// Unresolved lists manager names that match no employee of the input.
	Unresolved []string `json:"unresolved,omitempty"`
	Duplicates []string `json:"duplicates,omitempty"`
}

// GraphBuilder turns parsed records into employee rows in two phases: every
// unique name is found or created, then manager references are linked by
// name. It does not open a transaction; run it inside one. A builder runs one
// Build at a time.
type GraphBuilder struct {
	repo  Repository
	opts  []hierarchy.Option
	phase Phase
}

func NewGraphBuilder(repo Repository, opts ...hierarchy.Option) *GraphBuilder {
	return &GraphBuilder{repo: repo, opts: opts, phase: PhaseIdle}
}

func (b *GraphBuilder) Phase() Phase {
	return b.phase
}

func (b *GraphBuilder) enter(next Phase) error {
	if !b.phase.CanTransition(next) {
		return &PersistenceError{
			Phase: b.phase,
			Err:   fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.phase, next),
		}
	}
	b.phase = next
	return nil
}

func (b *GraphBuilder) fail(name string, err error) error {
	failed := b.phase
	b.phase = PhaseFailed
	return &PersistenceError{Phase: failed, Employee: name, Err: err}
}

// Build persists records under scope. Running it twice on the same records
// leaves the same rows behind. Records whose primary managers form a cycle
// are rejected with *hierarchy.CyclicHierarchyError before anything is
// written.
func (b *GraphBuilder) Build(ctx context.Context, records []hierarchy.Record, scope Scope) (*BuildResult, error) {
	g := hierarchy.BuildGraph(records, b.opts...)
	if err := g.CheckCycles(); err != nil {
		return nil, err
	}
	if err := b.enter(PhaseCreating); err != nil {
		return nil, err
	}

	res := &BuildResult{
		Employees:  make([]Employee, g.Len()),
		Unresolved: g.DanglingManagers(),
		Duplicates: g.Duplicates(),
	}

	for i := 0; i < g.Len(); i++ {
		entry := g.Entry(i)
		existing, err := b.repo.FindByName(ctx, scope.OrganizationID, entry.Name)
		switch {
		case err == nil:
			res.Employees[i] = existing
			res.Existing++
			continue
		case !errors.Is(err, ErrNotFound):
			return nil, b.fail(entry.Name, err)
		}

		e := Employee{
			Name:           entry.Name,
			Title:          entry.Title,
			OrganizationID: scope.OrganizationID,
			DepartmentID:   scope.DepartmentID,
		}
		id, err := b.repo.Create(ctx, e)
		if err != nil {
			return nil, b.fail(entry.Name, err)
		}
		e.ID = id
		res.Employees[i] = e
		res.Created++
	}

	if err := b.enter(PhaseLinking); err != nil {
		return nil, err
	}
	for i := 0; i < g.Len(); i++ {
		entry := g.Entry(i)
		emp := &res.Employees[i]
		if entry.Manager != hierarchy.NoManager {
			managerID := res.Employees[entry.Manager].ID
			if err := b.repo.SetManager(ctx, emp.ID, managerID); err != nil {
				return nil, b.fail(entry.Name, err)
			}
			emp.ManagerID = &managerID
			res.ManagerLinks++
		}
		for _, s := range entry.Secondary {
			managerID := res.Employees[s].ID
			if managerID == emp.ID || containsID(emp.SecondaryManagerIDs, managerID) {
				continue
			}
			if err := b.repo.AddSecondaryManager(ctx, emp.ID, managerID); err != nil {
				return nil, b.fail(entry.Name, err)
			}
			emp.SecondaryManagerIDs = append(emp.SecondaryManagerIDs, managerID)
			res.SecondaryLinks++
		}
	}

	if err := b.enter(PhaseDone); err != nil {
		return nil, err
	}
	return res, nil
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
