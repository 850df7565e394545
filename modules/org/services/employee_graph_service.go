package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/orgchart/modules/org/domain/aggregates/employee"
	"github.com/iota-uz/orgchart/modules/org/domain/hierarchy"
)

type EmployeeGraphService struct {
	Repo employee.Repository
	Tx   TxRunner
	opts []hierarchy.Option
}

func NewEmployeeGraphService(repo employee.Repository, tx TxRunner, opts ...hierarchy.Option) *EmployeeGraphService {
	return &EmployeeGraphService{Repo: repo, Tx: tx, opts: opts}
}

// Build stores one employee per unique name of text and links managers by
// name inside a single transaction. Cyclic text is rejected before any write.
// Any storage failure, including one while opening or committing the
// transaction, rolls the whole batch back and is returned as
// *employee.PersistenceError.
func (s *EmployeeGraphService) Build(ctx context.Context, text string, organizationID int64, departmentID *int64) (*employee.BuildResult, error) {
	started := time.Now()
	records, dropped := hierarchy.Scan(text)
	scope := employee.Scope{OrganizationID: organizationID, DepartmentID: departmentID}
	builder := employee.NewGraphBuilder(s.Repo, s.opts...)

	var res *employee.BuildResult
	err := s.Tx.InTx(ctx, func(txCtx context.Context) error {
		var buildErr error
		res, buildErr = builder.Build(txCtx, records, scope)
		return buildErr
	})
	err = asPersistenceError(err, builder.Phase())
	recordGraphBuild(err, started)
	if err != nil {
		logWithFields(ctx, logrus.ErrorLevel, "employee graph rolled back", logrus.Fields{
			"organization_id": organizationID,
			"error":           err.Error(),
		})
		return nil, err
	}

	logWithFields(ctx, logrus.InfoLevel, "employee graph stored", logrus.Fields{
		"organization_id": organizationID,
		"created":         res.Created,
		"existing":        res.Existing,
		"manager_links":   res.ManagerLinks,
		"secondary_links": res.SecondaryLinks,
		"dropped":         len(dropped),
	})
	return res, nil
}

// asPersistenceError wraps transaction begin and commit failures so callers
// see one error kind for every storage failure of a build.
func asPersistenceError(err error, phase employee.Phase) error {
	if err == nil || errors.Is(err, hierarchy.ErrCyclicHierarchy) {
		return err
	}
	var pErr *employee.PersistenceError
	if errors.As(err, &pErr) {
		return err
	}
	return &employee.PersistenceError{Phase: phase, Err: err}
}

// Export renders the stored employees of an organization back into
// "Name, Title[, Manager]" lines, one per primary manager link and one per
// dotted-line manager.
func (s *EmployeeGraphService) Export(ctx context.Context, organizationID int64) (string, error) {
	rows, err := s.Repo.ListByOrganization(ctx, organizationID)
	if err != nil {
		return "", err
	}
	names := make(map[int64]string, len(rows))
	for _, e := range rows {
		names[e.ID] = e.Name
	}

	records := make([]hierarchy.Record, 0, len(rows))
	for _, e := range rows {
		rec := hierarchy.Record{Line: len(records) + 1, Name: e.Name, Title: e.Title}
		if e.HasManager() {
			rec.Manager = names[*e.ManagerID]
		}
		records = append(records, rec)
		for _, id := range e.SecondaryManagerIDs {
			if m, ok := names[id]; ok {
				records = append(records, hierarchy.Record{Line: len(records) + 1, Name: e.Name, Title: e.Title, Manager: m})
			}
		}
	}
	return hierarchy.FormatLines(records), nil
}

func (s *EmployeeGraphService) List(ctx context.Context, organizationID int64) ([]employee.Employee, error) {
	return s.Repo.ListByOrganization(ctx, organizationID)
}
