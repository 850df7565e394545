package persistence

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/iota-uz/orgchart/modules/org/domain/aggregates/employee"
	"github.com/iota-uz/orgchart/pkg/composables"
)

const (
	employeeSelectQuery = `SELECT id, name, title, organization_id, department_id, manager_id FROM employees`

	employeeInsertQuery = `
INSERT INTO employees (name, title, organization_id, department_id)
VALUES ($1, $2, $3, $4)
RETURNING id
`
	employeeSetManagerQuery = `UPDATE employees SET manager_id = $2 WHERE id = $1`

	employeeAddSecondaryQuery = `
INSERT INTO employee_secondary_managers (employee_id, manager_id)
VALUES ($1, $2)
ON CONFLICT (employee_id, manager_id) DO NOTHING
`
	employeeSecondaryByEmployeeQuery = `SELECT manager_id FROM employee_secondary_managers WHERE employee_id = $1 ORDER BY seq`

	employeeSecondaryByOrgQuery = `
SELECT s.employee_id, s.manager_id
FROM employee_secondary_managers s
JOIN employees e ON e.id = s.employee_id
WHERE e.organization_id = $1
ORDER BY s.employee_id, s.seq
`
)

type EmployeeRepository struct{}

func NewEmployeeRepository() employee.Repository {
	return &EmployeeRepository{}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(&e.ID, &e.Name, &e.Title, &e.OrganizationID, &e.DepartmentID, &e.ManagerID)
	return e, err
}

func (r *EmployeeRepository) FindByName(ctx context.Context, organizationID int64, name string) (employee.Employee, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return employee.Employee{}, err
	}

	e, err := scanEmployee(tx.QueryRow(ctx, employeeSelectQuery+" WHERE organization_id = $1 AND name = $2", organizationID, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.Employee{}, employee.ErrNotFound
	}
	if err != nil {
		return employee.Employee{}, gerrors.Wrap(err, "failed to find employee")
	}

	rows, err := tx.Query(ctx, employeeSecondaryByEmployeeQuery, e.ID)
	if err != nil {
		return employee.Employee{}, gerrors.Wrap(err, "failed to query secondary managers")
	}
	defer rows.Close()
	for rows.Next() {
		var managerID int64
		if err := rows.Scan(&managerID); err != nil {
			return employee.Employee{}, gerrors.Wrap(err, "failed to scan secondary manager")
		}
		e.SecondaryManagerIDs = append(e.SecondaryManagerIDs, managerID)
	}
	if err := rows.Err(); err != nil {
		return employee.Employee{}, gerrors.Wrap(err, "failed to iterate secondary managers")
	}
	return e, nil
}

func (r *EmployeeRepository) Create(ctx context.Context, e employee.Employee) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	var id int64
	if err := tx.QueryRow(ctx, employeeInsertQuery, e.Name, e.Title, e.OrganizationID, e.DepartmentID).Scan(&id); err != nil {
		return 0, gerrors.Wrap(err, "failed to insert employee")
	}
	return id, nil
}

func (r *EmployeeRepository) SetManager(ctx context.Context, employeeID, managerID int64) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, employeeSetManagerQuery, employeeID, managerID)
	if err != nil {
		return gerrors.Wrap(err, "failed to set manager")
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrNotFound
	}
	return nil
}

func (r *EmployeeRepository) AddSecondaryManager(ctx context.Context, employeeID, managerID int64) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, employeeAddSecondaryQuery, employeeID, managerID); err != nil {
		return gerrors.Wrap(err, "failed to add secondary manager")
	}
	return nil
}

func (r *EmployeeRepository) ListByOrganization(ctx context.Context, organizationID int64) ([]employee.Employee, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, employeeSelectQuery+" WHERE organization_id = $1 ORDER BY id", organizationID)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to query employees")
	}
	defer rows.Close()

	var out []employee.Employee
	index := map[int64]int{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, gerrors.Wrap(err, "failed to scan employee row")
		}
		index[e.ID] = len(out)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, gerrors.Wrap(err, "failed to iterate employees")
	}
	rows.Close()

	secondary, err := tx.Query(ctx, employeeSecondaryByOrgQuery, organizationID)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to query secondary managers")
	}
	defer secondary.Close()
	for secondary.Next() {
		var employeeID, managerID int64
		if err := secondary.Scan(&employeeID, &managerID); err != nil {
			return nil, gerrors.Wrap(err, "failed to scan secondary manager")
		}
		if i, ok := index[employeeID]; ok {
			out[i].SecondaryManagerIDs = append(out[i].SecondaryManagerIDs, managerID)
		}
	}
	if err := secondary.Err(); err != nil {
		return nil, gerrors.Wrap(err, "failed to iterate secondary managers")
	}
	return out, nil
}
