package employee

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("employee not found")

type Repository interface {
	// FindByName returns ErrNotFound when no employee of the organization has
	// that name.
	FindByName(ctx context.Context, organizationID int64, name string) (Employee, error)
	Create(ctx context.Context, e Employee) (int64, error)
	SetManager(ctx context.Context, employeeID, managerID int64) error
	// AddSecondaryManager is a no-op when the link already exists.
	AddSecondaryManager(ctx context.Context, employeeID, managerID int64) error
	ListByOrganization(ctx context.Context, organizationID int64) ([]Employee, error)
}
