package employee

// Employee is one person of an organization with resolved manager references.
type Employee struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Title          string `json:"title"`
	OrganizationID int64  `json:"organization_id"`
	DepartmentID   *int64 `json:"department_id,omitempty"`
	ManagerID      *int64 `json:"manager_id,omitempty"`
	// SecondaryManagerIDs are dotted-line managers in the order they were linked.
	SecondaryManagerIDs []int64 `json:"secondary_manager_ids,omitempty"`
}

func (e Employee) HasManager() bool {
	return e.ManagerID != nil
}

// Scope places a batch of employees inside an organization and, optionally,
// a department.
type Scope struct {
	OrganizationID int64
	DepartmentID   *int64
}
