package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/iota-uz/orgchart/modules/org/domain/aggregates/employee"
	"github.com/iota-uz/orgchart/modules/org/domain/hierarchy"
	"github.com/iota-uz/orgchart/modules/org/infrastructure/memory"
	"github.com/iota-uz/orgchart/modules/org/infrastructure/persistence"
	"github.com/iota-uz/orgchart/modules/org/services"
	"github.com/iota-uz/orgchart/pkg/constants"
)

const (
	backendDB     = "db"
	backendMemory = "memory"
)

type importOptions struct {
	Input          string `validate:"required"`
	OrganizationID int64  `validate:"gt=0"`
	DepartmentID   int64  `validate:"gte=0"`
	Backend        string `validate:"oneof=db memory"`
	Apply          bool
}

// errDryRun aborts the import transaction after the graph was built.
var errDryRun = errors.New("dry run")

func newImportCmd(a *app) *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Build the employee graph for an organization (dry-run unless --apply)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := constants.Validate.Struct(opts); err != nil {
				return withCode(exitUsage, fmt.Errorf("invalid flags: %w", err))
			}
			if opts.Apply && opts.Backend != backendDB {
				return withCode(exitUsage, fmt.Errorf("--apply requires --backend %s", backendDB))
			}
			text, err := readInput(cmd, opts.Input)
			if err != nil {
				return err
			}
			hopts, err := a.hierarchyOptions()
			if err != nil {
				return err
			}
			return a.runImport(cmd.Context(), cmd.OutOrStdout(), text, opts, hopts)
		},
	}

	cmd.Flags().StringVar(&opts.Input, "input", "", "Input file, - for stdin (required)")
	cmd.Flags().Int64Var(&opts.OrganizationID, "org-id", 0, "Organization id (required)")
	cmd.Flags().Int64Var(&opts.DepartmentID, "department-id", 0, "Department id for created employees")
	cmd.Flags().StringVar(&opts.Backend, "backend", backendDB, "Backend: db|memory")
	cmd.Flags().BoolVar(&opts.Apply, "apply", false, "Commit changes to the DB (default is dry-run)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("org-id")
	return cmd
}

type importSummary struct {
	RunID          uuid.UUID `json:"run_id"`
	Status         string    `json:"status"`
	Backend        string    `json:"backend"`
	OrganizationID int64     `json:"organization_id"`
	DepartmentID   *int64    `json:"department_id,omitempty"`
	Employees      int       `json:"employees"`
	Created        int       `json:"created"`
	Existing       int       `json:"existing"`
	ManagerLinks   int       `json:"manager_links"`
	SecondaryLinks int       `json:"secondary_links"`
	DroppedLines   []int     `json:"dropped_lines,omitempty"`
	Duplicates     []string  `json:"duplicates,omitempty"`
	Unresolved     []string  `json:"unresolved,omitempty"`
	StartedAt      time.Time `json:"started_at"`
	FinishedAt     time.Time `json:"finished_at"`
}

func (a *app) runImport(ctx context.Context, out io.Writer, text string, opts importOptions, hopts []hierarchy.Option) error {
	summary := importSummary{
		RunID:          uuid.New(),
		Status:         "dry_run",
		Backend:        opts.Backend,
		OrganizationID: opts.OrganizationID,
		StartedAt:      time.Now().UTC(),
	}
	var deptID *int64
	if opts.DepartmentID > 0 {
		deptID = &opts.DepartmentID
		summary.DepartmentID = deptID
	}

	parsed, err := services.NewHierarchyService(hopts...).Parse(ctx, text)
	if err != nil {
		return classify(err)
	}
	summary.DroppedLines = parsed.Report.Dropped

	var res *employee.BuildResult
	switch opts.Backend {
	case backendMemory:
		store := memory.New()
		res, err = services.NewEmployeeGraphService(store.Employees(), store, hopts...).Build(ctx, text, opts.OrganizationID, deptID)
	default:
		err = a.withDB(ctx, func(ctx context.Context, pool *pgxpool.Pool) error {
			runner := persistence.NewTxRunner(pool)
			svc := services.NewEmployeeGraphService(persistence.NewEmployeeRepository(), runner, hopts...)
			if opts.Apply {
				var buildErr error
				res, buildErr = svc.Build(ctx, text, opts.OrganizationID, deptID)
				return buildErr
			}
			txErr := runner.InTx(ctx, func(txCtx context.Context) error {
				var buildErr error
				if res, buildErr = svc.Build(txCtx, text, opts.OrganizationID, deptID); buildErr != nil {
					return buildErr
				}
				return errDryRun
			})
			if errors.Is(txErr, errDryRun) {
				return nil
			}
			return txErr
		})
		if err == nil && opts.Apply {
			summary.Status = "applied"
		}
	}
	if err != nil {
		return classify(err)
	}

	summary.Employees = len(res.Employees)
	summary.Created = res.Created
	summary.Existing = res.Existing
	summary.ManagerLinks = res.ManagerLinks
	summary.SecondaryLinks = res.SecondaryLinks
	summary.Duplicates = res.Duplicates
	summary.Unresolved = res.Unresolved
	summary.FinishedAt = time.Now().UTC()
	return writeJSONLine(out, summary)
}
