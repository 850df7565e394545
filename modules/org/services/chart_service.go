package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/orgchart/modules/org/domain/aggregates/chart"
	"github.com/iota-uz/orgchart/modules/org/domain/aggregates/employee"
	"github.com/iota-uz/orgchart/modules/org/domain/aggregates/organization"
	"github.com/iota-uz/orgchart/modules/org/domain/hierarchy"
	"github.com/iota-uz/orgchart/pkg/constants"
)

var ErrValidation = errors.New("validation failed")

type SaveChartDTO struct {
	CompanyName    string `json:"company_name" validate:"required,max=255"`
	DepartmentName string `json:"department_name" validate:"max=255"`
	ReportingLine  string `json:"reporting_line" validate:"max=64"`
	OrgStructure   string `json:"org_structure" validate:"required"`
}

func (d *SaveChartDTO) normalize() {
	d.CompanyName = strings.TrimSpace(d.CompanyName)
	d.DepartmentName = strings.TrimSpace(d.DepartmentName)
	d.ReportingLine = strings.TrimSpace(d.ReportingLine)
	if strings.TrimSpace(d.OrgStructure) == "" {
		d.OrgStructure = ""
	}
}

type SavedChart struct {
	Chart        chart.Chart               `json:"chart"`
	Organization organization.Organization `json:"organization"`
	Department   *organization.Department  `json:"department,omitempty"`
	Report       hierarchy.Report          `json:"report"`
	Employees    *employee.BuildResult     `json:"employees"`
}

type ChartService struct {
	Orgs        organization.Repository
	Departments organization.DepartmentRepository
	Charts      chart.Repository
	Tx          TxRunner
	Hierarchy   *HierarchyService
	Graph       *EmployeeGraphService
}

func NewChartService(
	orgs organization.Repository,
	departments organization.DepartmentRepository,
	charts chart.Repository,
	employees employee.Repository,
	tx TxRunner,
	opts ...hierarchy.Option,
) *ChartService {
	return &ChartService{
		Orgs:        orgs,
		Departments: departments,
		Charts:      charts,
		Tx:          tx,
		Hierarchy:   NewHierarchyService(opts...),
		Graph:       NewEmployeeGraphService(employees, tx, opts...),
	}
}

// Save parses the org structure and stores the organization, department,
// chart and employee graph in one transaction.
func (s *ChartService) Save(ctx context.Context, dto SaveChartDTO) (*SavedChart, error) {
	dto.normalize()
	if err := constants.Validate.Struct(dto); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	parsed, err := s.Hierarchy.Parse(ctx, dto.OrgStructure)
	if err != nil {
		return nil, err
	}
	if parsed.Root == nil {
		return nil, fmt.Errorf("%w: org structure has no usable lines", ErrValidation)
	}

	reportingLine := dto.ReportingLine
	if reportingLine == "" {
		reportingLine = chart.DefaultReportingLine
	}

	out := &SavedChart{Report: parsed.Report}
	err = s.Tx.InTx(ctx, func(txCtx context.Context) error {
		org, err := s.Orgs.FindOrCreate(txCtx, dto.CompanyName)
		if err != nil {
			return fmt.Errorf("find or create organization: %w", err)
		}
		out.Organization = org

		var deptID *int64
		if dto.DepartmentName != "" {
			dept, err := s.Departments.FindOrCreate(txCtx, org.ID, dto.DepartmentName)
			if err != nil {
				return fmt.Errorf("find or create department: %w", err)
			}
			out.Department = &dept
			deptID = &dept.ID
		}

		c, err := s.Charts.Create(txCtx, chart.Chart{
			Name:              chart.NameFor(org.Name),
			OrganizationID:    org.ID,
			DepartmentID:      deptID,
			ReportingLineType: reportingLine,
			Hierarchy:         parsed.Root,
		})
		if err != nil {
			return fmt.Errorf("create chart: %w", err)
		}
		out.Chart = c

		out.Employees, err = s.Graph.Build(txCtx, dto.OrgStructure, org.ID, deptID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logWithFields(ctx, logrus.InfoLevel, "org chart saved", logrus.Fields{
		"chart_id":        out.Chart.ID,
		"organization_id": out.Organization.ID,
		"employees":       out.Report.Employees,
	})
	return out, nil
}

func (s *ChartService) Get(ctx context.Context, id int64) (chart.Chart, error) {
	return s.Charts.GetByID(ctx, id)
}

// List returns all stored charts, newest first.
func (s *ChartService) List(ctx context.Context) ([]chart.Chart, error) {
	return s.Charts.List(ctx)
}
