package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/pmo/internal/domain"
)

var tenderCounter atomic.Int64

// Today is the pinned calendar day fixtures and test clocks use.
var Today = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

// FixedClock returns a clock that always reports Today.
func FixedClock() domain.Clock {
	return func() time.Time { return Today }
}

// Business unit options
type BusinessUnitOption func(*domain.BusinessUnit)

func WithUnitParent(id int64) BusinessUnitOption {
	return func(b *domain.BusinessUnit) { b.ParentID = &id }
}

func WithManager(positionID int64) BusinessUnitOption {
	return func(b *domain.BusinessUnit) { b.ManagerID = &positionID }
}

func NewTestBusinessUnit(name string, opts ...BusinessUnitOption) *domain.BusinessUnit {
	b := &domain.BusinessUnit{Name: name, Type: domain.DefaultBusinessUnitType}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Position options
type PositionOption func(*domain.Position)

func WithPositionParent(id int64) PositionOption {
	return func(p *domain.Position) { p.ParentID = &id }
}

func NewTestPosition(businessUnitID int64, name string, opts ...PositionOption) *domain.Position {
	p := &domain.Position{Name: name, Type: domain.DefaultPositionType, BusinessUnitID: businessUnitID}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Project options
type ProjectOption func(*domain.Project)

func WithTenderNo(no string) ProjectOption {
	return func(p *domain.Project) { p.TenderNo = no }
}

func WithCategory(c domain.ProjectCategory) ProjectOption {
	return func(p *domain.Project) { p.Category = c }
}

func WithBudget(budget, bidValue float64) ProjectOption {
	return func(p *domain.Project) {
		p.Budget = budget
		p.BidValue = bidValue
	}
}

// NewTestProject builds a project with a unique tender number and every
// default applied.
func NewTestProject(businessUnitID int64, name string, opts ...ProjectOption) *domain.Project {
	p := &domain.Project{
		Name:           name,
		BusinessUnitID: businessUnitID,
		Description:    name + " description",
		TenderNo:       fmt.Sprintf("TND-%04d", tenderCounter.Add(1)),
		ScopeOfWork:    "scope",
	}
	for _, opt := range opts {
		opt(p)
	}
	p.ApplyDefaults(Today)
	return p
}

func NewTestControlAccount(projectID int64, name string) *domain.ControlAccount {
	return &domain.ControlAccount{Name: name, ProjectID: projectID, Budget: 1000}
}

func NewTestWorkPackage(controlAccountID int64, name string) *domain.WorkPackage {
	start := Today
	return &domain.WorkPackage{Name: name, ControlAccountID: controlAccountID, Budget: 500, StartDate: &start}
}

func NewTestTask(workPackageID int64, name string) *domain.Task {
	return &domain.Task{Name: name, WorkPackageID: workPackageID}
}

// Attachment options apply to issues, change requests and assignments.
type AttachOption func(wp, task **int64)

func AtWorkPackage(id int64) AttachOption {
	return func(wp, _ **int64) { *wp = &id }
}

func AtTask(id int64) AttachOption {
	return func(_, task **int64) { *task = &id }
}

func NewTestIssue(projectID int64, name string, opts ...AttachOption) *domain.Issue {
	i := &domain.Issue{
		Name:      name,
		ProjectID: projectID,
		Status:    domain.IssueOpen,
		Severity:  domain.DefaultIssueSeverity,
		OpenedOn:  Today,
	}
	for _, opt := range opts {
		opt(&i.WorkPackageID, &i.TaskID)
	}
	return i
}

func NewTestChangeRequest(projectID int64, name string, opts ...AttachOption) *domain.ChangeRequest {
	c := &domain.ChangeRequest{Name: name, ProjectID: projectID, Status: domain.ChangeDraft}
	var ignoredTask *int64
	for _, opt := range opts {
		opt(&c.WorkPackageID, &ignoredTask)
	}
	return c
}

func NewTestResourceAssignment(projectID, positionID int64, name string, opts ...AttachOption) *domain.ResourceAssignment {
	a := &domain.ResourceAssignment{
		Name:              name,
		ProjectID:         projectID,
		PositionID:        positionID,
		Role:              "Engineer",
		AllocationPercent: domain.DefaultAllocationPercent,
		StartDate:         Today,
	}
	for _, opt := range opts {
		opt(&a.WorkPackageID, &a.TaskID)
	}
	return a
}
