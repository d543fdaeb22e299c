package service

import (
	"database/sql"

	"github.com/alexanderramin/pmo/internal/db"
	"github.com/alexanderramin/pmo/internal/domain"
)

// Services is every use-case service built over one database handle. The
// REST server and the CLI both start from it.
type Services struct {
	BusinessUnits       BusinessUnitService
	Positions           PositionService
	Plans               PlanService
	Projects            ProjectService
	WorkBreakdown       WorkBreakdownService
	Registers           RegisterService
	Issues              IssueService
	ChangeRequests      ChangeRequestService
	ResourceAssignments ResourceAssignmentService
	Hierarchy           HierarchyService
	Graph               GraphService
	Seed                SeedService
	Import              ImportService
}

// New wires the services. A nil clock means the system clock.
func New(database *sql.DB, clock domain.Clock, observers ...UseCaseObserver) *Services {
	return NewWithUoW(database, db.NewSQLiteUnitOfWork(database), clock, observers...)
}

// NewWithUoW is New with an explicit unit of work, which tests use to
// inject write failures.
func NewWithUoW(database *sql.DB, uow db.UnitOfWork, clock domain.Clock, observers ...UseCaseObserver) *Services {
	if clock == nil {
		clock = domain.SystemClock
	}
	return &Services{
		BusinessUnits:       NewBusinessUnitService(database, uow, observers...),
		Positions:           NewPositionService(database, uow, observers...),
		Plans:               NewPlanService(database, observers...),
		Projects:            NewProjectService(database, uow, clock, observers...),
		WorkBreakdown:       NewWorkBreakdownService(database, uow, observers...),
		Registers:           NewRegisterService(uow, clock, observers...),
		Issues:              NewIssueService(database, uow, clock, observers...),
		ChangeRequests:      NewChangeRequestService(database, uow, observers...),
		ResourceAssignments: NewResourceAssignmentService(database, uow, clock, observers...),
		Hierarchy:           NewHierarchyService(database),
		Graph:               NewGraphService(database, observers...),
		Seed:                NewSeedService(uow, clock, observers...),
		Import:              NewImportService(uow, clock, observers...),
	}
}
