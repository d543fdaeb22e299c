package repository

import "github.com/alexanderramin/pmo/internal/db"

// Store bundles one repository per aggregate over a single connection.
// Build it from *sql.DB for plain reads, or from the tx a UnitOfWork hands
// out so every write in a use case commits together.
type Store struct {
	BusinessUnits  BusinessUnitRepo
	Positions      PositionRepo
	Plans          PlanRepo
	Projects       ProjectRepo
	WorkBreakdown  WorkBreakdownRepo
	Registers      RegisterRepo
	Assignments    ResourceAssignmentRepo
	Issues         IssueRepo
	ChangeRequests ChangeRequestRepo
}

func NewStore(conn db.DBTX) *Store {
	return &Store{
		BusinessUnits:  NewSQLiteBusinessUnitRepo(conn),
		Positions:      NewSQLitePositionRepo(conn),
		Plans:          NewSQLitePlanRepo(conn),
		Projects:       NewSQLiteProjectRepo(conn),
		WorkBreakdown:  NewSQLiteWorkBreakdownRepo(conn),
		Registers:      NewSQLiteRegisterRepo(conn),
		Assignments:    NewSQLiteResourceAssignmentRepo(conn),
		Issues:         NewSQLiteIssueRepo(conn),
		ChangeRequests: NewSQLiteChangeRequestRepo(conn),
	}
}
