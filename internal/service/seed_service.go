package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/pmo/internal/db"
	"github.com/alexanderramin/pmo/internal/domain"
	"github.com/alexanderramin/pmo/internal/repository"
)

// SampleTenderPrefix starts every seeded tender number. The unit id is
// appended so repeated seeds do not collide on the unique tender column.
const SampleTenderPrefix = "ACME-RYD-001"

type seedService struct {
	uow      db.UnitOfWork
	clock    domain.Clock
	observer UseCaseObserver
}

func NewSeedService(uow db.UnitOfWork, clock domain.Clock, observers ...UseCaseObserver) SeedService {
	if clock == nil {
		clock = domain.SystemClock
	}
	return &seedService{uow: uow, clock: clock, observer: useCaseObserverOrNoop(observers)}
}

// CreateSampleData writes one coherent demo unit: an org chart, a business
// plan chain and a project with one record of each satellite type. All of
// it commits together or not at all.
func (s *seedService) CreateSampleData(ctx context.Context) (out *SampleData, err error) {
	defer track(ctx, s.observer, "seed.create_sample_data", nil)(&err)

	today := domain.DateOf(s.clock())
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		st := repository.NewStore(tx)
		data, err := seed(ctx, st, today)
		if err != nil {
			return err
		}
		out = data
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("creating sample data: %w", err)
	}
	return out, nil
}

func seed(ctx context.Context, st *repository.Store, today time.Time) (*SampleData, error) {
	bu := &domain.BusinessUnit{Name: "Acme Power", Type: domain.DefaultBusinessUnitType}
	if err := st.BusinessUnits.Create(ctx, bu); err != nil {
		return nil, err
	}

	ceo := &domain.Position{Name: "Chief Executive Officer", Type: domain.DefaultPositionType, BusinessUnitID: bu.ID}
	if err := st.Positions.Create(ctx, ceo); err != nil {
		return nil, err
	}
	coo := &domain.Position{Name: "Chief Operations Officer", Type: domain.DefaultPositionType, BusinessUnitID: bu.ID, ParentID: &ceo.ID}
	if err := st.Positions.Create(ctx, coo); err != nil {
		return nil, err
	}
	pm := &domain.Position{Name: "Project Manager", Type: domain.DefaultPositionType, BusinessUnitID: bu.ID, ParentID: &coo.ID}
	if err := st.Positions.Create(ctx, pm); err != nil {
		return nil, err
	}

	if err := seedPlan(ctx, st, bu.ID); err != nil {
		return nil, err
	}

	project := &domain.Project{
		Name:               "Riyadh Substation Upgrade",
		BusinessUnitID:     bu.ID,
		Description:        "Modernize control systems and capacity",
		TenderNo:           fmt.Sprintf("%s-%d", SampleTenderPrefix, bu.ID),
		ScopeOfWork:        "Upgrade transformers and SCADA integration",
		Category:           domain.CategorySubstation,
		FundingCurrency:    domain.DefaultFundingCurrency,
		BidIssueDate:       today,
		TenderPurchaseDate: today,
		TenderPurchaseFee:  1250,
		BidDueDate:         today,
		CompletionPeriodM:  14,
		BidValidityD:       120,
		IncludeVAT:         true,
		Budget:             2_500_000,
		BidValue:           2_450_000,
		PerfBondP:          10,
		AdvancePmtP:        15,
	}
	if err := st.Projects.Create(ctx, project); err != nil {
		return nil, err
	}

	ca := &domain.ControlAccount{Name: "Mobilization", ProjectID: project.ID, Budget: 500_000}
	if err := st.WorkBreakdown.CreateControlAccount(ctx, ca); err != nil {
		return nil, err
	}
	wp := &domain.WorkPackage{
		Name:             "Site Preparation",
		ControlAccountID: ca.ID,
		Budget:           150_000,
		StartDate:        &today,
		EndDate:          &today,
	}
	if err := st.WorkBreakdown.CreateWorkPackage(ctx, wp); err != nil {
		return nil, err
	}

	if err := st.Registers.CreateRisk(ctx, &domain.Risk{Name: "Permit delays", ProjectID: project.ID}); err != nil {
		return nil, err
	}
	notes := "Client confirmed PO"
	if err := st.Registers.AppendStatus(ctx, &domain.ProjectStatusHistory{
		Name:          "Awarded",
		ProjectID:     project.ID,
		Stage:         domain.StageAwarded,
		EffectiveDate: today,
		Notes:         &notes,
	}); err != nil {
		return nil, err
	}

	if err := st.Assignments.Create(ctx, &domain.ResourceAssignment{
		Name:              "PM Allocation",
		ProjectID:         project.ID,
		PositionID:        pm.ID,
		WorkPackageID:     &wp.ID,
		Role:              "Lead PM",
		AllocationPercent: 80,
		StartDate:         today,
	}); err != nil {
		return nil, err
	}

	issueDesc := "Vendor contracts still under review"
	if err := st.Issues.Create(ctx, &domain.Issue{
		Name:          "Vendor kickoff delay",
		ProjectID:     project.ID,
		WorkPackageID: &wp.ID,
		OwnerID:       &pm.ID,
		Status:        domain.IssueOpen,
		Severity:      domain.DefaultIssueSeverity,
		OpenedOn:      today,
		Description:   &issueDesc,
	}); err != nil {
		return nil, err
	}

	crDesc := "Include dual power feeds"
	impact := "Schedule +3 weeks; budget +7%"
	if err := st.ChangeRequests.Create(ctx, &domain.ChangeRequest{
		Name:          "Add redundancy",
		ProjectID:     project.ID,
		WorkPackageID: &wp.ID,
		RequestedByID: &coo.ID,
		Status:        domain.ChangeSubmitted,
		SubmittedOn:   &today,
		Description:   &crDesc,
		ImpactSummary: &impact,
	}); err != nil {
		return nil, err
	}

	bu.ManagerID = &ceo.ID
	if err := st.BusinessUnits.Update(ctx, bu); err != nil {
		return nil, err
	}

	return &SampleData{BusinessUnit: bu, CEO: ceo, COO: coo, PM: pm, Project: project, WorkPackage: wp}, nil
}

func seedPlan(ctx context.Context, st *repository.Store, businessUnitID int64) error {
	bp := &domain.BusinessPlan{Name: "2025 Growth Plan", BusinessUnitID: businessUnitID}
	if err := st.Plans.CreatePlan(ctx, bp); err != nil {
		return err
	}
	obj := &domain.Objective{Name: "Expand regional footprint", BusinessPlanID: bp.ID}
	if err := st.Plans.CreateObjective(ctx, obj); err != nil {
		return err
	}
	kr := &domain.KeyResult{Name: "Launch 3 new substations", ObjectiveID: obj.ID}
	if err := st.Plans.CreateKeyResult(ctx, kr); err != nil {
		return err
	}
	return st.Plans.CreateInitiative(ctx, &domain.Initiative{Name: "Secure regulatory approvals", KeyResultID: kr.ID})
}
