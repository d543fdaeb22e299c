package service

import (
	"context"
	"strings"

	"github.com/alexanderramin/pmo/internal/db"
	"github.com/alexanderramin/pmo/internal/domain"
	"github.com/alexanderramin/pmo/internal/repository"
)

type projectService struct {
	store    *repository.Store
	uow      db.UnitOfWork
	clock    domain.Clock
	observer UseCaseObserver
}

func NewProjectService(conn db.DBTX, uow db.UnitOfWork, clock domain.Clock, observers ...UseCaseObserver) ProjectService {
	if clock == nil {
		clock = domain.SystemClock
	}
	return &projectService{
		store:    repository.NewStore(conn),
		uow:      uow,
		clock:    clock,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Create stores a new project under an existing unit. A tender number that
// is already taken fails in the store, not here.
func (s *projectService) Create(ctx context.Context, p *domain.Project) (err error) {
	defer track(ctx, s.observer, "project.create", map[string]any{"business_unit_id": p.BusinessUnitID})(&err)

	p.ApplyDefaults(domain.DateOf(s.clock()))
	if err := p.Validate(); err != nil {
		return err
	}
	if _, err := s.store.BusinessUnits.GetByID(ctx, p.BusinessUnitID); err != nil {
		return err
	}
	return s.store.Projects.Create(ctx, p)
}

func (s *projectService) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	return s.store.Projects.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context, businessUnitID *int64) ([]*domain.Project, error) {
	return s.store.Projects.List(ctx, businessUnitID)
}

func (s *projectService) Update(ctx context.Context, id int64, patch ProjectPatch) (p *domain.Project, err error) {
	defer track(ctx, s.observer, "project.update", map[string]any{"id": id})(&err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		st := repository.NewStore(tx)
		cur, err := st.Projects.GetByID(ctx, id)
		if err != nil {
			return err
		}
		patch.apply(cur)
		if err := cur.Validate(); err != nil {
			return err
		}
		if patch.BusinessUnitID.Set {
			if _, err := st.BusinessUnits.GetByID(ctx, cur.BusinessUnitID); err != nil {
				return err
			}
		}
		if err := st.Projects.Update(ctx, cur); err != nil {
			return err
		}
		p = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (patch ProjectPatch) apply(p *domain.Project) {
	patch.Name.applyTo(&p.Name)
	patch.BusinessUnitID.applyTo(&p.BusinessUnitID)
	patch.Description.applyTo(&p.Description)
	patch.TenderNo.applyTo(&p.TenderNo)
	patch.ScopeOfWork.applyTo(&p.ScopeOfWork)
	patch.Category.applyTo(&p.Category)
	patch.FundingCurrency.applyTo(&p.FundingCurrency)
	patch.BidIssueDate.applyTo(&p.BidIssueDate)
	patch.TenderPurchaseDate.applyTo(&p.TenderPurchaseDate)
	patch.TenderPurchaseFee.applyTo(&p.TenderPurchaseFee)
	patch.BidDueDate.applyTo(&p.BidDueDate)
	patch.CompletionPeriodM.applyTo(&p.CompletionPeriodM)
	patch.BidValidityD.applyTo(&p.BidValidityD)
	patch.IncludeVAT.applyTo(&p.IncludeVAT)
	patch.Budget.applyTo(&p.Budget)
	patch.BidValue.applyTo(&p.BidValue)
	patch.PerfBondP.applyTo(&p.PerfBondP)
	patch.AdvancePmtP.applyTo(&p.AdvancePmtP)
}

// Delete removes the project and every record it owns.
func (s *projectService) Delete(ctx context.Context, id int64) (err error) {
	defer track(ctx, s.observer, "project.delete", map[string]any{"id": id})(&err)
	return s.store.Projects.Delete(ctx, id)
}

func (s *projectService) Detail(ctx context.Context, id int64) (*ProjectDetail, error) {
	p, err := s.store.Projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := &ProjectDetail{Project: p}
	if d.StatusHistory, err = s.store.Registers.ListStatusHistory(ctx, id); err != nil {
		return nil, err
	}
	if d.ResourceAssignments, err = s.store.Assignments.ListByProject(ctx, id); err != nil {
		return nil, err
	}
	if d.Issues, err = s.store.Issues.ListByProject(ctx, id); err != nil {
		return nil, err
	}
	if d.ChangeRequests, err = s.store.ChangeRequests.ListByProject(ctx, id); err != nil {
		return nil, err
	}
	return d, nil
}

// AppendStatus adds an entry to the project's stage log. The entry is
// named after its stage and dated today unless given.
func (s *projectService) AppendStatus(ctx context.Context, h *domain.ProjectStatusHistory) (err error) {
	defer track(ctx, s.observer, "project.append_status", map[string]any{"project_id": h.ProjectID, "stage": h.Stage})(&err)

	if !h.Stage.Valid() {
		return domain.Invalidf("stage %q is not recognised", h.Stage)
	}
	if strings.TrimSpace(h.Name) == "" {
		h.Name = StageName(h.Stage)
	}
	if h.EffectiveDate.IsZero() {
		h.EffectiveDate = domain.DateOf(s.clock())
	}
	if err := requireProject(ctx, s.store, h.ProjectID); err != nil {
		return err
	}
	return s.store.Registers.AppendStatus(ctx, h)
}

func (s *projectService) StatusHistory(ctx context.Context, projectID int64) ([]*domain.ProjectStatusHistory, error) {
	if err := requireProject(ctx, s.store, projectID); err != nil {
		return nil, err
	}
	return s.store.Registers.ListStatusHistory(ctx, projectID)
}

// StageName renders a stage for display, e.g. "in_progress" as
// "In Progress".
func StageName(stage domain.LifecycleStage) string {
	words := strings.Split(string(stage), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
