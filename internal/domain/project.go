package domain

import (
	"strings"
	"time"
)

// Project is a tendered piece of work owned by a business unit.
type Project struct {
	ID                 int64
	Name               string
	BusinessUnitID     int64
	Description        string
	TenderNo           string
	ScopeOfWork        string
	Category           ProjectCategory
	FundingCurrency    string
	BidIssueDate       time.Time
	TenderPurchaseDate time.Time
	TenderPurchaseFee  float64
	BidDueDate         time.Time
	CompletionPeriodM  int
	BidValidityD       int
	IncludeVAT         bool
	Budget             float64
	BidValue           float64
	PerfBondP          float64
	AdvancePmtP        float64
}

const (
	DefaultFundingCurrency   = "SAR"
	DefaultCompletionPeriodM = 12
	DefaultBidValidityD      = 90
)

func (p *Project) EntityKind() Kind    { return KindProject }
func (p *Project) EntityID() int64     { return p.ID }
func (p *Project) DisplayName() string { return p.Name }

// ApplyDefaults fills the zero-valued fields a new project is allowed to
// omit. Dates default to today.
func (p *Project) ApplyDefaults(today time.Time) {
	if p.Category == "" {
		p.Category = CategorySubstation
	}
	p.FundingCurrency = CoalesceStr(p.FundingCurrency, DefaultFundingCurrency)
	if p.CompletionPeriodM == 0 {
		p.CompletionPeriodM = DefaultCompletionPeriodM
	}
	if p.BidValidityD == 0 {
		p.BidValidityD = DefaultBidValidityD
	}
	for _, d := range []*time.Time{&p.BidIssueDate, &p.TenderPurchaseDate, &p.BidDueDate} {
		if d.IsZero() {
			*d = today
		}
	}
}

// Validate checks field-level rules. Owner existence is checked by the caller.
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return Invalidf("project name is required")
	}
	if strings.TrimSpace(p.TenderNo) == "" {
		return Invalidf("tender number is required")
	}
	if !p.Category.Valid() {
		return Invalidf("project category %q is not recognised", p.Category)
	}
	if p.CompletionPeriodM < 0 || p.BidValidityD < 0 {
		return Invalidf("completion period and bid validity must not be negative")
	}
	for _, pct := range []float64{p.PerfBondP, p.AdvancePmtP} {
		if pct < 0 || pct > 100 {
			return Invalidf("percentages must be between 0 and 100")
		}
	}
	return nil
}

// ControlAccount integrates budget, schedule and scope above work packages.
type ControlAccount struct {
	ID        int64
	Name      string
	ProjectID int64
	Budget    float64
}

func (c *ControlAccount) EntityKind() Kind    { return KindControlAccount }
func (c *ControlAccount) EntityID() int64     { return c.ID }
func (c *ControlAccount) DisplayName() string { return c.Name }

// WorkPackage is the lowest schedulable and budgetable unit of work.
type WorkPackage struct {
	ID               int64
	Name             string
	ControlAccountID int64
	IsPlanned        bool
	Budget           float64
	StartDate        *time.Time
	EndDate          *time.Time
}

func (w *WorkPackage) EntityKind() Kind    { return KindWorkPackage }
func (w *WorkPackage) EntityID() int64     { return w.ID }
func (w *WorkPackage) DisplayName() string { return w.Name }

type Task struct {
	ID            int64
	Name          string
	WorkPackageID int64
	StartDate     *time.Time
	EndDate       *time.Time
	IsComplete    bool
}

func (t *Task) EntityKind() Kind    { return KindTask }
func (t *Task) EntityID() int64     { return t.ID }
func (t *Task) DisplayName() string { return t.Name }

// Dependency is a finish-to-start edge between two tasks. It belongs to
// neither task and disappears with either.
type Dependency struct {
	ID            int64
	PredecessorID int64
	SuccessorID   int64
}

type Risk struct {
	ID        int64
	Name      string
	ProjectID int64
}

func (r *Risk) EntityKind() Kind    { return KindRisk }
func (r *Risk) EntityID() int64     { return r.ID }
func (r *Risk) DisplayName() string { return r.Name }

type Contract struct {
	ID        int64
	Name      string
	ProjectID int64
	Value     float64
	Status    string
}

func (c *Contract) EntityKind() Kind    { return KindContract }
func (c *Contract) EntityID() int64     { return c.ID }
func (c *Contract) DisplayName() string { return c.Name }

type Milestone struct {
	ID         int64
	Name       string
	ProjectID  int64
	DueDate    *time.Time
	IsComplete bool
}

func (m *Milestone) EntityKind() Kind    { return KindMilestone }
func (m *Milestone) EntityID() int64     { return m.ID }
func (m *Milestone) DisplayName() string { return m.Name }

// Budget is a planned/actual line, optionally narrowed to a work package.
type Budget struct {
	ID            int64
	Name          string
	ProjectID     int64
	WorkPackageID *int64
	Planned       float64
	Actual        float64
}

func (b *Budget) EntityKind() Kind    { return KindBudget }
func (b *Budget) EntityID() int64     { return b.ID }
func (b *Budget) DisplayName() string { return b.Name }

type Expense struct {
	ID            int64
	Name          string
	ProjectID     int64
	WorkPackageID *int64
	Amount        float64
	Date          time.Time
	Description   *string
}

func (e *Expense) EntityKind() Kind    { return KindExpense }
func (e *Expense) EntityID() int64     { return e.ID }
func (e *Expense) DisplayName() string { return e.Name }

// ProjectStatusHistory is one entry of a project's append-only stage log.
type ProjectStatusHistory struct {
	ID            int64
	Name          string
	ProjectID     int64
	Stage         LifecycleStage
	EffectiveDate time.Time
	Notes         *string
}

func (h *ProjectStatusHistory) EntityKind() Kind    { return KindProjectStatusHistory }
func (h *ProjectStatusHistory) EntityID() int64     { return h.ID }
func (h *ProjectStatusHistory) DisplayName() string { return h.Name }
