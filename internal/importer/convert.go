package importer

import (
	"errors"
	"strings"
	"time"

	"github.com/alexanderramin/pmo/internal/domain"
)

// ValidationError carries every problem Validate found. It matches
// domain.ErrInvalid.
type ValidationError struct {
	Errs []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return "import file is invalid: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return domain.ErrInvalid }

// Plan is a validated document as domain records, ordered so that every
// parent is written before its children.
type Plan struct {
	Units []*UnitPlan
}

type UnitPlan struct {
	Ref        string
	Unit       *domain.BusinessUnit
	ParentRef  string
	ManagerRef string
	Positions  []*PositionPlan
	Projects   []*domain.Project
	Plans      []*BusinessPlanPlan
}

type PositionPlan struct {
	Ref       string
	Position  *domain.Position
	ParentRef string
}

type BusinessPlanPlan struct {
	Plan       *domain.BusinessPlan
	Objectives []*domain.Objective
}

// Convert validates doc and turns it into a Plan. Ids and foreign keys are
// left for the writer to fill in from the refs.
func Convert(doc *Document) (*Plan, error) {
	if errs := Validate(doc); len(errs) > 0 {
		return nil, &ValidationError{Errs: errs}
	}

	units := make(map[string]*UnitImport, len(doc.Units))
	for i := range doc.Units {
		units[doc.Units[i].Ref] = &doc.Units[i]
	}
	order := parentsFirst(refsOf(doc.Units), func(ref string) string {
		if p := units[ref].ParentRef; p != nil {
			return *p
		}
		return ""
	})

	plan := &Plan{}
	for _, ref := range order {
		u := units[ref]
		up := &UnitPlan{
			Ref: u.Ref,
			Unit: &domain.BusinessUnit{
				Name:     strings.TrimSpace(u.Name),
				Type:     domain.CoalesceStr(u.Type, domain.DefaultBusinessUnitType),
				ParentID: u.ParentID,
			},
			ParentRef:  deref(u.ParentRef),
			ManagerRef: deref(u.ManagerRef),
		}
		up.Positions = convertPositions(u.Positions)
		for _, p := range u.Projects {
			up.Projects = append(up.Projects, convertProject(p))
		}
		for _, bp := range u.Plans {
			pp := &BusinessPlanPlan{Plan: &domain.BusinessPlan{Name: strings.TrimSpace(bp.Name)}}
			for _, o := range bp.Objectives {
				pp.Objectives = append(pp.Objectives, &domain.Objective{Name: strings.TrimSpace(o)})
			}
			up.Plans = append(up.Plans, pp)
		}
		plan.Units = append(plan.Units, up)
	}
	return plan, nil
}

func convertPositions(in []PositionImport) []*PositionPlan {
	byRef := make(map[string]*PositionImport, len(in))
	refs := make([]string, len(in))
	for i := range in {
		byRef[in[i].Ref] = &in[i]
		refs[i] = in[i].Ref
	}
	order := parentsFirst(refs, func(ref string) string { return deref(byRef[ref].ParentRef) })

	out := make([]*PositionPlan, 0, len(in))
	for _, ref := range order {
		p := byRef[ref]
		out = append(out, &PositionPlan{
			Ref: p.Ref,
			Position: &domain.Position{
				Name: strings.TrimSpace(p.Name),
				Type: domain.CoalesceStr(p.Type, domain.DefaultPositionType),
			},
			ParentRef: deref(p.ParentRef),
		})
	}
	return out
}

func convertProject(p ProjectImport) *domain.Project {
	out := &domain.Project{
		Name:            strings.TrimSpace(p.Name),
		TenderNo:        strings.TrimSpace(p.TenderNo),
		Description:     p.Description,
		ScopeOfWork:     p.ScopeOfWork,
		FundingCurrency: p.FundingCurrency,
		Budget:          p.Budget,
		BidValue:        p.BidValue,
	}
	if p.Category != "" {
		// Validated above.
		out.Category, _ = domain.ParseProjectCategory(p.Category)
	}
	if p.BidDueDate != nil {
		out.BidDueDate = mustDate(*p.BidDueDate)
	}
	return out
}

// parentsFirst orders refs so each comes after its parent, keeping file
// order otherwise. The input has no cycles.
func parentsFirst(refs []string, parentOf func(string) string) []string {
	placed := make(map[string]bool, len(refs))
	known := make(map[string]bool, len(refs))
	for _, r := range refs {
		known[r] = true
	}
	out := make([]string, 0, len(refs))
	var place func(ref string)
	place = func(ref string) {
		if placed[ref] {
			return
		}
		if p := parentOf(ref); p != "" && known[p] {
			place(p)
		}
		placed[ref] = true
		out = append(out, ref)
	}
	for _, r := range refs {
		place(r)
	}
	return out
}

func refsOf(units []UnitImport) []string {
	refs := make([]string, len(units))
	for i, u := range units {
		refs[i] = u.Ref
	}
	return refs
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func mustDate(s string) time.Time {
	t, err := domain.ParseDate(s)
	if err != nil {
		panic(errors.New("importer: date passed validation but does not parse: " + s))
	}
	return t
}
