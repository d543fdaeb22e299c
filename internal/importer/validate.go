package importer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/pmo/internal/domain"
)

// Validate checks the document before conversion and returns every
// problem found, not just the first.
func Validate(doc *Document) []error {
	var errs []error
	if len(doc.Units) == 0 {
		return []error{fmt.Errorf("units: at least one business unit is required")}
	}

	unitRefs := make(map[string]bool, len(doc.Units))
	for i, u := range doc.Units {
		field := fmt.Sprintf("units[%d]", i)
		if u.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", field))
		} else if unitRefs[u.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", field, u.Ref))
		}
		unitRefs[u.Ref] = true
	}

	positionRefs := make(map[string]bool)
	tenders := make(map[string]string)
	for i, u := range doc.Units {
		field := fmt.Sprintf("units[%d]", i)
		if strings.TrimSpace(u.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", field))
		}
		if u.ParentRef != nil && u.ParentID != nil {
			errs = append(errs, fmt.Errorf("%s: parent_ref and parent_id are mutually exclusive", field))
		}
		if u.ParentRef != nil && !unitRefs[*u.ParentRef] {
			errs = append(errs, fmt.Errorf("%s.parent_ref: unknown unit %q", field, *u.ParentRef))
		}
		if u.ParentID != nil && *u.ParentID <= 0 {
			errs = append(errs, fmt.Errorf("%s.parent_id must be positive", field))
		}

		errs = append(errs, validatePositions(field, &u, positionRefs)...)
		errs = append(errs, validateProjects(field, u.Projects, tenders)...)
		for j, p := range u.Plans {
			if strings.TrimSpace(p.Name) == "" {
				errs = append(errs, fmt.Errorf("%s.plans[%d].name is required", field, j))
			}
			for k, o := range p.Objectives {
				if strings.TrimSpace(o) == "" {
					errs = append(errs, fmt.Errorf("%s.plans[%d].objectives[%d] is empty", field, j, k))
				}
			}
		}
	}

	parents := make(map[string]string)
	for _, u := range doc.Units {
		if u.ParentRef != nil {
			parents[u.Ref] = *u.ParentRef
		}
	}
	errs = append(errs, detectCycles("unit", parents)...)
	return errs
}

func validatePositions(field string, u *UnitImport, seen map[string]bool) []error {
	var errs []error
	local := make(map[string]bool, len(u.Positions))
	for _, p := range u.Positions {
		local[p.Ref] = true
	}

	parents := make(map[string]string)
	for j, p := range u.Positions {
		pf := fmt.Sprintf("%s.positions[%d]", field, j)
		if p.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", pf))
		} else if seen[p.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", pf, p.Ref))
		}
		seen[p.Ref] = true
		if strings.TrimSpace(p.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", pf))
		}
		if p.ParentRef != nil {
			if !local[*p.ParentRef] {
				errs = append(errs, fmt.Errorf("%s.parent_ref: %q is not a position of this unit", pf, *p.ParentRef))
			} else {
				parents[p.Ref] = *p.ParentRef
			}
		}
	}
	if u.ManagerRef != nil && !local[*u.ManagerRef] {
		errs = append(errs, fmt.Errorf("%s.manager_ref: %q is not a position of this unit", field, *u.ManagerRef))
	}
	return append(errs, detectCycles("position", parents)...)
}

func validateProjects(field string, projects []ProjectImport, tenders map[string]string) []error {
	var errs []error
	for j, p := range projects {
		pf := fmt.Sprintf("%s.projects[%d]", field, j)
		if strings.TrimSpace(p.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", pf))
		}
		if strings.TrimSpace(p.TenderNo) == "" {
			errs = append(errs, fmt.Errorf("%s.tender_no is required", pf))
		} else if prev, dup := tenders[p.TenderNo]; dup {
			errs = append(errs, fmt.Errorf("%s.tender_no: %q already used by %s", pf, p.TenderNo, prev))
		} else {
			tenders[p.TenderNo] = pf
		}
		if p.Category != "" {
			if _, err := domain.ParseProjectCategory(p.Category); err != nil {
				errs = append(errs, fmt.Errorf("%s.category: %v", pf, err))
			}
		}
		if p.Budget < 0 || p.BidValue < 0 {
			errs = append(errs, fmt.Errorf("%s: budget and bid_value must not be negative", pf))
		}
		if p.BidDueDate != nil {
			if _, err := domain.ParseDate(*p.BidDueDate); err != nil {
				errs = append(errs, fmt.Errorf("%s.bid_due_date: invalid date %q (expected YYYY-MM-DD)", pf, *p.BidDueDate))
			}
		}
	}
	return errs
}

// detectCycles walks child -> parent links and reports each loop once.
func detectCycles(kind string, parents map[string]string) []error {
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int)
	var errs []error

	var visit func(ref string)
	visit = func(ref string) {
		color[ref] = gray
		if parent, ok := parents[ref]; ok {
			switch color[parent] {
			case gray:
				errs = append(errs, fmt.Errorf("%s parent refs form a cycle through %q and %q", kind, ref, parent))
			case white:
				visit(parent)
			}
		}
		color[ref] = black
	}

	refs := make([]string, 0, len(parents))
	for ref := range parents {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	for _, ref := range refs {
		if color[ref] == white {
			visit(ref)
		}
	}
	return errs
}
