package domain

import "strings"

type ProjectCategory string

const (
	CategorySubstation ProjectCategory = "substation"
	CategoryOHTL       ProjectCategory = "ohtl"
	CategoryUGCable    ProjectCategory = "ug_cable"
)

// ProjectCategories lists the accepted categories in display order.
var ProjectCategories = []ProjectCategory{CategorySubstation, CategoryOHTL, CategoryUGCable}

func (c ProjectCategory) Valid() bool {
	switch c {
	case CategorySubstation, CategoryOHTL, CategoryUGCable:
		return true
	}
	return false
}

// ParseProjectCategory accepts the stored value or the display names
// ("OHTL", "UG Cable").
func ParseProjectCategory(s string) (ProjectCategory, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, " ", "_")
	c := ProjectCategory(norm)
	if !c.Valid() {
		return "", Invalidf("project category %q must be one of substation, ohtl, ug_cable", s)
	}
	return c, nil
}

type LifecycleStage string

const (
	StageProspect   LifecycleStage = "prospect"
	StageBidding    LifecycleStage = "bidding"
	StageAwarded    LifecycleStage = "awarded"
	StageInProgress LifecycleStage = "in_progress"
	StageClosed     LifecycleStage = "closed"
)

func (s LifecycleStage) Valid() bool {
	switch s {
	case StageProspect, StageBidding, StageAwarded, StageInProgress, StageClosed:
		return true
	}
	return false
}

func ParseLifecycleStage(s string) (LifecycleStage, error) {
	st := LifecycleStage(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", Invalidf("stage %q must be one of prospect, bidding, awarded, in_progress, closed", s)
	}
	return st, nil
}

type IssueStatus string

const (
	IssueOpen       IssueStatus = "open"
	IssueInProgress IssueStatus = "in_progress"
	IssueResolved   IssueStatus = "resolved"
	IssueClosed     IssueStatus = "closed"
)

func (s IssueStatus) Valid() bool {
	switch s {
	case IssueOpen, IssueInProgress, IssueResolved, IssueClosed:
		return true
	}
	return false
}

func ParseIssueStatus(s string) (IssueStatus, error) {
	st := IssueStatus(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", Invalidf("issue status %q must be one of open, in_progress, resolved, closed", s)
	}
	return st, nil
}

type ChangeRequestStatus string

const (
	ChangeDraft     ChangeRequestStatus = "draft"
	ChangeSubmitted ChangeRequestStatus = "submitted"
	ChangeApproved  ChangeRequestStatus = "approved"
	ChangeRejected  ChangeRequestStatus = "rejected"
)

func (s ChangeRequestStatus) Valid() bool {
	switch s {
	case ChangeDraft, ChangeSubmitted, ChangeApproved, ChangeRejected:
		return true
	}
	return false
}

func ParseChangeRequestStatus(s string) (ChangeRequestStatus, error) {
	st := ChangeRequestStatus(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", Invalidf("change request status %q must be one of draft, submitted, approved, rejected", s)
	}
	return st, nil
}
