package domain

import (
	"fmt"
	"time"
)

// Ref points at one row of a given kind.
type Ref struct {
	Kind Kind
	ID   int64
}

func (r Ref) NodeKey() string { return r.Kind.NodeKey(r.ID) }

func (r Ref) String() string { return fmt.Sprintf("%s %d", r.Kind.Label(), r.ID) }

// EffectiveParent picks the most specific attach point of a satellite
// record: task, then work package, then the owning project. It is used for
// display and traversal only; deletes never consult it.
func EffectiveParent(projectID int64, workPackageID, taskID *int64) Ref {
	switch {
	case taskID != nil:
		return Ref{Kind: KindTask, ID: *taskID}
	case workPackageID != nil:
		return Ref{Kind: KindWorkPackage, ID: *workPackageID}
	default:
		return Ref{Kind: KindProject, ID: projectID}
	}
}

// ResourceAssignment books a position onto a project, optionally narrowed
// to a work package or task.
type ResourceAssignment struct {
	ID                int64
	Name              string
	ProjectID         int64
	PositionID        int64
	WorkPackageID     *int64
	TaskID            *int64
	Role              string
	AllocationPercent float64
	StartDate         time.Time
	EndDate           *time.Time
}

const DefaultAllocationPercent = 100.0

func (a *ResourceAssignment) EntityKind() Kind    { return KindResourceAssignment }
func (a *ResourceAssignment) EntityID() int64     { return a.ID }
func (a *ResourceAssignment) DisplayName() string { return a.Name }

func (a *ResourceAssignment) EffectiveParent() Ref {
	return EffectiveParent(a.ProjectID, a.WorkPackageID, a.TaskID)
}

type Issue struct {
	ID            int64
	Name          string
	ProjectID     int64
	WorkPackageID *int64
	TaskID        *int64
	OwnerID       *int64
	Status        IssueStatus
	Severity      string
	OpenedOn      time.Time
	ClosedOn      *time.Time
	Description   *string
}

const DefaultIssueSeverity = "medium"

func (i *Issue) EntityKind() Kind    { return KindIssue }
func (i *Issue) EntityID() int64     { return i.ID }
func (i *Issue) DisplayName() string { return i.Name }

func (i *Issue) EffectiveParent() Ref {
	return EffectiveParent(i.ProjectID, i.WorkPackageID, i.TaskID)
}

// ChangeRequest has no task attach point.
type ChangeRequest struct {
	ID            int64
	Name          string
	ProjectID     int64
	WorkPackageID *int64
	RequestedByID *int64
	Status        ChangeRequestStatus
	SubmittedOn   *time.Time
	ApprovedOn    *time.Time
	Description   *string
	ImpactSummary *string
}

func (c *ChangeRequest) EntityKind() Kind    { return KindChangeRequest }
func (c *ChangeRequest) EntityID() int64     { return c.ID }
func (c *ChangeRequest) DisplayName() string { return c.Name }

func (c *ChangeRequest) EffectiveParent() Ref {
	return EffectiveParent(c.ProjectID, c.WorkPackageID, nil)
}
