package domain

import (
	"strconv"
	"strings"
)

// Kind names an entity type. Its string form is the lower-cased type name,
// which is also the table the rows live in.
type Kind string

const (
	KindBusinessUnit         Kind = "businessunit"
	KindPosition             Kind = "position"
	KindBusinessPlan         Kind = "businessplan"
	KindObjective            Kind = "objective"
	KindKeyResult            Kind = "keyresult"
	KindInitiative           Kind = "initiative"
	KindProject              Kind = "project"
	KindControlAccount       Kind = "controlaccount"
	KindWorkPackage          Kind = "workpackage"
	KindTask                 Kind = "task"
	KindDependency           Kind = "dependency"
	KindRisk                 Kind = "risk"
	KindContract             Kind = "contract"
	KindMilestone            Kind = "milestone"
	KindBudget               Kind = "budget"
	KindExpense              Kind = "expense"
	KindProjectStatusHistory Kind = "projectstatushistory"
	KindResourceAssignment   Kind = "resourceassignment"
	KindIssue                Kind = "issue"
	KindChangeRequest        Kind = "changerequest"
)

var kindLabels = map[Kind]string{
	KindBusinessUnit:         "business unit",
	KindPosition:             "position",
	KindBusinessPlan:         "business plan",
	KindObjective:            "objective",
	KindKeyResult:            "key result",
	KindInitiative:           "initiative",
	KindProject:              "project",
	KindControlAccount:       "control account",
	KindWorkPackage:          "work package",
	KindTask:                 "task",
	KindDependency:           "dependency",
	KindRisk:                 "risk",
	KindContract:             "contract",
	KindMilestone:            "milestone",
	KindBudget:               "budget",
	KindExpense:              "expense",
	KindProjectStatusHistory: "status history entry",
	KindResourceAssignment:   "resource assignment",
	KindIssue:                "issue",
	KindChangeRequest:        "change request",
}

// TableName is the table that stores rows of this kind.
func (k Kind) TableName() string { return string(k) }

// Label is the human readable name used in messages.
func (k Kind) Label() string {
	if l, ok := kindLabels[k]; ok {
		return l
	}
	return string(k)
}

// NodeKey identifies one row across all kinds, e.g. "businessunit1".
func (k Kind) NodeKey(id int64) string {
	return string(k) + strconv.FormatInt(id, 10)
}

// ParseKind accepts a table name in any case.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	_, ok := kindLabels[k]
	return k, ok
}

// Entity is implemented by every persisted record.
type Entity interface {
	EntityKind() Kind
	EntityID() int64
	DisplayName() string
}

// NodeKey returns the exporter key for e.
func NodeKey(e Entity) string {
	return e.EntityKind().NodeKey(e.EntityID())
}

// TableName returns the table that stores e.
func TableName(e Entity) string {
	return e.EntityKind().TableName()
}
