package graph

import "github.com/alexanderramin/pmo/internal/domain"

// Style carries the graphviz node attributes for one entity kind.
type Style struct {
	Shape     string `json:"shape" yaml:"shape"`
	Style     string `json:"style,omitempty" yaml:"style,omitempty"`
	FillColor string `json:"fillcolor,omitempty" yaml:"fillcolor,omitempty"`
}

var styles = map[domain.Kind]Style{
	domain.KindBusinessUnit:         {Shape: "circle", FillColor: "grey"},
	domain.KindPosition:             {Shape: "box", Style: "filled", FillColor: "honeydew"},
	domain.KindBusinessPlan:         {Shape: "box", Style: "filled", FillColor: "lightyellow"},
	domain.KindObjective:            {Shape: "box", Style: "rounded,filled", FillColor: "aqua"},
	domain.KindKeyResult:            {Shape: "box", Style: "rounded,filled", FillColor: "gainsboro"},
	domain.KindInitiative:           {Shape: "box", Style: "rounded,filled", FillColor: "aliceblue"},
	domain.KindProject:              {Shape: "box", Style: "filled", FillColor: "lightgreen"},
	domain.KindControlAccount:       {Shape: "box", Style: "filled", FillColor: "lightpink"},
	domain.KindWorkPackage:          {Shape: "note", Style: "filled", FillColor: "darkseagreen1"},
	domain.KindTask:                 {Shape: "ellipse", Style: "filled", FillColor: "seashell"},
	domain.KindRisk:                 {Shape: "parallelogram", Style: "filled", FillColor: "cornflowerblue"},
	domain.KindContract:             {Shape: "box", Style: "filled", FillColor: "lightgoldenrodyellow"},
	domain.KindMilestone:            {Shape: "diamond", Style: "filled", FillColor: "khaki"},
	domain.KindBudget:               {Shape: "box", Style: "filled", FillColor: "lightcyan"},
	domain.KindExpense:              {Shape: "box", Style: "filled", FillColor: "lavender"},
	domain.KindProjectStatusHistory: {Shape: "box", Style: "filled", FillColor: "lightsteelblue"},
	domain.KindResourceAssignment:   {Shape: "box", Style: "filled", FillColor: "mintcream"},
	domain.KindIssue:                {Shape: "box", Style: "filled", FillColor: "salmon"},
	domain.KindChangeRequest:        {Shape: "box", Style: "filled", FillColor: "lightcoral"},
}

// StyleFor returns the node style of kind, or a plain box for kinds
// without one.
func StyleFor(kind domain.Kind) Style {
	if s, ok := styles[kind]; ok {
		return s
	}
	return Style{Shape: "box"}
}
