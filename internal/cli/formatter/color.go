package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/pmo/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StagePill renders a project lifecycle stage with a colored marker.
func StagePill(stage domain.LifecycleStage) string {
	switch stage {
	case domain.StageProspect:
		return StyleBlue.Render("○ Prospect")
	case domain.StageBidding:
		return StyleYellow.Render("◐ Bidding")
	case domain.StageAwarded:
		return StyleGreen.Render("● Awarded")
	case domain.StageInProgress:
		return StyleGreen.Render("▶ In Progress")
	case domain.StageClosed:
		return StyleDim.Render("✔ Closed")
	default:
		return StyleDim.Render(string(stage))
	}
}

func IssueStatusPill(status domain.IssueStatus) string {
	switch status {
	case domain.IssueOpen:
		return StyleYellow.Render("● Open")
	case domain.IssueInProgress:
		return StyleBlue.Render("▶ In Progress")
	case domain.IssueResolved:
		return StyleGreen.Render("✔ Resolved")
	case domain.IssueClosed:
		return StyleDim.Render("✖ Closed")
	default:
		return StyleDim.Render(string(status))
	}
}

func ChangeRequestStatusPill(status domain.ChangeRequestStatus) string {
	switch status {
	case domain.ChangeDraft:
		return StyleDim.Render("◌ Draft")
	case domain.ChangeSubmitted:
		return StyleYellow.Render("○ Submitted")
	case domain.ChangeApproved:
		return StyleGreen.Render("✔ Approved")
	case domain.ChangeRejected:
		return StyleRed.Render("✖ Rejected")
	default:
		return StyleDim.Render(string(status))
	}
}

// SeverityBadge colors free-form severities; unknown values stay neutral.
func SeverityBadge(severity string) string {
	switch strings.ToLower(severity) {
	case "critical", "high":
		return StyleRed.Render(severity)
	case "medium":
		return StyleYellow.Render(severity)
	case "low":
		return StyleGreen.Render(severity)
	case "":
		return StyleDim.Render("--")
	default:
		return StyleFg.Render(severity)
	}
}

// CategoryBadge returns the display name of a project category.
func CategoryBadge(c domain.ProjectCategory) string {
	switch c {
	case domain.CategorySubstation:
		return StylePurple.Render("Substation")
	case domain.CategoryOHTL:
		return StylePurple.Render("OHTL")
	case domain.CategoryUGCable:
		return StylePurple.Render("UG Cable")
	default:
		return StyleDim.Render(string(c))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
