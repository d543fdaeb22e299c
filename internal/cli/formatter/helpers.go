package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/pmo/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// Fields renders label/value pairs with the labels right-aligned.
func Fields(pairs ...[2]string) string {
	width := 0
	for _, p := range pairs {
		if w := lipgloss.Width(p[0]); w > width {
			width = w
		}
	}
	lines := make([]string, len(pairs))
	for i, p := range pairs {
		label := strings.Repeat(" ", width-lipgloss.Width(p[0])) + p[0]
		lines[i] = Dim(label+":") + " " + p[1]
	}
	return strings.Join(lines, "\n")
}

// FormatAmount renders a money value with thousands separators and two
// decimals, e.g. 1250000 -> "1,250,000.00".
func FormatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := b.String() + "." + frac
	if neg {
		return "-" + out
	}
	return out
}

func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// OptionalID renders a nullable reference, "--" when unset.
func OptionalID(id *int64) string {
	if id == nil {
		return StyleDim.Render("--")
	}
	return strconv.FormatInt(*id, 10)
}

func OptionalText(s *string) string {
	if s == nil || *s == "" {
		return StyleDim.Render("--")
	}
	return *s
}

func OptionalDate(t *time.Time) string {
	if t == nil {
		return StyleDim.Render("--")
	}
	return domain.FormatDate(*t)
}

func ID(id int64) string {
	return StyleDim.Render(fmt.Sprintf("#%d", id))
}
