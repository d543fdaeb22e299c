package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/pmo/internal/cli/formatter"
	"github.com/alexanderramin/pmo/internal/domain"
)

// parseID reads a positive integer id argument.
func parseID(what, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalidf("%s %q must be a positive integer", what, s)
	}
	return id, nil
}

// optionalIDFlag returns nil for an unset flag or 0, which both mean "no
// reference".
func optionalIDFlag(cmd *cobra.Command, name string, v int64) *int64 {
	if !cmd.Flags().Changed(name) || v == 0 {
		return nil
	}
	return domain.Int64Ptr(v)
}

// confirmDelete asks before destructive commands on a terminal. --yes and
// non-interactive runs skip the prompt.
func confirmDelete(app *App, yes bool, what string) (bool, error) {
	if yes || !app.interactive() {
		return true, nil
	}
	confirm := app.Confirm
	if confirm == nil {
		confirm = huhConfirm
	}
	return confirm(fmt.Sprintf("Delete %s and everything it owns?", what))
}

func huhConfirm(title string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&ok),
		),
	).WithTheme(pmoHuhTheme()).WithShowHelp(false).Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// pmoHuhTheme styles prompts with the formatter palette.
func pmoHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorRed).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func printCreated(w io.Writer, kind domain.Kind, id int64, name string) {
	fmt.Fprintf(w, "%s Created %s %s %s\n", formatter.StyleGreen.Render("✔"), kind.Label(), formatter.ID(id), name)
}

func printUpdated(w io.Writer, kind domain.Kind, id int64, name string) {
	fmt.Fprintf(w, "%s Updated %s %s %s\n", formatter.StyleGreen.Render("✔"), kind.Label(), formatter.ID(id), name)
}

func printDeleted(w io.Writer, kind domain.Kind, id int64) {
	fmt.Fprintf(w, "%s Deleted %s %s\n", formatter.StyleGreen.Render("✔"), kind.Label(), formatter.ID(id))
}

// unitNameIndex maps business unit ids to names for list output.
func unitNameIndex(ctx context.Context, app *App) (map[int64]string, error) {
	units, err := app.services.BusinessUnits.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(units))
	for _, u := range units {
		names[u.ID] = u.Name
	}
	return names, nil
}
