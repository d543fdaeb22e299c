package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexanderramin/pmo/internal/cli/formatter"
	"github.com/alexanderramin/pmo/internal/config"
	"github.com/alexanderramin/pmo/internal/db"
	"github.com/alexanderramin/pmo/internal/domain"
	"github.com/alexanderramin/pmo/internal/graph"
	"github.com/alexanderramin/pmo/internal/service"
)

// App carries what the commands share: configuration, the store and the
// terminal hooks tests replace.
type App struct {
	Config *config.Config
	Logger *zap.Logger
	Clock  domain.Clock

	// Open connects to the store at path. Defaults to db.OpenDB.
	Open func(path string) (*sql.DB, error)

	IsInteractive func() bool
	Confirm       func(title string) (bool, error)
	Renderer      graph.Renderer
	RunViewer     func(m tea.Model) error

	db       *sql.DB
	services *service.Services
	owned    bool
}

// Attach points the app at an already open database, e.g. an in-memory
// store in tests. Commands then skip opening --db.
func (a *App) Attach(database *sql.DB) {
	a.db = database
	a.services = service.New(database, a.Clock, service.NewLogUseCaseObserver(a.Logger))
}

func (a *App) connect(path string) error {
	if a.db != nil {
		return nil
	}
	open := a.Open
	if open == nil {
		open = db.OpenDB
	}
	database, err := open(path)
	if err != nil {
		return err
	}
	a.Attach(database)
	a.owned = true
	return nil
}

// Close releases a store the app opened itself. Attached stores are left
// to their owner.
func (a *App) Close() error {
	if !a.owned || a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db, a.services, a.owned = nil, nil, false
	return err
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "pmo" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	if app.Config == nil {
		app.Config = config.Defaults()
	}
	if app.Logger == nil {
		app.Logger = zap.NewNop()
	}

	var dbPath string
	root := &cobra.Command{
		Use:           "pmo",
		Short:         "Project management office: organisation, projects and registers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path := app.Config.DB.Path
			if cmd.Flags().Changed("db") {
				path = db.NormalizePath(dbPath)
			}
			return app.connect(path)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.Close()
		},
	}
	root.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database file (overrides PMO_DB_PATH)")

	root.AddCommand(
		newBusinessUnitCmd(app),
		newPositionCmd(app),
		newProjectCmd(app),
		newBusinessPlanCmd(app),
		newObjectiveCmd(app),
		newGraphCmd(app),
		newSeedCmd(app),
		newImportCmd(app),
		newServeCmd(app),
	)
	return root
}

// Execute runs root and closes any store the command opened, including
// when the command fails and cobra skips the post-run hook.
func Execute(app *App, root *cobra.Command) error {
	err := root.Execute()
	if cerr := app.Close(); err == nil {
		err = cerr
	}
	return err
}

// reportMissing turns a not-found error into a printed notice so lookups
// of absent rows end the command successfully.
func reportMissing(w io.Writer, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		fmt.Fprintln(w, formatter.StyleYellow.Render(capitalize(err.Error())+"."))
		return nil
	}
	return err
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func background(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
