package cli

import (
	"bytes"
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/pmo/internal/config"
	"github.com/alexanderramin/pmo/internal/db"
	"github.com/alexanderramin/pmo/internal/domain"
	"github.com/alexanderramin/pmo/internal/testutil"
)

// testApp wires an App to an in-memory store with the pinned test clock.
func testApp(t *testing.T) *App {
	t.Helper()
	app := &App{Clock: testutil.FixedClock(), Config: config.Defaults()}
	app.Attach(testutil.NewTestDB(t))
	return app
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func mustExec(t *testing.T, app *App, args ...string) string {
	t.Helper()
	out, err := executeCmd(t, app, args...)
	require.NoError(t, err, out)
	return out
}

func TestRoot_DBFlagOverridesConfig(t *testing.T) {
	var opened []string
	cfg := config.Defaults()
	cfg.DB.Path = "from-config.db"
	app := &App{
		Config: cfg,
		Open: func(path string) (*sql.DB, error) {
			opened = append(opened, path)
			return db.OpenDB(db.MemoryPath)
		},
	}

	mustExec(t, app, "bu", "list")
	mustExec(t, app, "--db", "sqlite:///data/other.db", "bu", "list")

	assert.Equal(t, []string{"from-config.db", "data/other.db"}, opened)
	assert.Nil(t, app.db, "store opened by the command is closed afterwards")
}

func TestExecute_ClosesStoreWhenCommandFails(t *testing.T) {
	var opened *sql.DB
	app := &App{
		Config: config.Defaults(),
		Open: func(path string) (*sql.DB, error) {
			database, err := db.OpenDB(db.MemoryPath)
			opened = database
			return database, err
		},
	}
	root := NewRootCmd(app)
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"proj", "get", "not-a-number"})

	err := Execute(app, root)
	assert.ErrorIs(t, err, domain.ErrInvalid)
	require.NotNil(t, opened)
	assert.Nil(t, app.db)
	assert.Error(t, opened.Ping(), "store is closed")
}

func TestBusinessUnit_CreateListAndPath(t *testing.T) {
	app := testApp(t)

	out := mustExec(t, app, "bu", "create", "Group", "--type", "company")
	assert.Contains(t, out, "Created business unit #1 Group")
	mustExec(t, app, "bu", "create", "Grid", "--parent-id", "1")
	mustExec(t, app, "bu", "create", "Substations", "--parent-id", "2")

	out = mustExec(t, app, "bu", "list")
	assert.Contains(t, out, "Group")
	assert.Contains(t, out, "company")
	assert.Contains(t, out, "Substations")

	out = mustExec(t, app, "bu", "path", "3")
	assert.Less(t, indexOf(t, out, "Group"), indexOf(t, out, "Grid"))
	assert.Less(t, indexOf(t, out, "Grid"), indexOf(t, out, "Substations"))
}

func TestBusinessUnit_MissingIsReportedNotFailed(t *testing.T) {
	app := testApp(t)

	for _, args := range [][]string{
		{"bu", "get", "99"},
		{"bu", "path", "99"},
		{"bu", "update", "99", "--name", "x"},
		{"bu", "delete", "99", "--yes"},
	} {
		out, err := executeCmd(t, app, args...)
		require.NoError(t, err, args)
		assert.Contains(t, out, "Business unit 99: not found.", args)
	}
}

func TestBusinessUnit_BadIDIsAnError(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "bu", "get", "abc")
	assert.ErrorIs(t, err, domain.ErrInvalid)
	_, err = executeCmd(t, app, "bu", "get")
	assert.Error(t, err)
}

func TestBusinessUnit_UpdateManagerAndParent(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	mustExec(t, app, "bu", "create", "Acme")
	mustExec(t, app, "bu", "create", "Grid", "--parent-id", "1")
	mustExec(t, app, "pos", "create", "CEO", "1")

	out := mustExec(t, app, "bu", "update", "1", "--manager-id", "1", "--name", "Acme Power")
	assert.Contains(t, out, "Updated business unit #1 Acme Power")
	u, err := app.services.BusinessUnits.GetByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, u.ManagerID)
	assert.Equal(t, int64(1), *u.ManagerID)

	mustExec(t, app, "bu", "update", "1", "--manager-id", "0")
	u, err = app.services.BusinessUnits.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, u.ManagerID)
	assert.Equal(t, "Acme Power", u.Name)

	_, err = executeCmd(t, app, "bu", "update", "1", "--parent-id", "2")
	assert.ErrorIs(t, err, domain.ErrCycle)

	_, err = executeCmd(t, app, "bu", "update", "2", "--manager-id", "1")
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestBusinessUnit_GetShowsOrgChart(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "seed")

	out := mustExec(t, app, "bu", "get", "1")
	assert.Contains(t, out, "ACME POWER")
	assert.Contains(t, out, "Chief Executive Officer [manager]")
	assert.Contains(t, out, "Project Manager")
}

func TestBusinessUnit_DeleteConfirmation(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	mustExec(t, app, "bu", "create", "Acme")

	var asked []string
	answer := false
	app.IsInteractive = func() bool { return true }
	app.Confirm = func(title string) (bool, error) {
		asked = append(asked, title)
		return answer, nil
	}

	out := mustExec(t, app, "bu", "delete", "1")
	assert.Contains(t, out, "Cancelled.")
	require.Len(t, asked, 1)
	assert.Contains(t, asked[0], `business unit "Acme"`)
	_, err := app.services.BusinessUnits.GetByID(ctx, 1)
	require.NoError(t, err)

	answer = true
	out = mustExec(t, app, "bu", "delete", "1")
	assert.Contains(t, out, "Deleted business unit #1")
	_, err = app.services.BusinessUnits.GetByID(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	mustExec(t, app, "bu", "create", "Beta")
	mustExec(t, app, "bu", "delete", "2", "--yes")
	assert.Len(t, asked, 2, "--yes skips the prompt")
}

func TestBusinessUnit_DeleteWithoutTerminalSkipsPrompt(t *testing.T) {
	app := testApp(t)
	app.Confirm = func(string) (bool, error) {
		t.Fatal("prompted without a terminal")
		return false, nil
	}
	mustExec(t, app, "bu", "create", "Acme")

	out := mustExec(t, app, "bu", "delete", "1")
	assert.Contains(t, out, "Deleted business unit #1")
}

func TestPosition_CreateListAndPath(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "bu", "create", "Acme")
	mustExec(t, app, "bu", "create", "Beta")
	mustExec(t, app, "pos", "create", "CEO", "1")
	mustExec(t, app, "pos", "create", "COO", "1", "--parent-id", "1")
	mustExec(t, app, "pos", "create", "Analyst", "1", "--parent-id", "2", "--type", "staff")
	mustExec(t, app, "pos", "create", "Director", "2")

	out := mustExec(t, app, "pos", "list", "--bu-id", "1")
	assert.Contains(t, out, "Analyst")
	assert.Contains(t, out, "staff")
	assert.Contains(t, out, "Acme")
	assert.NotContains(t, out, "Director")

	out = mustExec(t, app, "pos", "list")
	assert.Contains(t, out, "Director")

	out = mustExec(t, app, "pos", "path", "3")
	assert.Less(t, indexOf(t, out, "CEO"), indexOf(t, out, "COO"))
	assert.Less(t, indexOf(t, out, "COO"), indexOf(t, out, "Analyst"))

	out, err := executeCmd(t, app, "pos", "create", "Ghost", "42")
	require.NoError(t, err)
	assert.Contains(t, out, "Business unit 42: not found.")

	_, err = executeCmd(t, app, "pos", "create", "Cross", "2", "--parent-id", "1")
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestProject_Lifecycle(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "bu", "create", "Acme")

	out := mustExec(t, app, "proj", "create", "Line Upgrade", "1", "380kV line", "T-100", "Towers and stringing",
		"--category", "OHTL", "--budget", "2500000", "--bid-value", "2400000")
	assert.Contains(t, out, "Created project #1 Line Upgrade")

	p, err := app.services.Projects.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryOHTL, p.Category)
	assert.Equal(t, testutil.Today, p.BidDueDate)
	assert.Equal(t, "SAR", p.FundingCurrency)

	out = mustExec(t, app, "proj", "list", "--bu-id", "1")
	assert.Contains(t, out, "T-100")
	assert.Contains(t, out, "2,500,000.00")
	assert.Contains(t, out, "OHTL")

	out = mustExec(t, app, "proj", "get", "1")
	assert.Contains(t, out, "LINE UPGRADE")
	assert.Contains(t, out, "Towers and stringing")
	assert.Contains(t, out, "Acme")

	_, err = executeCmd(t, app, "proj", "create", "Dup", "1", "d", "T-100", "s")
	assert.Error(t, err, "tender numbers are unique")

	out = mustExec(t, app, "proj", "delete", "1", "--yes")
	assert.Contains(t, out, "Deleted project #1")
	out = mustExec(t, app, "proj", "get", "1")
	assert.Contains(t, out, "Project 1: not found.")
}

func TestProject_StatusLog(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "seed")

	out := mustExec(t, app, "proj", "status", "1")
	assert.Contains(t, out, "RIYADH SUBSTATION UPGRADE STATUS")
	assert.Contains(t, out, "Awarded")
	assert.Contains(t, out, "Client confirmed PO")

	out = mustExec(t, app, "proj", "status", "1", "in_progress", "--date", "2025-04-01", "--notes", "Crews mobilised")
	assert.Contains(t, out, "Riyadh Substation Upgrade is now ▶ In Progress as of 2025-04-01")

	out = mustExec(t, app, "proj", "status", "1")
	assert.Less(t, indexOf(t, out, "Awarded"), indexOf(t, out, "In Progress"))
	assert.Contains(t, out, "Crews mobilised")

	_, err := executeCmd(t, app, "proj", "status", "1", "finished")
	assert.ErrorIs(t, err, domain.ErrInvalid)
	_, err = executeCmd(t, app, "proj", "status", "1", "closed", "--date", "01/05/2025")
	assert.ErrorIs(t, err, domain.ErrInvalid)

	out = mustExec(t, app, "proj", "status", "99")
	assert.Contains(t, out, "Project 99: not found.")
}

func TestProject_Assign(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "seed")

	out := mustExec(t, app, "proj", "assign", "1", "3", "Night shift", "--role", "Supervisor", "--allocation", "0", "--wp-id", "1")
	assert.Contains(t, out, "Created resource assignment #2 Night shift")
	assert.Contains(t, out, "0% on work package 1")

	out = mustExec(t, app, "proj", "assign", "1", "3", "Backup")
	assert.Contains(t, out, "100% on project 1")

	out = mustExec(t, app, "proj", "get", "1")
	assert.Contains(t, out, "Night shift")
	assert.Contains(t, out, "Supervisor")

	out = mustExec(t, app, "proj", "assign", "1", "99", "Ghost")
	assert.Contains(t, out, "Position 99: not found.")
}

func TestProject_CreateRejectsBadInput(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "bu", "create", "Acme")

	_, err := executeCmd(t, app, "proj", "create", "P", "1", "d", "T-1", "s", "--category", "pipeline")
	assert.ErrorIs(t, err, domain.ErrInvalid)

	out, err := executeCmd(t, app, "proj", "create", "P", "7", "d", "T-1", "s")
	require.NoError(t, err)
	assert.Contains(t, out, "Business unit 7: not found.")

	_, err = executeCmd(t, app, "proj", "create", "P", "1", "d")
	assert.Error(t, err)
}

func TestBusinessPlanAndObjectives(t *testing.T) {
	app := testApp(t)
	mustExec(t, app, "bu", "create", "Acme")

	assert.Contains(t, mustExec(t, app, "bp", "list"), "No business plans found.")

	out := mustExec(t, app, "bp", "create", "2025 Plan", "1")
	assert.Contains(t, out, "Created business plan #1 2025 Plan")
	mustExec(t, app, "obj", "create", "Grow backlog", "1")
	mustExec(t, app, "obj", "create", "Cut bid cycle", "1")

	out = mustExec(t, app, "bp", "list", "--bu-id", "1")
	assert.Contains(t, out, "2025 Plan")
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "2")

	out = mustExec(t, app, "obj", "list", "1")
	assert.Contains(t, out, "Grow backlog")
	assert.Contains(t, out, "Cut bid cycle")

	out = mustExec(t, app, "obj", "list", "5")
	assert.Contains(t, out, "Business plan 5: not found.")
	out = mustExec(t, app, "obj", "create", "Orphan", "5")
	assert.Contains(t, out, "Business plan 5: not found.")
}

func TestSeed_PrintsCreatedIDs(t *testing.T) {
	app := testApp(t)

	out := mustExec(t, app, "seed")
	assert.Contains(t, out, "#1 Acme Power")
	assert.Contains(t, out, "Riyadh Substation Upgrade")
	assert.Contains(t, out, "Site Preparation")

	out = mustExec(t, app, "proj", "get", "1")
	assert.Contains(t, out, "Awarded")
	assert.Contains(t, out, "Lead PM")
	assert.Contains(t, out, "80%")
	assert.Contains(t, out, "Vendor kickoff delay")
	assert.Contains(t, out, "Add redundancy")
}

func indexOf(t *testing.T, s, sub string) int {
	t.Helper()
	i := bytes.Index([]byte(s), []byte(sub))
	require.GreaterOrEqual(t, i, 0, "%q not in output:\n%s", sub, s)
	return i
}
