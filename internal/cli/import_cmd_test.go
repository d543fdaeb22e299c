package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/pmo/internal/testutil"
)

const orgYAML = `units:
  - ref: group
    name: Acme Group
    manager_ref: ceo
    positions:
      - ref: ceo
        name: Chief Executive Officer
      - ref: pm
        name: Project Manager
        parent_ref: ceo
    projects:
      - name: Qassim OHTL
        tender_no: QSM-OHTL-7
        category: ohtl
    plans:
      - name: 2025 Growth Plan
        objectives: [Expand regional footprint]
  - ref: region
    name: Central Region
    parent_ref: group
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestImport_AppliesFile(t *testing.T) {
	app := testApp(t)
	file := writeFile(t, "org.yaml", orgYAML)

	out := mustExec(t, app, "import", file)
	assert.Contains(t, out, "Imported "+file)
	assert.Contains(t, out, "2 (#1, #2)")

	out = mustExec(t, app, "bu", "path", "2")
	assert.Less(t, indexOf(t, out, "Acme Group"), indexOf(t, out, "Central Region"))

	out = mustExec(t, app, "bu", "get", "1")
	assert.Contains(t, out, "Chief Executive Officer [manager]")
	assert.Equal(t, 1, testutil.CountRows(t, app.db, "objective"))
}

func TestImport_DryRunWritesNothing(t *testing.T) {
	app := testApp(t)
	file := writeFile(t, "org.yaml", orgYAML)

	out := mustExec(t, app, "import", file, "--dry-run")
	assert.Contains(t, out, "IMPORT PREVIEW")
	assert.Contains(t, out, "Acme Group [2 positions, 1 projects, 1 plans, 1 objectives]")
	assert.Less(t, indexOf(t, out, "Acme Group"), indexOf(t, out, "Central Region"))
	assert.Equal(t, 0, testutil.CountRows(t, app.db, "businessunit"))
}

func TestImport_ReportsEveryProblem(t *testing.T) {
	app := testApp(t)
	file := writeFile(t, "org.json", `{"units":[{"ref":"a","name":"","manager_ref":"nobody"}]}`)

	out, err := executeCmd(t, app, "import", file)
	require.Error(t, err)
	assert.Contains(t, out, "has 2 problem(s)")
	assert.Contains(t, out, "units[0].name is required")
	assert.Contains(t, out, `units[0].manager_ref: "nobody" is not a position of this unit`)
	assert.Equal(t, 0, testutil.CountRows(t, app.db, "businessunit"))
}

func TestImport_StoreFailureRollsBack(t *testing.T) {
	app := testApp(t)
	file := writeFile(t, "org.yaml", orgYAML)
	mustExec(t, app, "import", file)

	_, err := executeCmd(t, app, "import", file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `project "Qassim OHTL"`)
	assert.Equal(t, 2, testutil.CountRows(t, app.db, "businessunit"))
}
