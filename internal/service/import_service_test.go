package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/pmo/internal/db"
	"github.com/alexanderramin/pmo/internal/domain"
	"github.com/alexanderramin/pmo/internal/importer"
	"github.com/alexanderramin/pmo/internal/testutil"
)

func strRef(s string) *string { return &s }

func importDoc() *importer.Document {
	return &importer.Document{Units: []importer.UnitImport{
		{
			Ref: "region", Name: "Central Region", ParentRef: strRef("group"), ManagerRef: strRef("rvp"),
			Positions: []importer.PositionImport{
				{Ref: "pm", Name: "Project Manager", ParentRef: strRef("rvp")},
				{Ref: "rvp", Name: "Regional VP"},
			},
			Projects: []importer.ProjectImport{{Name: "Qassim OHTL", TenderNo: "QSM-OHTL-7", Category: "ohtl"}},
		},
		{
			Ref: "group", Name: "Acme Group", ManagerRef: strRef("ceo"),
			Positions: []importer.PositionImport{{Ref: "ceo", Name: "Chief Executive Officer"}},
			Plans:     []importer.PlanImport{{Name: "2025 Growth Plan", Objectives: []string{"Expand", "Retain"}}},
		},
	}}
}

func convertDoc(t *testing.T, doc *importer.Document) *importer.Plan {
	t.Helper()
	plan, err := importer.Convert(doc)
	require.NoError(t, err)
	return plan
}

func TestImport_WritesTree(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	res, err := svc.Import.Import(ctx, convertDoc(t, importDoc()))
	require.NoError(t, err)
	require.Len(t, res.BusinessUnitIDs, 2)
	assert.Equal(t, 3, res.Positions)
	assert.Equal(t, 1, res.Projects)
	assert.Equal(t, 1, res.Plans)
	assert.Equal(t, 2, res.Objectives)

	group, err := svc.BusinessUnits.GetByID(ctx, res.BusinessUnitIDs[0])
	require.NoError(t, err)
	assert.Equal(t, "Acme Group", group.Name)
	region, err := svc.BusinessUnits.GetByID(ctx, res.BusinessUnitIDs[1])
	require.NoError(t, err)
	require.NotNil(t, region.ParentID)
	assert.Equal(t, group.ID, *region.ParentID)

	require.NotNil(t, region.ManagerID)
	positions, err := svc.Positions.List(ctx, &region.ID)
	require.NoError(t, err)
	require.Len(t, positions, 2)
	byName := map[string]*domain.Position{}
	for _, p := range positions {
		byName[p.Name] = p
	}
	assert.Equal(t, byName["Regional VP"].ID, *region.ManagerID)
	require.NotNil(t, byName["Project Manager"].ParentID)
	assert.Equal(t, byName["Regional VP"].ID, *byName["Project Manager"].ParentID)

	path, err := svc.Hierarchy.BusinessUnitPath(ctx, region.ID)
	require.NoError(t, err)
	require.Len(t, path, 2)
	assert.Equal(t, "Acme Group", path[1].Name)

	projects, err := svc.Projects.List(ctx, &region.ID)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, domain.CategoryOHTL, projects[0].Category)
	assert.Equal(t, domain.DefaultFundingCurrency, projects[0].FundingCurrency)
	assert.True(t, testutil.Today.Equal(projects[0].BidDueDate))
}

func TestImport_AttachesToExistingParent(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	root := createUnit(t, svc, "Holding")

	doc := &importer.Document{Units: []importer.UnitImport{{Ref: "sub", Name: "Subsidiary", ParentID: domain.Int64Ptr(root.ID)}}}
	res, err := svc.Import.Import(ctx, convertDoc(t, doc))
	require.NoError(t, err)

	sub, err := svc.BusinessUnits.GetByID(ctx, res.BusinessUnitIDs[0])
	require.NoError(t, err)
	assert.Equal(t, root.ID, *sub.ParentID)
}

func TestImport_MissingParentWritesNothing(t *testing.T) {
	svc, database := newTestServices(t)

	doc := importDoc()
	doc.Units[1].ParentID = domain.Int64Ptr(999)
	_, err := svc.Import.Import(context.Background(), convertDoc(t, doc))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), `unit "group"`)

	for _, table := range db.Tables {
		assert.Equal(t, 0, testutil.CountRows(t, database, table), table)
	}
}

func TestImport_DuplicateTenderRollsBack(t *testing.T) {
	svc, database := newTestServices(t)
	ctx := context.Background()
	unit := createUnit(t, svc, "Existing")
	taken := testutil.NewTestProject(unit.ID, "Taken")
	taken.TenderNo = "QSM-OHTL-7"
	require.NoError(t, svc.Projects.Create(ctx, taken))

	_, err := svc.Import.Import(ctx, convertDoc(t, importDoc()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `project "Qassim OHTL"`)

	assert.Equal(t, 1, testutil.CountRows(t, database, "businessunit"))
	assert.Equal(t, 0, testutil.CountRows(t, database, "position"))
	assert.Equal(t, 1, testutil.CountRows(t, database, "project"))
}

func TestImport_RollsBackOnLateFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	injected := errors.New("injected project insert failure")

	// The region's project is the 11th and last write of importDoc.
	failUoW := &testutil.FailOnNthExecUoW{DB: database, FailOn: 11, Err: injected}
	svc := NewWithUoW(database, failUoW, testutil.FixedClock())

	_, err := svc.Import.Import(context.Background(), convertDoc(t, importDoc()))
	require.Error(t, err)
	assert.ErrorIs(t, err, injected)

	for _, table := range db.Tables {
		assert.Equal(t, 0, testutil.CountRows(t, database, table), table)
	}
}
