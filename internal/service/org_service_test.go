package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/pmo/internal/domain"
	"github.com/alexanderramin/pmo/internal/testutil"
)

func newTestServices(t *testing.T) (*Services, *sql.DB) {
	t.Helper()
	database := testutil.NewTestDB(t)
	return New(database, testutil.FixedClock()), database
}

func createUnit(t *testing.T, svc *Services, name string, opts ...testutil.BusinessUnitOption) *domain.BusinessUnit {
	t.Helper()
	b := testutil.NewTestBusinessUnit(name, opts...)
	require.NoError(t, svc.BusinessUnits.Create(context.Background(), b))
	return b
}

func createPosition(t *testing.T, svc *Services, buID int64, name string, opts ...testutil.PositionOption) *domain.Position {
	t.Helper()
	p := testutil.NewTestPosition(buID, name, opts...)
	require.NoError(t, svc.Positions.Create(context.Background(), p))
	return p
}

func TestBusinessUnitCreate_DefaultsTypeAndRequiresName(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	b := &domain.BusinessUnit{Name: "Acme"}
	require.NoError(t, svc.BusinessUnits.Create(ctx, b))
	assert.NotZero(t, b.ID)
	assert.Equal(t, domain.DefaultBusinessUnitType, b.Type)

	err := svc.BusinessUnits.Create(ctx, &domain.BusinessUnit{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestBusinessUnitCreate_MissingParentIsNotFound(t *testing.T) {
	svc, database := newTestServices(t)

	err := svc.BusinessUnits.Create(context.Background(), testutil.NewTestBusinessUnit("Child", testutil.WithUnitParent(99)))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "business unit 99")
	assert.Equal(t, 0, testutil.CountRows(t, database, "businessunit"))
}

func TestBusinessUnitCreate_ManagerCannotBeSetOnNewUnit(t *testing.T) {
	svc, _ := newTestServices(t)
	other := createUnit(t, svc, "Other")
	pos := createPosition(t, svc, other.ID, "Head")

	err := svc.BusinessUnits.Create(context.Background(), testutil.NewTestBusinessUnit("New", testutil.WithManager(pos.ID)))
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestBusinessUnitUpdate_PartialPatch(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	parent := createUnit(t, svc, "Group")
	b := createUnit(t, svc, "Grid", testutil.WithUnitParent(parent.ID))

	got, err := svc.BusinessUnits.Update(ctx, b.ID, BusinessUnitPatch{Name: SetTo("Grid Ops")})
	require.NoError(t, err)
	assert.Equal(t, "Grid Ops", got.Name)
	require.NotNil(t, got.ParentID, "untouched fields survive")
	assert.Equal(t, parent.ID, *got.ParentID)

	got, err = svc.BusinessUnits.Update(ctx, b.ID, BusinessUnitPatch{ParentID: SetTo[*int64](nil)})
	require.NoError(t, err)
	assert.Nil(t, got.ParentID, "explicit nil clears the parent")
}

func TestBusinessUnitUpdate_RejectsCycles(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	root := createUnit(t, svc, "Root")
	mid := createUnit(t, svc, "Mid", testutil.WithUnitParent(root.ID))
	leaf := createUnit(t, svc, "Leaf", testutil.WithUnitParent(mid.ID))

	_, err := svc.BusinessUnits.Update(ctx, root.ID, BusinessUnitPatch{ParentID: SetTo(&leaf.ID)})
	assert.ErrorIs(t, err, domain.ErrCycle)

	_, err = svc.BusinessUnits.Update(ctx, mid.ID, BusinessUnitPatch{ParentID: SetTo(&mid.ID)})
	assert.ErrorIs(t, err, domain.ErrCycle)

	stored, err := svc.BusinessUnits.GetByID(ctx, root.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ParentID, "rejected update leaves the row alone")
}

func TestBusinessUnitUpdate_ManagerMustBelongToUnit(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	acme := createUnit(t, svc, "Acme")
	other := createUnit(t, svc, "Other")
	ceo := createPosition(t, svc, acme.ID, "CEO")
	stranger := createPosition(t, svc, other.ID, "Stranger")

	_, err := svc.BusinessUnits.Update(ctx, acme.ID, BusinessUnitPatch{ManagerID: SetTo(&stranger.ID)})
	assert.ErrorIs(t, err, domain.ErrInvalid)

	missing := int64(404)
	_, err = svc.BusinessUnits.Update(ctx, acme.ID, BusinessUnitPatch{ManagerID: SetTo(&missing)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := svc.BusinessUnits.Update(ctx, acme.ID, BusinessUnitPatch{ManagerID: SetTo(&ceo.ID)})
	require.NoError(t, err)
	require.NotNil(t, got.ManagerID)
	assert.Equal(t, ceo.ID, *got.ManagerID)
}

func TestBusinessUnitUpdate_MissingUnit(t *testing.T) {
	svc, _ := newTestServices(t)
	_, err := svc.BusinessUnits.Update(context.Background(), 12, BusinessUnitPatch{Name: SetTo("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBusinessUnitDelete(t *testing.T) {
	svc, database := newTestServices(t)
	ctx := context.Background()
	b := createUnit(t, svc, "Acme")
	createPosition(t, svc, b.ID, "CEO")

	require.NoError(t, svc.BusinessUnits.Delete(ctx, b.ID))
	assert.Equal(t, 0, testutil.CountRows(t, database, "position"))
	assert.ErrorIs(t, svc.BusinessUnits.Delete(ctx, b.ID), domain.ErrNotFound)
}

func TestPositionCreate_ParentMustShareUnit(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	acme := createUnit(t, svc, "Acme")
	other := createUnit(t, svc, "Other")
	boss := createPosition(t, svc, other.ID, "Boss")

	err := svc.Positions.Create(ctx, testutil.NewTestPosition(acme.ID, "Clerk", testutil.WithPositionParent(boss.ID)))
	assert.ErrorIs(t, err, domain.ErrInvalid)

	err = svc.Positions.Create(ctx, testutil.NewTestPosition(404, "Ghost"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPositionUpdate_RejectsCycles(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	acme := createUnit(t, svc, "Acme")
	ceo := createPosition(t, svc, acme.ID, "CEO")
	coo := createPosition(t, svc, acme.ID, "COO", testutil.WithPositionParent(ceo.ID))
	pm := createPosition(t, svc, acme.ID, "PM", testutil.WithPositionParent(coo.ID))

	_, err := svc.Positions.Update(ctx, ceo.ID, PositionPatch{ParentID: SetTo(&pm.ID)})
	assert.ErrorIs(t, err, domain.ErrCycle)

	got, err := svc.Positions.Update(ctx, pm.ID, PositionPatch{ParentID: SetTo(&ceo.ID), Name: SetTo("Senior PM")})
	require.NoError(t, err)
	assert.Equal(t, "Senior PM", got.Name)
	assert.Equal(t, ceo.ID, *got.ParentID)
}

func TestPositionList_FiltersByUnit(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	acme := createUnit(t, svc, "Acme")
	other := createUnit(t, svc, "Other")
	createPosition(t, svc, acme.ID, "CEO")
	createPosition(t, svc, other.ID, "Boss")

	all, err := svc.Positions.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.Positions.List(ctx, &acme.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "CEO", mine[0].Name)
}

func TestPositionDelete_ClearsManager(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	acme := createUnit(t, svc, "Acme")
	ceo := createPosition(t, svc, acme.ID, "CEO")
	_, err := svc.BusinessUnits.Update(ctx, acme.ID, BusinessUnitPatch{ManagerID: SetTo(&ceo.ID)})
	require.NoError(t, err)

	require.NoError(t, svc.Positions.Delete(ctx, ceo.ID))

	got, err := svc.BusinessUnits.GetByID(ctx, acme.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ManagerID)
}
