package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/pmo/internal/domain"
	"github.com/alexanderramin/pmo/internal/testutil"
)

func TestBusinessUnitPath_LengthMatchesDepth(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	const depth = 6
	var ids []int64
	var parent *int64
	for i := 0; i < depth; i++ {
		b := &domain.BusinessUnit{Name: fmt.Sprintf("level %d", i), ParentID: parent}
		require.NoError(t, svc.BusinessUnits.Create(ctx, b))
		ids = append(ids, b.ID)
		parent = &b.ID
	}

	path, err := svc.Hierarchy.BusinessUnitPath(ctx, ids[depth-1])
	require.NoError(t, err)
	require.Len(t, path, depth)
	assert.Equal(t, "level 5", path[0].Name)
	assert.Equal(t, ids[0], path[depth-1].ID)
	assert.Nil(t, path[depth-1].ParentID)
}

func TestBusinessUnitPath_DeepChainIsNotACycle(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	const depth = 300
	var parent *int64
	var leaf int64
	for i := 0; i < depth; i++ {
		b := &domain.BusinessUnit{Name: fmt.Sprintf("level %d", i), ParentID: parent}
		require.NoError(t, svc.BusinessUnits.Create(ctx, b))
		leaf = b.ID
		parent = &b.ID
	}

	path, err := svc.Hierarchy.BusinessUnitPath(ctx, leaf)
	require.NoError(t, err)
	assert.Len(t, path, depth)

	fresh := createUnit(t, svc, "Fresh")
	moved, err := svc.BusinessUnits.Update(ctx, fresh.ID, BusinessUnitPatch{ParentID: SetTo(&leaf)})
	require.NoError(t, err)
	assert.Equal(t, leaf, *moved.ParentID)

	root := path[depth-1].ID
	_, err = svc.BusinessUnits.Update(ctx, root, BusinessUnitPatch{ParentID: SetTo(&fresh.ID)})
	assert.ErrorIs(t, err, domain.ErrCycle)
}

func TestPositionPathAndChildren(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	acme := createUnit(t, svc, "Acme")
	ceo := createPosition(t, svc, acme.ID, "CEO")
	coo := createPosition(t, svc, acme.ID, "COO", testutil.WithPositionParent(ceo.ID))
	cfo := createPosition(t, svc, acme.ID, "CFO", testutil.WithPositionParent(ceo.ID))
	pm := createPosition(t, svc, acme.ID, "PM", testutil.WithPositionParent(coo.ID))

	path, err := svc.Hierarchy.PositionPath(ctx, pm.ID)
	require.NoError(t, err)
	var names []string
	for _, p := range path {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"PM", "COO", "CEO"}, names)

	children, err := svc.Hierarchy.PositionChildren(ctx, ceo.ID)
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, coo.ID, children[0].ID)
	assert.Equal(t, cfo.ID, children[1].ID)

	_, err = svc.Hierarchy.PositionChildren(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBusinessUnitChildren(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	root := createUnit(t, svc, "Root")
	createUnit(t, svc, "A", testutil.WithUnitParent(root.ID))
	createUnit(t, svc, "B", testutil.WithUnitParent(root.ID))

	children, err := svc.Hierarchy.BusinessUnitChildren(ctx, root.ID)
	require.NoError(t, err)
	assert.Len(t, children, 2)
}

func TestBusinessUnitPath_StoredCycleIsReported(t *testing.T) {
	svc, database := newTestServices(t)
	ctx := context.Background()
	a := createUnit(t, svc, "A")
	b := createUnit(t, svc, "B", testutil.WithUnitParent(a.ID))

	// Bypass the service to plant a loop the way a hand-edited file could.
	_, err := database.Exec(`UPDATE businessunit SET parent_id = ? WHERE id = ?`, b.ID, a.ID)
	require.NoError(t, err)

	_, err = svc.Hierarchy.BusinessUnitPath(ctx, b.ID)
	assert.ErrorIs(t, err, domain.ErrCycle)
}

func TestOwnershipChain(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	data, err := svc.Seed.CreateSampleData(ctx)
	require.NoError(t, err)

	task := testutil.NewTestTask(data.WorkPackage.ID, "Clear site")
	require.NoError(t, svc.WorkBreakdown.CreateTask(ctx, task))

	chain, err := svc.Hierarchy.OwnershipChain(ctx, domain.Ref{Kind: domain.KindTask, ID: task.ID})
	require.NoError(t, err)
	var kinds []domain.Kind
	for _, r := range chain {
		kinds = append(kinds, r.Kind)
	}
	assert.Equal(t, []domain.Kind{
		domain.KindTask, domain.KindWorkPackage, domain.KindControlAccount, domain.KindProject, domain.KindBusinessUnit,
	}, kinds)
	assert.Equal(t, data.BusinessUnit.ID, chain[len(chain)-1].ID)

	issues, err := svc.Issues.ListByProject(ctx, data.Project.ID)
	require.NoError(t, err)
	chain, err = svc.Hierarchy.OwnershipChain(ctx, domain.Ref{Kind: domain.KindIssue, ID: issues[0].ID})
	require.NoError(t, err)
	assert.Equal(t, domain.KindWorkPackage, chain[1].Kind, "issue climbs from its effective parent")

	_, err = svc.Hierarchy.OwnershipChain(ctx, domain.Ref{Kind: domain.KindDependency, ID: 1})
	assert.ErrorIs(t, err, domain.ErrInvalid)

	_, err = svc.Hierarchy.OwnershipChain(ctx, domain.Ref{Kind: domain.KindTask, ID: 4040})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
