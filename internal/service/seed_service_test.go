package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/pmo/internal/db"
	"github.com/alexanderramin/pmo/internal/domain"
	"github.com/alexanderramin/pmo/internal/graph"
	"github.com/alexanderramin/pmo/internal/testutil"
)

func TestCreateSampleData(t *testing.T) {
	svc, database := newTestServices(t)
	ctx := context.Background()

	data, err := svc.Seed.CreateSampleData(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Acme Power", data.BusinessUnit.Name)
	require.NotNil(t, data.BusinessUnit.ManagerID)
	assert.Equal(t, data.CEO.ID, *data.BusinessUnit.ManagerID)
	assert.Equal(t, fmt.Sprintf("ACME-RYD-001-%d", data.BusinessUnit.ID), data.Project.TenderNo)
	assert.True(t, testutil.Today.Equal(data.Project.BidIssueDate))

	path, err := svc.Hierarchy.PositionPath(ctx, data.PM.ID)
	require.NoError(t, err)
	assert.Len(t, path, 3)

	for table, want := range map[string]int{
		"businessunit": 1, "position": 3, "businessplan": 1, "objective": 1, "keyresult": 1, "initiative": 1,
		"project": 1, "controlaccount": 1, "workpackage": 1, "risk": 1, "projectstatushistory": 1,
		"resourceassignment": 1, "issue": 1, "changerequest": 1,
	} {
		assert.Equal(t, want, testutil.CountRows(t, database, table), table)
	}

	issues, err := svc.Issues.ListByProject(ctx, data.Project.ID)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, data.PM.ID, *issues[0].OwnerID)
	assert.Equal(t, domain.Ref{Kind: domain.KindWorkPackage, ID: data.WorkPackage.ID}, issues[0].EffectiveParent())
}

func TestCreateSampleData_TwiceGivesDistinctTenders(t *testing.T) {
	svc, database := newTestServices(t)
	ctx := context.Background()

	first, err := svc.Seed.CreateSampleData(ctx)
	require.NoError(t, err)
	second, err := svc.Seed.CreateSampleData(ctx)
	require.NoError(t, err)

	assert.NotEqual(t, first.Project.TenderNo, second.Project.TenderNo)
	assert.Equal(t, 2, testutil.CountRows(t, database, "businessunit"))
}

func TestCreateSampleData_RollsBackOnLateFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	injected := errors.New("injected manager update failure")

	// The manager assignment is the 17th and last write of the seed.
	failUoW := &testutil.FailOnNthExecUoW{DB: database, FailOn: 17, Err: injected}
	svc := NewWithUoW(database, failUoW, testutil.FixedClock())

	_, err := svc.Seed.CreateSampleData(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, injected)

	for _, table := range db.Tables {
		assert.Equal(t, 0, testutil.CountRows(t, database, table), table)
	}
}

func TestGraphBuild_SeededUnit(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	data, err := svc.Seed.CreateSampleData(ctx)
	require.NoError(t, err)

	g, err := svc.Graph.Build(ctx, data.BusinessUnit.ID)
	require.NoError(t, err)

	assert.Len(t, g.Nodes, 18, "one node per seeded record")
	seen := make(map[string]bool)
	for _, n := range g.Nodes {
		assert.False(t, seen[n.ID], "duplicate node %s", n.ID)
		seen[n.ID] = true
	}

	counts := g.CountByKind()
	assert.Equal(t, 3, counts[domain.KindPosition])
	assert.Equal(t, 1, counts[domain.KindInitiative])
	assert.Equal(t, 1, counts[domain.KindChangeRequest])

	ceo, ok := g.Node(domain.NodeKey(data.CEO))
	require.True(t, ok)
	assert.True(t, ceo.Manager)
	assert.Equal(t, graph.ClusterOrgChart, ceo.Cluster)

	edges := make(map[graph.Edge]bool)
	for _, e := range g.Edges {
		edges[e] = true
	}
	bu := domain.NodeKey(data.BusinessUnit)
	assert.True(t, edges[graph.Edge{From: domain.NodeKey(data.CEO), To: bu, Kind: graph.EdgeOwner}])
	assert.True(t, edges[graph.Edge{From: domain.NodeKey(data.PM), To: domain.NodeKey(data.COO), Kind: graph.EdgeOwner}])
	assert.True(t, edges[graph.Edge{From: domain.NodeKey(data.Project), To: bu, Kind: graph.EdgeOwner}])
	for _, e := range g.Edges {
		assert.NotEqual(t, graph.EdgeManages, e.Kind, "a root manager already points at the unit")
	}
	// Every node except the unit has exactly one owner edge.
	assert.Len(t, g.Edges, len(g.Nodes)-1)
}

func TestGraphBuild_ManagerBelowRootGetsManagesEdge(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	data, err := svc.Seed.CreateSampleData(ctx)
	require.NoError(t, err)

	_, err = svc.BusinessUnits.Update(ctx, data.BusinessUnit.ID, BusinessUnitPatch{ManagerID: SetTo(&data.COO.ID)})
	require.NoError(t, err)

	g, err := svc.Graph.Build(ctx, data.BusinessUnit.ID)
	require.NoError(t, err)

	var manages []graph.Edge
	for _, e := range g.Edges {
		if e.Kind == graph.EdgeManages {
			manages = append(manages, e)
		}
	}
	require.Len(t, manages, 1)
	assert.Equal(t, domain.NodeKey(data.COO), manages[0].From)
	assert.Equal(t, domain.NodeKey(data.BusinessUnit), manages[0].To)
}

func TestGraphBuild_TasksAndFallbackParents(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	data, err := svc.Seed.CreateSampleData(ctx)
	require.NoError(t, err)

	task := testutil.NewTestTask(data.WorkPackage.ID, "Clear site")
	require.NoError(t, svc.WorkBreakdown.CreateTask(ctx, task))
	issue := testutil.NewTestIssue(data.Project.ID, "Rock found", testutil.AtTask(task.ID))
	require.NoError(t, svc.Issues.Create(ctx, issue))

	g, err := svc.Graph.Build(ctx, data.BusinessUnit.ID)
	require.NoError(t, err)
	assert.Contains(t, g.Edges, graph.Edge{From: domain.NodeKey(issue), To: domain.NodeKey(task), Kind: graph.EdgeOwner})
	assert.Contains(t, g.Edges, graph.Edge{From: domain.NodeKey(task), To: domain.NodeKey(data.WorkPackage), Kind: graph.EdgeOwner})

	require.NoError(t, svc.WorkBreakdown.DeleteWorkPackage(ctx, data.WorkPackage.ID))
	g, err = svc.Graph.Build(ctx, data.BusinessUnit.ID)
	require.NoError(t, err)
	assert.Contains(t, g.Edges, graph.Edge{From: domain.NodeKey(issue), To: domain.NodeKey(data.Project), Kind: graph.EdgeOwner})
}

func TestGraphBuild_MissingUnit(t *testing.T) {
	svc, _ := newTestServices(t)
	_, err := svc.Graph.Build(context.Background(), 31)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
