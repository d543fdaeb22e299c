package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/pmo/internal/domain"
	"github.com/alexanderramin/pmo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminRepo_SearchAndSort(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	unit := testutil.NewTestBusinessUnit("Grid")
	require.NoError(t, NewSQLiteBusinessUnitRepo(database).Create(ctx, unit))
	projects := NewSQLiteProjectRepo(database)
	require.NoError(t, projects.Create(ctx, testutil.NewTestProject(unit.ID, "Riyadh Substation", testutil.WithBudget(300, 0))))
	require.NoError(t, projects.Create(ctx, testutil.NewTestProject(unit.ID, "Jeddah Line", testutil.WithBudget(100, 0))))
	require.NoError(t, projects.Create(ctx, testutil.NewTestProject(unit.ID, "Riyadh Cable", testutil.WithBudget(200, 0))))

	view, ok := LookupAdminView("project")
	require.True(t, ok)
	repo := NewSQLiteAdminRepo(database)

	res, err := repo.List(ctx, view, AdminQuery{Search: "riyadh", SortBy: "budget", Desc: true})
	require.NoError(t, err)
	assert.Equal(t, view.Columns, res.Columns)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, "Riyadh Substation", res.Rows[0][1])
	assert.Equal(t, "Riyadh Cable", res.Rows[1][1])
}

func TestAdminRepo_RejectsUnknownSortColumn(t *testing.T) {
	database := testutil.NewTestDB(t)
	view, _ := LookupAdminView("project")

	_, err := NewSQLiteAdminRepo(database).List(context.Background(), view, AdminQuery{SortBy: "name; DROP TABLE project"})
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestAdminRepo_SearchUnsupportedView(t *testing.T) {
	database := testutil.NewTestDB(t)
	view, ok := LookupAdminView("workpackage")
	require.True(t, ok)

	_, err := NewSQLiteAdminRepo(database).List(context.Background(), view, AdminQuery{Search: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestAdminRepo_RegistryCoversOriginalViews(t *testing.T) {
	assert.Len(t, AdminViews, 10)
	_, ok := LookupAdminView("dependency")
	assert.False(t, ok)
}
