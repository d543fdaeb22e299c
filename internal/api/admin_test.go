package api

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestAdminIndex(t *testing.T) {
	api := newTestServer(t)

	rec := api.do(http.MethodGet, "/admin", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	views := decode[[]adminViewInfo](t, rec)
	require.Len(t, views, 10)
	assert.Equal(t, "businessunit", views[0].Table)
	assert.Equal(t, []string{"id", "bid_due_date", "budget"}, views[1].Sortable)
}

func TestAdminList_SearchAndSort(t *testing.T) {
	api := newTestServer(t)
	api.seed()
	api.seed()

	rec := api.do(http.MethodGet, "/admin/project?search=acme-ryd&sort=id&order=desc", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	list := decode[adminListResponse](t, rec)
	assert.Equal(t, "Projects", list.View)
	require.Len(t, list.Rows, 2)
	first, second := list.Rows[0]["id"].(float64), list.Rows[1]["id"].(float64)
	assert.Greater(t, first, second)

	rec = api.do(http.MethodGet, "/admin/businessunit?search=nothing-matches", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[adminListResponse](t, rec).Rows)

	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/admin/project?sort=name", nil).Code)
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/admin/project?order=sideways", nil).Code)
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/admin/workpackage?search=site", nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/admin/ledger", nil).Code)
}

func TestAdminExport(t *testing.T) {
	api := newTestServer(t)
	api.seed()

	rec := api.do(http.MethodGet, "/admin/issue/export.xlsx", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "issue.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Issues")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"id", "project_id", "severity", "status", "owner_id"}, rows[0])
	assert.Equal(t, "medium", rows[1][2])
	assert.Equal(t, "open", rows[1][3])
}
