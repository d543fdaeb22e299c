package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/alexanderramin/pmo/internal/logging"
	"github.com/alexanderramin/pmo/internal/repository"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type adminViewInfo struct {
	Name       string   `json:"name"`
	Table      string   `json:"table"`
	Columns    []string `json:"columns"`
	Searchable []string `json:"searchable"`
	Sortable   []string `json:"sortable"`
}

type adminListResponse struct {
	View    string           `json:"view"`
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

func (s *Server) adminIndex(c echo.Context) error {
	out := make([]adminViewInfo, 0, len(repository.AdminViews))
	for _, v := range repository.AdminViews {
		searchable := v.Searchable
		if searchable == nil {
			searchable = []string{}
		}
		out = append(out, adminViewInfo{
			Name: v.Name, Table: v.Kind.TableName(), Columns: v.Columns,
			Searchable: searchable, Sortable: v.SortColumns(),
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) adminQuery(c echo.Context) (repository.AdminView, *repository.AdminResult, error) {
	view, ok := repository.LookupAdminView(c.Param("view"))
	if !ok {
		return view, nil, echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("admin view %q not found", c.Param("view")))
	}
	q := repository.AdminQuery{Search: c.QueryParam("search"), SortBy: c.QueryParam("sort")}
	switch strings.ToLower(c.QueryParam("order")) {
	case "", "asc":
	case "desc":
		q.Desc = true
	default:
		return view, nil, echo.NewHTTPError(http.StatusBadRequest, "order must be asc or desc")
	}
	res, err := s.admin.List(c.Request().Context(), view, q)
	return view, res, err
}

func (s *Server) adminList(c echo.Context) error {
	view, res, err := s.adminQuery(c)
	if err != nil {
		return err
	}
	rows := make([]map[string]any, 0, len(res.Rows))
	for _, r := range res.Rows {
		row := make(map[string]any, len(res.Columns))
		for i, col := range res.Columns {
			row[col] = r[i]
		}
		rows = append(rows, row)
	}
	return c.JSON(http.StatusOK, adminListResponse{View: view.Name, Columns: res.Columns, Rows: rows})
}

func (s *Server) adminExport(c echo.Context) error {
	view, res, err := s.adminQuery(c)
	if err != nil {
		return err
	}
	f, err := adminWorkbook(view, res)
	if err != nil {
		return err
	}
	defer f.Close()

	filename := view.Kind.TableName() + ".xlsx"
	h := c.Response().Header()
	h.Set(echo.HeaderContentType, xlsxContentType)
	h.Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Response().WriteHeader(http.StatusOK)
	if err := f.Write(c.Response()); err != nil {
		logging.FromEcho(c).Error("writing admin export", zap.String("view", view.Name), zap.Error(err))
	}
	return nil
}

// adminWorkbook lays out one sheet named after the view: a bold header
// row, then one row per record.
func adminWorkbook(view repository.AdminView, res *repository.AdminResult) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := view.Name
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	for i, col := range res.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, col)
		f.SetCellStyle(sheet, cell, cell, header)
		name, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, name, name, 18)
	}
	for r, row := range res.Rows {
		for i, v := range row {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			f.SetCellValue(sheet, cell, v)
		}
	}
	return f, nil
}
