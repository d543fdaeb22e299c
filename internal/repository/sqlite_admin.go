package repository

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/alexanderramin/pmo/internal/db"
	"github.com/alexanderramin/pmo/internal/domain"
)

// AdminView describes one tabular listing in the admin surface. Column
// names come from this registry only, never from the request, so they are
// safe to splice into SQL.
type AdminView struct {
	Name       string
	Kind       domain.Kind
	Columns    []string
	Searchable []string
	Sortable   []string
}

// AdminViews is the admin registry, in menu order.
var AdminViews = []AdminView{
	{Name: "Business Units", Kind: domain.KindBusinessUnit,
		Columns: []string{"id", "name", "type", "manager_id"}, Searchable: []string{"name"}},
	{Name: "Projects", Kind: domain.KindProject,
		Columns:    []string{"id", "name", "tender_no", "businessunit_id", "category", "budget", "bid_value"},
		Searchable: []string{"name", "tender_no"}, Sortable: []string{"bid_due_date", "budget"}},
	{Name: "Control Accounts", Kind: domain.KindControlAccount,
		Columns: []string{"id", "name", "project_id", "budget"}},
	{Name: "Work Packages", Kind: domain.KindWorkPackage,
		Columns: []string{"id", "name", "controlaccount_id", "start_date", "end_date"}},
	{Name: "Positions", Kind: domain.KindPosition,
		Columns: []string{"id", "name", "businessunit_id", "parent_id"}},
	{Name: "Project Status History", Kind: domain.KindProjectStatusHistory,
		Columns: []string{"id", "project_id", "stage", "effective_date"}},
	{Name: "Resource Assignments", Kind: domain.KindResourceAssignment,
		Columns: []string{"id", "project_id", "position_id", "workpackage_id", "role", "allocation_percent"}},
	{Name: "Issues", Kind: domain.KindIssue,
		Columns: []string{"id", "project_id", "severity", "status", "owner_id"}, Searchable: []string{"name"}},
	{Name: "Change Requests", Kind: domain.KindChangeRequest,
		Columns: []string{"id", "project_id", "status", "requested_by_id", "submitted_on"}, Searchable: []string{"name"}},
	{Name: "Business Plans", Kind: domain.KindBusinessPlan,
		Columns: []string{"id", "name", "businessunit_id"}, Searchable: []string{"name"}},
}

// LookupAdminView finds a view by its table name.
func LookupAdminView(table string) (AdminView, bool) {
	for _, v := range AdminViews {
		if v.Kind.TableName() == strings.ToLower(table) {
			return v, true
		}
	}
	return AdminView{}, false
}

// SortColumns lists the columns a view may be ordered by. Views without an
// explicit list sort on any displayed column.
func (v AdminView) SortColumns() []string {
	if len(v.Sortable) > 0 {
		return append([]string{"id"}, v.Sortable...)
	}
	return v.Columns
}

// AdminQuery narrows and orders an admin listing.
type AdminQuery struct {
	Search string
	SortBy string
	Desc   bool
}

// AdminResult is a listing with values in column order.
type AdminResult struct {
	Columns []string
	Rows    [][]any
}

// SQLiteAdminRepo runs admin listings straight against the entity tables.
type SQLiteAdminRepo struct {
	db db.DBTX
}

func NewSQLiteAdminRepo(conn db.DBTX) *SQLiteAdminRepo {
	return &SQLiteAdminRepo{db: conn}
}

func (r *SQLiteAdminRepo) List(ctx context.Context, view AdminView, q AdminQuery) (*AdminResult, error) {
	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = "id"
	}
	if !slices.Contains(view.SortColumns(), sortBy) {
		return nil, domain.Invalidf("%s cannot be sorted by %q", view.Name, sortBy)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s", strings.Join(view.Columns, ", "), view.Kind.TableName())

	var args []any
	if search := strings.TrimSpace(q.Search); search != "" {
		if len(view.Searchable) == 0 {
			return nil, domain.Invalidf("%s does not support search", view.Name)
		}
		clauses := make([]string, 0, len(view.Searchable))
		for _, col := range view.Searchable {
			clauses = append(clauses, col+" LIKE ? ESCAPE '\\'")
			args = append(args, "%"+escapeLike(search)+"%")
		}
		sb.WriteString(" WHERE " + strings.Join(clauses, " OR "))
	}

	dir := "ASC"
	if q.Desc {
		dir = "DESC"
	}
	fmt.Fprintf(&sb, " ORDER BY %s %s, id ASC", sortBy, dir)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", view.Kind.TableName(), err)
	}
	defer rows.Close()

	result := &AdminResult{Columns: view.Columns}
	for rows.Next() {
		vals := make([]any, len(view.Columns))
		ptrs := make([]any, len(vals))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", view.Kind.TableName(), err)
		}
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", view.Kind.TableName(), err)
	}
	return result, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
