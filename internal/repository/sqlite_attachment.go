package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/pmo/internal/db"
	"github.com/alexanderramin/pmo/internal/domain"
)

// SQLiteResourceAssignmentRepo implements ResourceAssignmentRepo.
type SQLiteResourceAssignmentRepo struct {
	db db.DBTX
}

func NewSQLiteResourceAssignmentRepo(conn db.DBTX) *SQLiteResourceAssignmentRepo {
	return &SQLiteResourceAssignmentRepo{db: conn}
}

const resourceAssignmentColumns = `id, name, project_id, position_id, workpackage_id, task_id, role,
	allocation_percent, start_date, end_date`

func (r *SQLiteResourceAssignmentRepo) Create(ctx context.Context, a *domain.ResourceAssignment) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO resourceassignment (name, project_id, position_id, workpackage_id, task_id, role,
			allocation_percent, start_date, end_date) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Name, a.ProjectID, a.PositionID, nullableInt64Value(a.WorkPackageID), nullableInt64Value(a.TaskID),
		a.Role, a.AllocationPercent, a.StartDate.Format(dateLayout), nullableDateValue(a.EndDate))
	if err != nil {
		return fmt.Errorf("inserting resource assignment: %w", err)
	}
	a.ID, err = insertedID(res)
	return err
}

func (r *SQLiteResourceAssignmentRepo) GetByID(ctx context.Context, id int64) (*domain.ResourceAssignment, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+resourceAssignmentColumns+` FROM resourceassignment WHERE id = ?`, id)
	a, err := scanResourceAssignment(row)
	if err != nil {
		return nil, notFound(err, domain.KindResourceAssignment, id)
	}
	return a, nil
}

func (r *SQLiteResourceAssignmentRepo) ListByProject(ctx context.Context, projectID int64) ([]*domain.ResourceAssignment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+resourceAssignmentColumns+` FROM resourceassignment WHERE project_id = ? ORDER BY id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing resource assignments: %w", err)
	}
	return collect(rows, "resource assignments", scanResourceAssignment)
}

func (r *SQLiteResourceAssignmentRepo) Update(ctx context.Context, a *domain.ResourceAssignment) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE resourceassignment SET name = ?, position_id = ?, workpackage_id = ?, task_id = ?, role = ?,
			allocation_percent = ?, start_date = ?, end_date = ? WHERE id = ?`,
		a.Name, a.PositionID, nullableInt64Value(a.WorkPackageID), nullableInt64Value(a.TaskID), a.Role,
		a.AllocationPercent, a.StartDate.Format(dateLayout), nullableDateValue(a.EndDate), a.ID)
	if err != nil {
		return fmt.Errorf("updating resource assignment: %w", err)
	}
	return affectedOrNotFound(res, domain.KindResourceAssignment, a.ID)
}

func (r *SQLiteResourceAssignmentRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM resourceassignment WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting resource assignment: %w", err)
	}
	return affectedOrNotFound(res, domain.KindResourceAssignment, id)
}

func scanResourceAssignment(s scanner) (*domain.ResourceAssignment, error) {
	var a domain.ResourceAssignment
	var wp, task sql.NullInt64
	var start string
	var end sql.NullString
	if err := s.Scan(&a.ID, &a.Name, &a.ProjectID, &a.PositionID, &wp, &task, &a.Role,
		&a.AllocationPercent, &start, &end); err != nil {
		return nil, err
	}
	a.WorkPackageID = nullableInt64(wp)
	a.TaskID = nullableInt64(task)
	a.EndDate = parseNullableDate(end)
	var err error
	if a.StartDate, err = parseDate(start); err != nil {
		return nil, err
	}
	return &a, nil
}

// SQLiteIssueRepo implements IssueRepo.
type SQLiteIssueRepo struct {
	db db.DBTX
}

func NewSQLiteIssueRepo(conn db.DBTX) *SQLiteIssueRepo {
	return &SQLiteIssueRepo{db: conn}
}

const issueColumns = `id, name, project_id, workpackage_id, task_id, owner_id, status, severity,
	opened_on, closed_on, description`

func (r *SQLiteIssueRepo) Create(ctx context.Context, i *domain.Issue) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO issue (name, project_id, workpackage_id, task_id, owner_id, status, severity,
			opened_on, closed_on, description) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		i.Name, i.ProjectID, nullableInt64Value(i.WorkPackageID), nullableInt64Value(i.TaskID),
		nullableInt64Value(i.OwnerID), string(i.Status), i.Severity, i.OpenedOn.Format(dateLayout),
		nullableDateValue(i.ClosedOn), nullableStringValue(i.Description))
	if err != nil {
		return fmt.Errorf("inserting issue: %w", err)
	}
	i.ID, err = insertedID(res)
	return err
}

func (r *SQLiteIssueRepo) GetByID(ctx context.Context, id int64) (*domain.Issue, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+issueColumns+` FROM issue WHERE id = ?`, id)
	i, err := scanIssue(row)
	if err != nil {
		return nil, notFound(err, domain.KindIssue, id)
	}
	return i, nil
}

func (r *SQLiteIssueRepo) ListByProject(ctx context.Context, projectID int64) ([]*domain.Issue, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+issueColumns+` FROM issue WHERE project_id = ? ORDER BY id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing issues: %w", err)
	}
	return collect(rows, "issues", scanIssue)
}

func (r *SQLiteIssueRepo) Update(ctx context.Context, i *domain.Issue) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE issue SET name = ?, workpackage_id = ?, task_id = ?, owner_id = ?, status = ?, severity = ?,
			opened_on = ?, closed_on = ?, description = ? WHERE id = ?`,
		i.Name, nullableInt64Value(i.WorkPackageID), nullableInt64Value(i.TaskID), nullableInt64Value(i.OwnerID),
		string(i.Status), i.Severity, i.OpenedOn.Format(dateLayout), nullableDateValue(i.ClosedOn),
		nullableStringValue(i.Description), i.ID)
	if err != nil {
		return fmt.Errorf("updating issue: %w", err)
	}
	return affectedOrNotFound(res, domain.KindIssue, i.ID)
}

func (r *SQLiteIssueRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM issue WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting issue: %w", err)
	}
	return affectedOrNotFound(res, domain.KindIssue, id)
}

func scanIssue(s scanner) (*domain.Issue, error) {
	var i domain.Issue
	var wp, task, owner sql.NullInt64
	var status, opened string
	var closed, desc sql.NullString
	if err := s.Scan(&i.ID, &i.Name, &i.ProjectID, &wp, &task, &owner, &status, &i.Severity,
		&opened, &closed, &desc); err != nil {
		return nil, err
	}
	i.WorkPackageID = nullableInt64(wp)
	i.TaskID = nullableInt64(task)
	i.OwnerID = nullableInt64(owner)
	i.Status = domain.IssueStatus(status)
	i.ClosedOn = parseNullableDate(closed)
	i.Description = nullableString(desc)
	var err error
	if i.OpenedOn, err = parseDate(opened); err != nil {
		return nil, err
	}
	return &i, nil
}

// SQLiteChangeRequestRepo implements ChangeRequestRepo.
type SQLiteChangeRequestRepo struct {
	db db.DBTX
}

func NewSQLiteChangeRequestRepo(conn db.DBTX) *SQLiteChangeRequestRepo {
	return &SQLiteChangeRequestRepo{db: conn}
}

const changeRequestColumns = `id, name, project_id, workpackage_id, requested_by_id, status,
	submitted_on, approved_on, description, impact_summary`

func (r *SQLiteChangeRequestRepo) Create(ctx context.Context, c *domain.ChangeRequest) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO changerequest (name, project_id, workpackage_id, requested_by_id, status,
			submitted_on, approved_on, description, impact_summary) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Name, c.ProjectID, nullableInt64Value(c.WorkPackageID), nullableInt64Value(c.RequestedByID),
		string(c.Status), nullableDateValue(c.SubmittedOn), nullableDateValue(c.ApprovedOn),
		nullableStringValue(c.Description), nullableStringValue(c.ImpactSummary))
	if err != nil {
		return fmt.Errorf("inserting change request: %w", err)
	}
	c.ID, err = insertedID(res)
	return err
}

func (r *SQLiteChangeRequestRepo) GetByID(ctx context.Context, id int64) (*domain.ChangeRequest, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+changeRequestColumns+` FROM changerequest WHERE id = ?`, id)
	c, err := scanChangeRequest(row)
	if err != nil {
		return nil, notFound(err, domain.KindChangeRequest, id)
	}
	return c, nil
}

func (r *SQLiteChangeRequestRepo) ListByProject(ctx context.Context, projectID int64) ([]*domain.ChangeRequest, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+changeRequestColumns+` FROM changerequest WHERE project_id = ? ORDER BY id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing change requests: %w", err)
	}
	return collect(rows, "change requests", scanChangeRequest)
}

func (r *SQLiteChangeRequestRepo) Update(ctx context.Context, c *domain.ChangeRequest) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE changerequest SET name = ?, workpackage_id = ?, requested_by_id = ?, status = ?,
			submitted_on = ?, approved_on = ?, description = ?, impact_summary = ? WHERE id = ?`,
		c.Name, nullableInt64Value(c.WorkPackageID), nullableInt64Value(c.RequestedByID), string(c.Status),
		nullableDateValue(c.SubmittedOn), nullableDateValue(c.ApprovedOn),
		nullableStringValue(c.Description), nullableStringValue(c.ImpactSummary), c.ID)
	if err != nil {
		return fmt.Errorf("updating change request: %w", err)
	}
	return affectedOrNotFound(res, domain.KindChangeRequest, c.ID)
}

func (r *SQLiteChangeRequestRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM changerequest WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting change request: %w", err)
	}
	return affectedOrNotFound(res, domain.KindChangeRequest, id)
}

func scanChangeRequest(s scanner) (*domain.ChangeRequest, error) {
	var c domain.ChangeRequest
	var wp, requestedBy sql.NullInt64
	var status string
	var submitted, approved, desc, impact sql.NullString
	if err := s.Scan(&c.ID, &c.Name, &c.ProjectID, &wp, &requestedBy, &status,
		&submitted, &approved, &desc, &impact); err != nil {
		return nil, err
	}
	c.WorkPackageID = nullableInt64(wp)
	c.RequestedByID = nullableInt64(requestedBy)
	c.Status = domain.ChangeRequestStatus(status)
	c.SubmittedOn = parseNullableDate(submitted)
	c.ApprovedOn = parseNullableDate(approved)
	c.Description = nullableString(desc)
	c.ImpactSummary = nullableString(impact)
	return &c, nil
}
