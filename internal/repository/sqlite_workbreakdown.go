package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/pmo/internal/db"
	"github.com/alexanderramin/pmo/internal/domain"
)

// SQLiteWorkBreakdownRepo implements WorkBreakdownRepo.
type SQLiteWorkBreakdownRepo struct {
	db db.DBTX
}

func NewSQLiteWorkBreakdownRepo(conn db.DBTX) *SQLiteWorkBreakdownRepo {
	return &SQLiteWorkBreakdownRepo{db: conn}
}

// Control accounts

func (r *SQLiteWorkBreakdownRepo) CreateControlAccount(ctx context.Context, c *domain.ControlAccount) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO controlaccount (name, project_id, budget) VALUES (?, ?, ?)`,
		c.Name, c.ProjectID, c.Budget)
	if err != nil {
		return fmt.Errorf("inserting control account: %w", err)
	}
	c.ID, err = insertedID(res)
	return err
}

func (r *SQLiteWorkBreakdownRepo) GetControlAccount(ctx context.Context, id int64) (*domain.ControlAccount, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, project_id, budget FROM controlaccount WHERE id = ?`, id)
	c, err := scanControlAccount(row)
	if err != nil {
		return nil, notFound(err, domain.KindControlAccount, id)
	}
	return c, nil
}

func (r *SQLiteWorkBreakdownRepo) ListControlAccounts(ctx context.Context, projectID int64) ([]*domain.ControlAccount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, project_id, budget FROM controlaccount WHERE project_id = ? ORDER BY id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing control accounts: %w", err)
	}
	return collect(rows, "control accounts", scanControlAccount)
}

func (r *SQLiteWorkBreakdownRepo) DeleteControlAccount(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM controlaccount WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting control account: %w", err)
	}
	return affectedOrNotFound(res, domain.KindControlAccount, id)
}

func scanControlAccount(s scanner) (*domain.ControlAccount, error) {
	var c domain.ControlAccount
	if err := s.Scan(&c.ID, &c.Name, &c.ProjectID, &c.Budget); err != nil {
		return nil, err
	}
	return &c, nil
}

// Work packages

const workPackageColumns = `id, name, controlaccount_id, is_planned, budget, start_date, end_date`

func (r *SQLiteWorkBreakdownRepo) CreateWorkPackage(ctx context.Context, w *domain.WorkPackage) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO workpackage (name, controlaccount_id, is_planned, budget, start_date, end_date) VALUES (?, ?, ?, ?, ?, ?)`,
		w.Name, w.ControlAccountID, boolToInt(w.IsPlanned), w.Budget,
		nullableDateValue(w.StartDate), nullableDateValue(w.EndDate))
	if err != nil {
		return fmt.Errorf("inserting work package: %w", err)
	}
	w.ID, err = insertedID(res)
	return err
}

func (r *SQLiteWorkBreakdownRepo) GetWorkPackage(ctx context.Context, id int64) (*domain.WorkPackage, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+workPackageColumns+` FROM workpackage WHERE id = ?`, id)
	w, err := scanWorkPackage(row)
	if err != nil {
		return nil, notFound(err, domain.KindWorkPackage, id)
	}
	return w, nil
}

func (r *SQLiteWorkBreakdownRepo) ListWorkPackages(ctx context.Context, controlAccountID int64) ([]*domain.WorkPackage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+workPackageColumns+` FROM workpackage WHERE controlaccount_id = ? ORDER BY id`, controlAccountID)
	if err != nil {
		return nil, fmt.Errorf("listing work packages: %w", err)
	}
	return collect(rows, "work packages", scanWorkPackage)
}

func (r *SQLiteWorkBreakdownRepo) DeleteWorkPackage(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM workpackage WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting work package: %w", err)
	}
	return affectedOrNotFound(res, domain.KindWorkPackage, id)
}

func scanWorkPackage(s scanner) (*domain.WorkPackage, error) {
	var w domain.WorkPackage
	var isPlanned int
	var start, end sql.NullString
	if err := s.Scan(&w.ID, &w.Name, &w.ControlAccountID, &isPlanned, &w.Budget, &start, &end); err != nil {
		return nil, err
	}
	w.IsPlanned = intToBool(isPlanned)
	w.StartDate = parseNullableDate(start)
	w.EndDate = parseNullableDate(end)
	return &w, nil
}

// Tasks

const taskColumns = `id, name, workpackage_id, start_date, end_date, is_complete`

func (r *SQLiteWorkBreakdownRepo) CreateTask(ctx context.Context, t *domain.Task) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO task (name, workpackage_id, start_date, end_date, is_complete) VALUES (?, ?, ?, ?, ?)`,
		t.Name, t.WorkPackageID, nullableDateValue(t.StartDate), nullableDateValue(t.EndDate), boolToInt(t.IsComplete))
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	t.ID, err = insertedID(res)
	return err
}

func (r *SQLiteWorkBreakdownRepo) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM task WHERE id = ?`, id)
	t, err := scanTask(row)
	if err != nil {
		return nil, notFound(err, domain.KindTask, id)
	}
	return t, nil
}

func (r *SQLiteWorkBreakdownRepo) ListTasks(ctx context.Context, workPackageID int64) ([]*domain.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM task WHERE workpackage_id = ? ORDER BY id`, workPackageID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return collect(rows, "tasks", scanTask)
}

func (r *SQLiteWorkBreakdownRepo) DeleteTask(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM task WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return affectedOrNotFound(res, domain.KindTask, id)
}

func scanTask(s scanner) (*domain.Task, error) {
	var t domain.Task
	var start, end sql.NullString
	var complete int
	if err := s.Scan(&t.ID, &t.Name, &t.WorkPackageID, &start, &end, &complete); err != nil {
		return nil, err
	}
	t.StartDate = parseNullableDate(start)
	t.EndDate = parseNullableDate(end)
	t.IsComplete = intToBool(complete)
	return &t, nil
}

// Dependencies

func (r *SQLiteWorkBreakdownRepo) CreateDependency(ctx context.Context, d *domain.Dependency) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO dependency (predecessor_id, successor_id) VALUES (?, ?)`, d.PredecessorID, d.SuccessorID)
	if err != nil {
		return fmt.Errorf("inserting dependency: %w", err)
	}
	d.ID, err = insertedID(res)
	return err
}

// ListDependencies returns every edge touching taskID, in either direction.
func (r *SQLiteWorkBreakdownRepo) ListDependencies(ctx context.Context, taskID int64) ([]*domain.Dependency, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, predecessor_id, successor_id FROM dependency
		 WHERE predecessor_id = ? OR successor_id = ? ORDER BY id`, taskID, taskID)
	if err != nil {
		return nil, fmt.Errorf("listing dependencies: %w", err)
	}
	return collect(rows, "dependencies", func(s scanner) (*domain.Dependency, error) {
		var d domain.Dependency
		return &d, s.Scan(&d.ID, &d.PredecessorID, &d.SuccessorID)
	})
}
