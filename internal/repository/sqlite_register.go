package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/pmo/internal/db"
	"github.com/alexanderramin/pmo/internal/domain"
)

// SQLiteRegisterRepo implements RegisterRepo.
type SQLiteRegisterRepo struct {
	db db.DBTX
}

func NewSQLiteRegisterRepo(conn db.DBTX) *SQLiteRegisterRepo {
	return &SQLiteRegisterRepo{db: conn}
}

func (r *SQLiteRegisterRepo) CreateRisk(ctx context.Context, risk *domain.Risk) error {
	res, err := r.db.ExecContext(ctx, `INSERT INTO risk (name, project_id) VALUES (?, ?)`, risk.Name, risk.ProjectID)
	if err != nil {
		return fmt.Errorf("inserting risk: %w", err)
	}
	risk.ID, err = insertedID(res)
	return err
}

func (r *SQLiteRegisterRepo) ListRisks(ctx context.Context, projectID int64) ([]*domain.Risk, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, project_id FROM risk WHERE project_id = ? ORDER BY id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing risks: %w", err)
	}
	return collect(rows, "risks", func(s scanner) (*domain.Risk, error) {
		var risk domain.Risk
		return &risk, s.Scan(&risk.ID, &risk.Name, &risk.ProjectID)
	})
}

func (r *SQLiteRegisterRepo) CreateContract(ctx context.Context, c *domain.Contract) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO contract (name, project_id, value, status) VALUES (?, ?, ?, ?)`,
		c.Name, c.ProjectID, c.Value, c.Status)
	if err != nil {
		return fmt.Errorf("inserting contract: %w", err)
	}
	c.ID, err = insertedID(res)
	return err
}

func (r *SQLiteRegisterRepo) ListContracts(ctx context.Context, projectID int64) ([]*domain.Contract, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, project_id, value, status FROM contract WHERE project_id = ? ORDER BY id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing contracts: %w", err)
	}
	return collect(rows, "contracts", func(s scanner) (*domain.Contract, error) {
		var c domain.Contract
		return &c, s.Scan(&c.ID, &c.Name, &c.ProjectID, &c.Value, &c.Status)
	})
}

func (r *SQLiteRegisterRepo) CreateMilestone(ctx context.Context, m *domain.Milestone) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO milestone (name, project_id, due_date, is_complete) VALUES (?, ?, ?, ?)`,
		m.Name, m.ProjectID, nullableDateValue(m.DueDate), boolToInt(m.IsComplete))
	if err != nil {
		return fmt.Errorf("inserting milestone: %w", err)
	}
	m.ID, err = insertedID(res)
	return err
}

func (r *SQLiteRegisterRepo) ListMilestones(ctx context.Context, projectID int64) ([]*domain.Milestone, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, project_id, due_date, is_complete FROM milestone WHERE project_id = ? ORDER BY id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing milestones: %w", err)
	}
	return collect(rows, "milestones", func(s scanner) (*domain.Milestone, error) {
		var m domain.Milestone
		var due sql.NullString
		var complete int
		if err := s.Scan(&m.ID, &m.Name, &m.ProjectID, &due, &complete); err != nil {
			return nil, err
		}
		m.DueDate = parseNullableDate(due)
		m.IsComplete = intToBool(complete)
		return &m, nil
	})
}

func (r *SQLiteRegisterRepo) CreateBudget(ctx context.Context, b *domain.Budget) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO budget (name, project_id, workpackage_id, planned, actual) VALUES (?, ?, ?, ?, ?)`,
		b.Name, b.ProjectID, nullableInt64Value(b.WorkPackageID), b.Planned, b.Actual)
	if err != nil {
		return fmt.Errorf("inserting budget: %w", err)
	}
	b.ID, err = insertedID(res)
	return err
}

func (r *SQLiteRegisterRepo) ListBudgets(ctx context.Context, projectID int64) ([]*domain.Budget, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, project_id, workpackage_id, planned, actual FROM budget WHERE project_id = ? ORDER BY id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}
	return collect(rows, "budgets", func(s scanner) (*domain.Budget, error) {
		var b domain.Budget
		var wp sql.NullInt64
		if err := s.Scan(&b.ID, &b.Name, &b.ProjectID, &wp, &b.Planned, &b.Actual); err != nil {
			return nil, err
		}
		b.WorkPackageID = nullableInt64(wp)
		return &b, nil
	})
}

func (r *SQLiteRegisterRepo) CreateExpense(ctx context.Context, e *domain.Expense) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expense (name, project_id, workpackage_id, amount, date, description) VALUES (?, ?, ?, ?, ?, ?)`,
		e.Name, e.ProjectID, nullableInt64Value(e.WorkPackageID), e.Amount, e.Date.Format(dateLayout),
		nullableStringValue(e.Description))
	if err != nil {
		return fmt.Errorf("inserting expense: %w", err)
	}
	e.ID, err = insertedID(res)
	return err
}

func (r *SQLiteRegisterRepo) ListExpenses(ctx context.Context, projectID int64) ([]*domain.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, project_id, workpackage_id, amount, date, description FROM expense WHERE project_id = ? ORDER BY date, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	return collect(rows, "expenses", func(s scanner) (*domain.Expense, error) {
		var e domain.Expense
		var wp sql.NullInt64
		var date string
		var desc sql.NullString
		if err := s.Scan(&e.ID, &e.Name, &e.ProjectID, &wp, &e.Amount, &date, &desc); err != nil {
			return nil, err
		}
		e.WorkPackageID = nullableInt64(wp)
		e.Description = nullableString(desc)
		var err error
		if e.Date, err = parseDate(date); err != nil {
			return nil, err
		}
		return &e, nil
	})
}

// AppendStatus adds an entry to the project's stage log. Entries are never
// rewritten.
func (r *SQLiteRegisterRepo) AppendStatus(ctx context.Context, h *domain.ProjectStatusHistory) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO projectstatushistory (name, project_id, stage, effective_date, notes) VALUES (?, ?, ?, ?, ?)`,
		h.Name, h.ProjectID, string(h.Stage), h.EffectiveDate.Format(dateLayout), nullableStringValue(h.Notes))
	if err != nil {
		return fmt.Errorf("inserting status history: %w", err)
	}
	h.ID, err = insertedID(res)
	return err
}

// ListStatusHistory returns entries oldest first; same-day entries keep
// insertion order.
func (r *SQLiteRegisterRepo) ListStatusHistory(ctx context.Context, projectID int64) ([]*domain.ProjectStatusHistory, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, project_id, stage, effective_date, notes FROM projectstatushistory
		 WHERE project_id = ? ORDER BY effective_date, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing status history: %w", err)
	}
	return collect(rows, "status history", func(s scanner) (*domain.ProjectStatusHistory, error) {
		var h domain.ProjectStatusHistory
		var stage, effective string
		var notes sql.NullString
		if err := s.Scan(&h.ID, &h.Name, &h.ProjectID, &stage, &effective, &notes); err != nil {
			return nil, err
		}
		h.Stage = domain.LifecycleStage(stage)
		h.Notes = nullableString(notes)
		var err error
		if h.EffectiveDate, err = parseDate(effective); err != nil {
			return nil, err
		}
		return &h, nil
	})
}
