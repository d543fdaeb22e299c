package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/pmo/internal/db"
	"github.com/alexanderramin/pmo/internal/domain"
)

// SQLitePlanRepo implements PlanRepo over the businessplan, objective,
// keyresult and initiative tables.
type SQLitePlanRepo struct {
	db db.DBTX
}

func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

func (r *SQLitePlanRepo) CreatePlan(ctx context.Context, p *domain.BusinessPlan) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO businessplan (name, businessunit_id) VALUES (?, ?)`, p.Name, p.BusinessUnitID)
	if err != nil {
		return fmt.Errorf("inserting business plan: %w", err)
	}
	p.ID, err = insertedID(res)
	return err
}

func (r *SQLitePlanRepo) GetPlan(ctx context.Context, id int64) (*domain.BusinessPlan, error) {
	var p domain.BusinessPlan
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, businessunit_id FROM businessplan WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.BusinessUnitID)
	if err != nil {
		return nil, notFound(err, domain.KindBusinessPlan, id)
	}
	return &p, nil
}

func (r *SQLitePlanRepo) ListPlans(ctx context.Context, businessUnitID *int64) ([]*domain.BusinessPlan, error) {
	query := `SELECT id, name, businessunit_id FROM businessplan`
	var args []any
	if businessUnitID != nil {
		query += ` WHERE businessunit_id = ?`
		args = append(args, *businessUnitID)
	}
	rows, err := r.db.QueryContext(ctx, query+` ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("listing business plans: %w", err)
	}
	return collect(rows, "business plans", func(s scanner) (*domain.BusinessPlan, error) {
		var p domain.BusinessPlan
		return &p, s.Scan(&p.ID, &p.Name, &p.BusinessUnitID)
	})
}

func (r *SQLitePlanRepo) DeletePlan(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM businessplan WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting business plan: %w", err)
	}
	return affectedOrNotFound(res, domain.KindBusinessPlan, id)
}

func (r *SQLitePlanRepo) CreateObjective(ctx context.Context, o *domain.Objective) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO objective (name, businessplan_id) VALUES (?, ?)`, o.Name, o.BusinessPlanID)
	if err != nil {
		return fmt.Errorf("inserting objective: %w", err)
	}
	o.ID, err = insertedID(res)
	return err
}

func (r *SQLitePlanRepo) GetObjective(ctx context.Context, id int64) (*domain.Objective, error) {
	var o domain.Objective
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, businessplan_id FROM objective WHERE id = ?`, id).
		Scan(&o.ID, &o.Name, &o.BusinessPlanID)
	if err != nil {
		return nil, notFound(err, domain.KindObjective, id)
	}
	return &o, nil
}

func (r *SQLitePlanRepo) ListObjectives(ctx context.Context, planID int64) ([]*domain.Objective, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, businessplan_id FROM objective WHERE businessplan_id = ? ORDER BY id`, planID)
	if err != nil {
		return nil, fmt.Errorf("listing objectives: %w", err)
	}
	return collect(rows, "objectives", func(s scanner) (*domain.Objective, error) {
		var o domain.Objective
		return &o, s.Scan(&o.ID, &o.Name, &o.BusinessPlanID)
	})
}

func (r *SQLitePlanRepo) CreateKeyResult(ctx context.Context, k *domain.KeyResult) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO keyresult (name, objective_id) VALUES (?, ?)`, k.Name, k.ObjectiveID)
	if err != nil {
		return fmt.Errorf("inserting key result: %w", err)
	}
	k.ID, err = insertedID(res)
	return err
}

func (r *SQLitePlanRepo) GetKeyResult(ctx context.Context, id int64) (*domain.KeyResult, error) {
	var k domain.KeyResult
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, objective_id FROM keyresult WHERE id = ?`, id).
		Scan(&k.ID, &k.Name, &k.ObjectiveID)
	if err != nil {
		return nil, notFound(err, domain.KindKeyResult, id)
	}
	return &k, nil
}

func (r *SQLitePlanRepo) ListKeyResults(ctx context.Context, objectiveID int64) ([]*domain.KeyResult, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, objective_id FROM keyresult WHERE objective_id = ? ORDER BY id`, objectiveID)
	if err != nil {
		return nil, fmt.Errorf("listing key results: %w", err)
	}
	return collect(rows, "key results", func(s scanner) (*domain.KeyResult, error) {
		var k domain.KeyResult
		return &k, s.Scan(&k.ID, &k.Name, &k.ObjectiveID)
	})
}

func (r *SQLitePlanRepo) CreateInitiative(ctx context.Context, i *domain.Initiative) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO initiative (name, keyresult_id) VALUES (?, ?)`, i.Name, i.KeyResultID)
	if err != nil {
		return fmt.Errorf("inserting initiative: %w", err)
	}
	i.ID, err = insertedID(res)
	return err
}

func (r *SQLitePlanRepo) ListInitiatives(ctx context.Context, keyResultID int64) ([]*domain.Initiative, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, keyresult_id FROM initiative WHERE keyresult_id = ? ORDER BY id`, keyResultID)
	if err != nil {
		return nil, fmt.Errorf("listing initiatives: %w", err)
	}
	return collect(rows, "initiatives", func(s scanner) (*domain.Initiative, error) {
		var i domain.Initiative
		return &i, s.Scan(&i.ID, &i.Name, &i.KeyResultID)
	})
}
