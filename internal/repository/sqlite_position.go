package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/pmo/internal/db"
	"github.com/alexanderramin/pmo/internal/domain"
)

// SQLitePositionRepo implements PositionRepo.
type SQLitePositionRepo struct {
	db db.DBTX
}

func NewSQLitePositionRepo(conn db.DBTX) *SQLitePositionRepo {
	return &SQLitePositionRepo{db: conn}
}

const positionColumns = `id, name, type, businessunit_id, parent_id`

func (r *SQLitePositionRepo) Create(ctx context.Context, p *domain.Position) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO position (name, type, businessunit_id, parent_id) VALUES (?, ?, ?, ?)`,
		p.Name, p.Type, p.BusinessUnitID, nullableInt64Value(p.ParentID))
	if err != nil {
		return fmt.Errorf("inserting position: %w", err)
	}
	p.ID, err = insertedID(res)
	return err
}

func (r *SQLitePositionRepo) GetByID(ctx context.Context, id int64) (*domain.Position, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+positionColumns+` FROM position WHERE id = ?`, id)
	p, err := scanPosition(row)
	if err != nil {
		return nil, notFound(err, domain.KindPosition, id)
	}
	return p, nil
}

func (r *SQLitePositionRepo) List(ctx context.Context) ([]*domain.Position, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+positionColumns+` FROM position ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing positions: %w", err)
	}
	return collect(rows, "positions", scanPosition)
}

func (r *SQLitePositionRepo) ListByBusinessUnit(ctx context.Context, businessUnitID int64) ([]*domain.Position, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+positionColumns+` FROM position WHERE businessunit_id = ? ORDER BY id`, businessUnitID)
	if err != nil {
		return nil, fmt.Errorf("listing positions by business unit: %w", err)
	}
	return collect(rows, "positions", scanPosition)
}

func (r *SQLitePositionRepo) ListChildren(ctx context.Context, parentID int64) ([]*domain.Position, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+positionColumns+` FROM position WHERE parent_id = ? ORDER BY id`, parentID)
	if err != nil {
		return nil, fmt.Errorf("listing child positions: %w", err)
	}
	return collect(rows, "positions", scanPosition)
}

func (r *SQLitePositionRepo) Update(ctx context.Context, p *domain.Position) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE position SET name = ?, type = ?, businessunit_id = ?, parent_id = ? WHERE id = ?`,
		p.Name, p.Type, p.BusinessUnitID, nullableInt64Value(p.ParentID), p.ID)
	if err != nil {
		return fmt.Errorf("updating position: %w", err)
	}
	return affectedOrNotFound(res, domain.KindPosition, p.ID)
}

func (r *SQLitePositionRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM position WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting position: %w", err)
	}
	return affectedOrNotFound(res, domain.KindPosition, id)
}

func scanPosition(s scanner) (*domain.Position, error) {
	var p domain.Position
	var parentID sql.NullInt64
	if err := s.Scan(&p.ID, &p.Name, &p.Type, &p.BusinessUnitID, &parentID); err != nil {
		return nil, err
	}
	p.ParentID = nullableInt64(parentID)
	return &p, nil
}
