package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/pmo/internal/db"
	"github.com/alexanderramin/pmo/internal/domain"
)

// SQLiteBusinessUnitRepo implements BusinessUnitRepo.
type SQLiteBusinessUnitRepo struct {
	db db.DBTX
}

func NewSQLiteBusinessUnitRepo(conn db.DBTX) *SQLiteBusinessUnitRepo {
	return &SQLiteBusinessUnitRepo{db: conn}
}

const businessUnitColumns = `id, name, type, parent_id, manager_id`

func (r *SQLiteBusinessUnitRepo) Create(ctx context.Context, b *domain.BusinessUnit) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO businessunit (name, type, parent_id, manager_id) VALUES (?, ?, ?, ?)`,
		b.Name, b.Type, nullableInt64Value(b.ParentID), nullableInt64Value(b.ManagerID))
	if err != nil {
		return fmt.Errorf("inserting business unit: %w", err)
	}
	b.ID, err = insertedID(res)
	return err
}

func (r *SQLiteBusinessUnitRepo) GetByID(ctx context.Context, id int64) (*domain.BusinessUnit, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+businessUnitColumns+` FROM businessunit WHERE id = ?`, id)
	b, err := scanBusinessUnit(row)
	if err != nil {
		return nil, notFound(err, domain.KindBusinessUnit, id)
	}
	return b, nil
}

func (r *SQLiteBusinessUnitRepo) List(ctx context.Context) ([]*domain.BusinessUnit, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+businessUnitColumns+` FROM businessunit ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing business units: %w", err)
	}
	return collect(rows, "business units", scanBusinessUnit)
}

func (r *SQLiteBusinessUnitRepo) ListChildren(ctx context.Context, parentID int64) ([]*domain.BusinessUnit, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+businessUnitColumns+` FROM businessunit WHERE parent_id = ? ORDER BY id`, parentID)
	if err != nil {
		return nil, fmt.Errorf("listing child business units: %w", err)
	}
	return collect(rows, "business units", scanBusinessUnit)
}

func (r *SQLiteBusinessUnitRepo) Update(ctx context.Context, b *domain.BusinessUnit) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE businessunit SET name = ?, type = ?, parent_id = ?, manager_id = ? WHERE id = ?`,
		b.Name, b.Type, nullableInt64Value(b.ParentID), nullableInt64Value(b.ManagerID), b.ID)
	if err != nil {
		return fmt.Errorf("updating business unit: %w", err)
	}
	return affectedOrNotFound(res, domain.KindBusinessUnit, b.ID)
}

func (r *SQLiteBusinessUnitRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM businessunit WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting business unit: %w", err)
	}
	return affectedOrNotFound(res, domain.KindBusinessUnit, id)
}

func scanBusinessUnit(s scanner) (*domain.BusinessUnit, error) {
	var b domain.BusinessUnit
	var parentID, managerID sql.NullInt64
	if err := s.Scan(&b.ID, &b.Name, &b.Type, &parentID, &managerID); err != nil {
		return nil, err
	}
	b.ParentID = nullableInt64(parentID)
	b.ManagerID = nullableInt64(managerID)
	return &b, nil
}
