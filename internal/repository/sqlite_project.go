package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/pmo/internal/db"
	"github.com/alexanderramin/pmo/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo.
type SQLiteProjectRepo struct {
	db db.DBTX
}

func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

const projectColumns = `id, name, businessunit_id, description, tender_no, scope_of_work, category,
	funding_currency, bid_issue_date, tender_purchase_date, tender_purchase_fee, bid_due_date,
	completion_period_m, bid_validity_d, include_vat, budget, bid_value, perf_bond_p, advance_pmt_p`

// Create inserts p. A duplicate tender number surfaces as the driver's
// UNIQUE constraint error.
func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO project (name, businessunit_id, description, tender_no, scope_of_work, category,
		funding_currency, bid_issue_date, tender_purchase_date, tender_purchase_fee, bid_due_date,
		completion_period_m, bid_validity_d, include_vat, budget, bid_value, perf_bond_p, advance_pmt_p)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.BusinessUnitID,
		p.Description,
		p.TenderNo,
		p.ScopeOfWork,
		string(p.Category),
		p.FundingCurrency,
		p.BidIssueDate.Format(dateLayout),
		p.TenderPurchaseDate.Format(dateLayout),
		p.TenderPurchaseFee,
		p.BidDueDate.Format(dateLayout),
		p.CompletionPeriodM,
		p.BidValidityD,
		boolToInt(p.IncludeVAT),
		p.Budget,
		p.BidValue,
		p.PerfBondP,
		p.AdvancePmtP,
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	p.ID, err = insertedID(res)
	return err
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM project WHERE id = ?`, id)
	p, err := scanProject(row)
	if err != nil {
		return nil, notFound(err, domain.KindProject, id)
	}
	return p, nil
}

func (r *SQLiteProjectRepo) List(ctx context.Context, businessUnitID *int64) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM project`
	var args []any
	if businessUnitID != nil {
		query += ` WHERE businessunit_id = ?`
		args = append(args, *businessUnitID)
	}
	rows, err := r.db.QueryContext(ctx, query+` ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return collect(rows, "projects", scanProject)
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE project SET name = ?, businessunit_id = ?, description = ?, tender_no = ?, scope_of_work = ?,
		category = ?, funding_currency = ?, bid_issue_date = ?, tender_purchase_date = ?, tender_purchase_fee = ?,
		bid_due_date = ?, completion_period_m = ?, bid_validity_d = ?, include_vat = ?, budget = ?, bid_value = ?,
		perf_bond_p = ?, advance_pmt_p = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.BusinessUnitID,
		p.Description,
		p.TenderNo,
		p.ScopeOfWork,
		string(p.Category),
		p.FundingCurrency,
		p.BidIssueDate.Format(dateLayout),
		p.TenderPurchaseDate.Format(dateLayout),
		p.TenderPurchaseFee,
		p.BidDueDate.Format(dateLayout),
		p.CompletionPeriodM,
		p.BidValidityD,
		boolToInt(p.IncludeVAT),
		p.Budget,
		p.BidValue,
		p.PerfBondP,
		p.AdvancePmtP,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return affectedOrNotFound(res, domain.KindProject, p.ID)
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM project WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return affectedOrNotFound(res, domain.KindProject, id)
}

func scanProject(s scanner) (*domain.Project, error) {
	var p domain.Project
	var category, bidIssue, tenderPurchase, bidDue string
	var includeVAT int
	err := s.Scan(
		&p.ID, &p.Name, &p.BusinessUnitID, &p.Description, &p.TenderNo, &p.ScopeOfWork, &category,
		&p.FundingCurrency, &bidIssue, &tenderPurchase, &p.TenderPurchaseFee, &bidDue,
		&p.CompletionPeriodM, &p.BidValidityD, &includeVAT, &p.Budget, &p.BidValue, &p.PerfBondP, &p.AdvancePmtP,
	)
	if err != nil {
		return nil, err
	}
	p.Category = domain.ProjectCategory(category)
	p.IncludeVAT = intToBool(includeVAT)
	if p.BidIssueDate, err = parseDate(bidIssue); err != nil {
		return nil, err
	}
	if p.TenderPurchaseDate, err = parseDate(tenderPurchase); err != nil {
		return nil, err
	}
	if p.BidDueDate, err = parseDate(bidDue); err != nil {
		return nil, err
	}
	return &p, nil
}
