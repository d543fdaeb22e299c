package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate creates every table and index the PMO model needs. Each statement
// is idempotent, so Migrate runs on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Re-running an ALTER TABLE ... ADD COLUMN is expected.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Tables lists the entity tables in dependency order.
var Tables = []string{
	"businessunit",
	"position",
	"businessplan",
	"objective",
	"keyresult",
	"initiative",
	"project",
	"controlaccount",
	"workpackage",
	"task",
	"dependency",
	"risk",
	"contract",
	"milestone",
	"budget",
	"expense",
	"projectstatushistory",
	"resourceassignment",
	"issue",
	"changerequest",
}

var migrations = []string{
	// Organisation. manager_id points forward at position; sqlite resolves
	// the reference when rows are written.
	`CREATE TABLE IF NOT EXISTS businessunit (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL,
		type       TEXT NOT NULL DEFAULT 'businessunit',
		parent_id  INTEGER REFERENCES businessunit(id) ON DELETE SET NULL,
		manager_id INTEGER REFERENCES position(id) ON DELETE SET NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_businessunit_parent ON businessunit(parent_id)`,
	`CREATE INDEX IF NOT EXISTS idx_businessunit_manager ON businessunit(manager_id)`,

	`CREATE TABLE IF NOT EXISTS position (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		name            TEXT NOT NULL,
		type            TEXT NOT NULL DEFAULT 'position',
		businessunit_id INTEGER NOT NULL REFERENCES businessunit(id) ON DELETE CASCADE,
		parent_id       INTEGER REFERENCES position(id) ON DELETE SET NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_position_businessunit ON position(businessunit_id)`,
	`CREATE INDEX IF NOT EXISTS idx_position_parent ON position(parent_id)`,

	// Plans.
	`CREATE TABLE IF NOT EXISTS businessplan (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		name            TEXT NOT NULL,
		businessunit_id INTEGER NOT NULL REFERENCES businessunit(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_businessplan_businessunit ON businessplan(businessunit_id)`,
	`CREATE TABLE IF NOT EXISTS objective (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		name            TEXT NOT NULL,
		businessplan_id INTEGER NOT NULL REFERENCES businessplan(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_objective_businessplan ON objective(businessplan_id)`,
	`CREATE TABLE IF NOT EXISTS keyresult (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		name         TEXT NOT NULL,
		objective_id INTEGER NOT NULL REFERENCES objective(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_keyresult_objective ON keyresult(objective_id)`,
	`CREATE TABLE IF NOT EXISTS initiative (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		name         TEXT NOT NULL,
		keyresult_id INTEGER NOT NULL REFERENCES keyresult(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_initiative_keyresult ON initiative(keyresult_id)`,

	// Projects and their work breakdown.
	`CREATE TABLE IF NOT EXISTS project (
		id                   INTEGER PRIMARY KEY AUTOINCREMENT,
		name                 TEXT NOT NULL,
		businessunit_id      INTEGER NOT NULL REFERENCES businessunit(id) ON DELETE CASCADE,
		description          TEXT NOT NULL DEFAULT '',
		tender_no            TEXT NOT NULL UNIQUE,
		scope_of_work        TEXT NOT NULL DEFAULT '',
		category             TEXT NOT NULL DEFAULT 'substation' CHECK(category IN ('substation','ohtl','ug_cable')),
		funding_currency     TEXT NOT NULL DEFAULT 'SAR',
		bid_issue_date       TEXT NOT NULL,
		tender_purchase_date TEXT NOT NULL,
		tender_purchase_fee  REAL NOT NULL DEFAULT 0,
		bid_due_date         TEXT NOT NULL,
		completion_period_m  INTEGER NOT NULL DEFAULT 12,
		bid_validity_d       INTEGER NOT NULL DEFAULT 90,
		include_vat          INTEGER NOT NULL DEFAULT 0,
		budget               REAL NOT NULL DEFAULT 0,
		bid_value            REAL NOT NULL DEFAULT 0,
		perf_bond_p          REAL NOT NULL DEFAULT 0,
		advance_pmt_p        REAL NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_project_businessunit ON project(businessunit_id)`,
	`CREATE TABLE IF NOT EXISTS controlaccount (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL,
		project_id INTEGER NOT NULL REFERENCES project(id) ON DELETE CASCADE,
		budget     REAL NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_controlaccount_project ON controlaccount(project_id)`,
	`CREATE TABLE IF NOT EXISTS workpackage (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		name              TEXT NOT NULL,
		controlaccount_id INTEGER NOT NULL REFERENCES controlaccount(id) ON DELETE CASCADE,
		is_planned        INTEGER NOT NULL DEFAULT 0,
		budget            REAL NOT NULL DEFAULT 0,
		start_date        TEXT,
		end_date          TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_workpackage_controlaccount ON workpackage(controlaccount_id)`,
	`CREATE TABLE IF NOT EXISTS task (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		name           TEXT NOT NULL,
		workpackage_id INTEGER NOT NULL REFERENCES workpackage(id) ON DELETE CASCADE,
		start_date     TEXT,
		end_date       TEXT,
		is_complete    INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_task_workpackage ON task(workpackage_id)`,
	`CREATE TABLE IF NOT EXISTS dependency (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		predecessor_id INTEGER NOT NULL REFERENCES task(id) ON DELETE CASCADE,
		successor_id   INTEGER NOT NULL REFERENCES task(id) ON DELETE CASCADE,
		UNIQUE(predecessor_id, successor_id),
		CHECK(predecessor_id <> successor_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_dependency_successor ON dependency(successor_id)`,

	// Project register.
	`CREATE TABLE IF NOT EXISTS risk (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL,
		project_id INTEGER NOT NULL REFERENCES project(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_risk_project ON risk(project_id)`,
	`CREATE TABLE IF NOT EXISTS contract (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL,
		project_id INTEGER NOT NULL REFERENCES project(id) ON DELETE CASCADE,
		value      REAL NOT NULL DEFAULT 0,
		status     TEXT NOT NULL DEFAULT 'draft'
	)`,
	`CREATE INDEX IF NOT EXISTS idx_contract_project ON contract(project_id)`,
	`CREATE TABLE IF NOT EXISTS milestone (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT NOT NULL,
		project_id  INTEGER NOT NULL REFERENCES project(id) ON DELETE CASCADE,
		due_date    TEXT,
		is_complete INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_milestone_project ON milestone(project_id)`,
	`CREATE TABLE IF NOT EXISTS budget (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		name           TEXT NOT NULL,
		project_id     INTEGER NOT NULL REFERENCES project(id) ON DELETE CASCADE,
		workpackage_id INTEGER REFERENCES workpackage(id) ON DELETE SET NULL,
		planned        REAL NOT NULL DEFAULT 0,
		actual         REAL NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_budget_project ON budget(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_budget_workpackage ON budget(workpackage_id)`,
	`CREATE TABLE IF NOT EXISTS expense (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		name           TEXT NOT NULL,
		project_id     INTEGER NOT NULL REFERENCES project(id) ON DELETE CASCADE,
		workpackage_id INTEGER REFERENCES workpackage(id) ON DELETE SET NULL,
		amount         REAL NOT NULL DEFAULT 0,
		date           TEXT NOT NULL,
		description    TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_expense_project ON expense(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_expense_workpackage ON expense(workpackage_id)`,
	`CREATE TABLE IF NOT EXISTS projectstatushistory (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		name           TEXT NOT NULL,
		project_id     INTEGER NOT NULL REFERENCES project(id) ON DELETE CASCADE,
		stage          TEXT NOT NULL CHECK(stage IN ('prospect','bidding','awarded','in_progress','closed')),
		effective_date TEXT NOT NULL,
		notes          TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_projectstatushistory_project ON projectstatushistory(project_id, effective_date)`,

	// Satellites that attach at project, work package or task level.
	`CREATE TABLE IF NOT EXISTS resourceassignment (
		id                 INTEGER PRIMARY KEY AUTOINCREMENT,
		name               TEXT NOT NULL,
		project_id         INTEGER NOT NULL REFERENCES project(id) ON DELETE CASCADE,
		position_id        INTEGER NOT NULL REFERENCES position(id) ON DELETE CASCADE,
		workpackage_id     INTEGER REFERENCES workpackage(id) ON DELETE SET NULL,
		task_id            INTEGER REFERENCES task(id) ON DELETE SET NULL,
		role               TEXT NOT NULL DEFAULT '',
		allocation_percent REAL NOT NULL DEFAULT 100,
		start_date         TEXT NOT NULL,
		end_date           TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_resourceassignment_project ON resourceassignment(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_resourceassignment_position ON resourceassignment(position_id)`,
	`CREATE INDEX IF NOT EXISTS idx_resourceassignment_workpackage ON resourceassignment(workpackage_id)`,
	`CREATE INDEX IF NOT EXISTS idx_resourceassignment_task ON resourceassignment(task_id)`,
	`CREATE TABLE IF NOT EXISTS issue (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		name           TEXT NOT NULL,
		project_id     INTEGER NOT NULL REFERENCES project(id) ON DELETE CASCADE,
		workpackage_id INTEGER REFERENCES workpackage(id) ON DELETE SET NULL,
		task_id        INTEGER REFERENCES task(id) ON DELETE SET NULL,
		owner_id       INTEGER REFERENCES position(id) ON DELETE SET NULL,
		status         TEXT NOT NULL DEFAULT 'open' CHECK(status IN ('open','in_progress','resolved','closed')),
		severity       TEXT NOT NULL DEFAULT 'medium',
		opened_on      TEXT NOT NULL,
		closed_on      TEXT,
		description    TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_issue_project ON issue(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_issue_workpackage ON issue(workpackage_id)`,
	`CREATE INDEX IF NOT EXISTS idx_issue_task ON issue(task_id)`,
	`CREATE INDEX IF NOT EXISTS idx_issue_owner ON issue(owner_id)`,
	`CREATE TABLE IF NOT EXISTS changerequest (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		name            TEXT NOT NULL,
		project_id      INTEGER NOT NULL REFERENCES project(id) ON DELETE CASCADE,
		workpackage_id  INTEGER REFERENCES workpackage(id) ON DELETE SET NULL,
		requested_by_id INTEGER REFERENCES position(id) ON DELETE SET NULL,
		status          TEXT NOT NULL DEFAULT 'draft' CHECK(status IN ('draft','submitted','approved','rejected')),
		submitted_on    TEXT,
		approved_on     TEXT,
		description     TEXT,
		impact_summary  TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_changerequest_project ON changerequest(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_changerequest_workpackage ON changerequest(workpackage_id)`,
	`CREATE INDEX IF NOT EXISTS idx_changerequest_requested_by ON changerequest(requested_by_id)`,
}
