package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_ApplyDefaults(t *testing.T) {
	today := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	p := &Project{Name: "Line", TenderNo: "T-1"}
	p.ApplyDefaults(today)

	assert.Equal(t, CategorySubstation, p.Category)
	assert.Equal(t, "SAR", p.FundingCurrency)
	assert.Equal(t, 12, p.CompletionPeriodM)
	assert.Equal(t, 90, p.BidValidityD)
	assert.Equal(t, today, p.BidIssueDate)
	assert.Equal(t, today, p.TenderPurchaseDate)
	assert.Equal(t, today, p.BidDueDate)
	require.NoError(t, p.Validate())
}

func TestProject_ApplyDefaultsKeepsExplicitValues(t *testing.T) {
	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	p := &Project{Category: CategoryOHTL, FundingCurrency: "USD", CompletionPeriodM: 14, BidDueDate: due}
	p.ApplyDefaults(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, CategoryOHTL, p.Category)
	assert.Equal(t, "USD", p.FundingCurrency)
	assert.Equal(t, 14, p.CompletionPeriodM)
	assert.Equal(t, due, p.BidDueDate)
}

func TestProject_Validate(t *testing.T) {
	base := func() *Project {
		return &Project{Name: "P", TenderNo: "T", Category: CategorySubstation}
	}

	p := base()
	p.TenderNo = " "
	assert.ErrorIs(t, p.Validate(), ErrInvalid)

	p = base()
	p.Category = "pipeline"
	assert.ErrorIs(t, p.Validate(), ErrInvalid)

	p = base()
	p.PerfBondP = 120
	assert.ErrorIs(t, p.Validate(), ErrInvalid)

	assert.NoError(t, base().Validate())
}

func TestParseProjectCategory(t *testing.T) {
	c, err := ParseProjectCategory("UG Cable")
	require.NoError(t, err)
	assert.Equal(t, CategoryUGCable, c)

	c, err = ParseProjectCategory("OHTL")
	require.NoError(t, err)
	assert.Equal(t, CategoryOHTL, c)

	_, err = ParseProjectCategory("pipeline")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestKind_NodeKeyAndTable(t *testing.T) {
	bu := &BusinessUnit{ID: 1}
	assert.Equal(t, "businessunit", TableName(bu))
	assert.Equal(t, "businessunit1", NodeKey(bu))
	assert.Equal(t, "projectstatushistory3", NodeKey(&ProjectStatusHistory{ID: 3}))

	k, ok := ParseKind("WorkPackage")
	assert.True(t, ok)
	assert.Equal(t, KindWorkPackage, k)
}

func TestNotFound_Message(t *testing.T) {
	err := NotFound(KindBusinessUnit, 7)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "business unit 7: not found", err.Error())
}
