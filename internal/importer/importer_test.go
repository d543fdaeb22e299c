package importer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/pmo/internal/domain"
)

func strPtr(s string) *string { return &s }

func validDoc() *Document {
	return &Document{Units: []UnitImport{{
		Ref:        "hq",
		Name:       "Head Office",
		ManagerRef: strPtr("md"),
		Positions: []PositionImport{
			{Ref: "md", Name: "Managing Director"},
			{Ref: "pm", Name: "Project Manager", ParentRef: strPtr("md")},
		},
		Projects: []ProjectImport{{Name: "Jeddah Cable", TenderNo: "JED-UG-1", Category: "UG Cable"}},
		Plans:    []PlanImport{{Name: "Plan", Objectives: []string{"Grow"}}},
	}}}
}

func TestLoad_YAML(t *testing.T) {
	doc, err := Load("testdata/org.yaml")
	require.NoError(t, err)
	require.Len(t, doc.Units, 2)

	region := doc.Units[0]
	assert.Equal(t, "region", region.Ref)
	require.NotNil(t, region.ParentRef)
	assert.Equal(t, "group", *region.ParentRef)
	require.Len(t, region.Projects, 1)
	assert.Equal(t, 1200000.0, region.Projects[0].Budget)
	assert.Equal(t, []string{"Expand regional footprint", "Reduce outage minutes"}, doc.Units[1].Plans[0].Objectives)
}

func TestLoad_JSON(t *testing.T) {
	doc, err := Load("testdata/org.json")
	require.NoError(t, err)
	require.Len(t, doc.Units, 1)
	assert.Equal(t, "Head Office", doc.Units[0].Name)
	assert.Empty(t, Validate(doc))
}

func TestLoad_RejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()

	js := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(js, []byte(`{"units":[{"ref":"a","name":"A","colour":"red"}]}`), 0o644))
	_, err := Load(js)
	assert.ErrorContains(t, err, "colour")

	yml := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(yml, []byte("units:\n  - ref: a\n    name: A\n    colour: red\n"), 0o644))
	_, err = Load(yml)
	assert.ErrorContains(t, err, "colour")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate_Valid(t *testing.T) {
	assert.Empty(t, Validate(validDoc()))
}

func TestValidate_CollectsEveryProblem(t *testing.T) {
	doc := &Document{Units: []UnitImport{
		{Ref: "a", Name: "", ParentRef: strPtr("ghost"), ParentID: domain.Int64Ptr(3)},
		{Ref: "a", Name: "Dup", ManagerRef: strPtr("elsewhere"), Projects: []ProjectImport{
			{Name: "P1", TenderNo: "T-1", Category: "hydro", BidDueDate: strPtr("30/06/2025")},
			{Name: "", TenderNo: "T-1", Budget: -1},
		}},
	}}

	errs := Validate(doc)
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	assert.Contains(t, msgs, `units[1].ref: duplicate ref "a"`)
	assert.Contains(t, msgs, "units[0].name is required")
	assert.Contains(t, msgs, "units[0]: parent_ref and parent_id are mutually exclusive")
	assert.Contains(t, msgs, `units[0].parent_ref: unknown unit "ghost"`)
	assert.Contains(t, msgs, `units[1].manager_ref: "elsewhere" is not a position of this unit`)
	assert.Contains(t, msgs, `units[1].projects[0].bid_due_date: invalid date "30/06/2025" (expected YYYY-MM-DD)`)
	assert.Contains(t, msgs, `units[1].projects[1].tender_no: "T-1" already used by units[1].projects[0]`)
	assert.Contains(t, msgs, "units[1].projects[1].name is required")
	assert.Contains(t, msgs, "units[1].projects[1]: budget and bid_value must not be negative")
	assert.Len(t, errs, 10, "one more for the bad category")
}

func TestValidate_Empty(t *testing.T) {
	errs := Validate(&Document{})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "at least one business unit")
}

func TestValidate_Cycles(t *testing.T) {
	doc := &Document{Units: []UnitImport{
		{Ref: "a", Name: "A", ParentRef: strPtr("b")},
		{Ref: "b", Name: "B", ParentRef: strPtr("a"), Positions: []PositionImport{
			{Ref: "x", Name: "X", ParentRef: strPtr("y")},
			{Ref: "y", Name: "Y", ParentRef: strPtr("x")},
		}},
	}}
	errs := Validate(doc)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "position parent refs form a cycle")
	assert.Contains(t, errs[1].Error(), "unit parent refs form a cycle")
}

func TestValidate_PositionRefsAcrossUnits(t *testing.T) {
	doc := &Document{Units: []UnitImport{
		{Ref: "a", Name: "A", Positions: []PositionImport{{Ref: "boss", Name: "Boss"}}},
		{Ref: "b", Name: "B", Positions: []PositionImport{{Ref: "worker", Name: "Worker", ParentRef: strPtr("boss")}}},
		{Ref: "c", Name: "C", Positions: []PositionImport{{Ref: "worker", Name: "Another Worker"}}},
	}}
	errs := Validate(doc)
	require.Len(t, errs, 2)
	assert.EqualError(t, errs[0], `units[1].positions[0].parent_ref: "boss" is not a position of this unit`)
	assert.EqualError(t, errs[1], `units[2].positions[0].ref: duplicate ref "worker"`)
}

func TestConvert_OrdersParentsFirst(t *testing.T) {
	doc, err := Load("testdata/org.yaml")
	require.NoError(t, err)

	plan, err := Convert(doc)
	require.NoError(t, err)
	require.Len(t, plan.Units, 2)

	group, region := plan.Units[0], plan.Units[1]
	assert.Equal(t, "group", group.Ref)
	assert.Equal(t, domain.DefaultBusinessUnitType, group.Unit.Type)
	assert.Equal(t, "ceo", group.ManagerRef)
	require.Len(t, group.Plans, 1)
	assert.Len(t, group.Plans[0].Objectives, 2)

	assert.Equal(t, "region", region.Ref)
	assert.Equal(t, "region", region.Unit.Type)
	assert.Equal(t, "group", region.ParentRef)
	require.Len(t, region.Positions, 2)
	assert.Equal(t, "rvp", region.Positions[0].Ref)
	assert.Equal(t, "pm", region.Positions[1].Ref)
	assert.Equal(t, "rvp", region.Positions[1].ParentRef)
	assert.Equal(t, domain.DefaultPositionType, region.Positions[1].Position.Type)

	require.Len(t, region.Projects, 1)
	p := region.Projects[0]
	assert.Equal(t, domain.CategoryOHTL, p.Category)
	assert.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), p.BidDueDate)
}

func TestConvert_InvalidDocument(t *testing.T) {
	doc := validDoc()
	doc.Units[0].Name = " "

	_, err := Convert(doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalid)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Errs, 1)
	assert.Contains(t, err.Error(), "units[0].name is required")
}

func TestConvert_KeepsExistingParentID(t *testing.T) {
	doc := validDoc()
	doc.Units[0].ParentID = domain.Int64Ptr(42)

	plan, err := Convert(doc)
	require.NoError(t, err)
	require.NotNil(t, plan.Units[0].Unit.ParentID)
	assert.Equal(t, int64(42), *plan.Units[0].Unit.ParentID)
	assert.Equal(t, domain.CategoryUGCable, plan.Units[0].Projects[0].Category)
}
