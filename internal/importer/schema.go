// Package importer reads organisation files: business units with their
// positions, projects and business plans, described by local refs so a
// whole tree can be written in one go.
package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is the top-level structure of an import file.
type Document struct {
	Units []UnitImport `json:"units" yaml:"units"`
}

// UnitImport describes one business unit. ParentRef names another unit in
// the same file; ParentID attaches to a unit already in the store.
type UnitImport struct {
	Ref        string           `json:"ref" yaml:"ref"`
	Name       string           `json:"name" yaml:"name"`
	Type       string           `json:"type,omitempty" yaml:"type,omitempty"`
	ParentRef  *string          `json:"parent_ref,omitempty" yaml:"parent_ref,omitempty"`
	ParentID   *int64           `json:"parent_id,omitempty" yaml:"parent_id,omitempty"`
	ManagerRef *string          `json:"manager_ref,omitempty" yaml:"manager_ref,omitempty"`
	Positions  []PositionImport `json:"positions,omitempty" yaml:"positions,omitempty"`
	Projects   []ProjectImport  `json:"projects,omitempty" yaml:"projects,omitempty"`
	Plans      []PlanImport     `json:"plans,omitempty" yaml:"plans,omitempty"`
}

// PositionImport is a seat in its unit. ParentRef names a position of the
// same unit.
type PositionImport struct {
	Ref       string  `json:"ref" yaml:"ref"`
	Name      string  `json:"name" yaml:"name"`
	Type      string  `json:"type,omitempty" yaml:"type,omitempty"`
	ParentRef *string `json:"parent_ref,omitempty" yaml:"parent_ref,omitempty"`
}

type ProjectImport struct {
	Name            string  `json:"name" yaml:"name"`
	TenderNo        string  `json:"tender_no" yaml:"tender_no"`
	Description     string  `json:"description,omitempty" yaml:"description,omitempty"`
	ScopeOfWork     string  `json:"scope_of_work,omitempty" yaml:"scope_of_work,omitempty"`
	Category        string  `json:"category,omitempty" yaml:"category,omitempty"`
	FundingCurrency string  `json:"funding_currency,omitempty" yaml:"funding_currency,omitempty"`
	Budget          float64 `json:"budget,omitempty" yaml:"budget,omitempty"`
	BidValue        float64 `json:"bid_value,omitempty" yaml:"bid_value,omitempty"`
	BidDueDate      *string `json:"bid_due_date,omitempty" yaml:"bid_due_date,omitempty"`
}

type PlanImport struct {
	Name       string   `json:"name" yaml:"name"`
	Objectives []string `json:"objectives,omitempty" yaml:"objectives,omitempty"`
}

// Load reads an import file. Files ending in .yaml or .yml are YAML,
// everything else JSON.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DecodeYAML(data)
	default:
		return DecodeJSON(data)
	}
}

func DecodeJSON(data []byte) (*Document, error) {
	var doc Document
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &doc, nil
}

func DecodeYAML(data []byte) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &doc, nil
}
