package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/pmo/internal/domain"
)

func sampleGraph(t *testing.T) *Graph {
	t.Helper()
	g := New("pmo")
	bu := &domain.BusinessUnit{ID: 1, Name: "Acme Power"}
	ceo := &domain.Position{ID: 2, Name: "CEO", BusinessUnitID: 1}
	proj := &domain.Project{ID: 3, Name: `Riyadh "North" Substation`}
	plan := &domain.BusinessPlan{ID: 4, Name: "2025 Growth Plan"}

	_, err := g.AddNode(bu, "")
	require.NoError(t, err)
	n, err := g.AddNode(ceo, ClusterOrgChart)
	require.NoError(t, err)
	n.Manager = true
	_, err = g.AddNode(proj, "")
	require.NoError(t, err)
	_, err = g.AddNode(plan, ClusterBusinessPlans)
	require.NoError(t, err)

	require.NoError(t, g.AddEdge("position2", "businessunit1", EdgeOwner))
	require.NoError(t, g.AddEdge("project3", "businessunit1", EdgeOwner))
	require.NoError(t, g.AddEdge("businessplan4", "businessunit1", EdgeOwner))
	return g
}

func TestAddNode_RejectsDuplicateKeys(t *testing.T) {
	g := New("pmo")
	_, err := g.AddNode(&domain.Task{ID: 9, Name: "Pour"}, ClusterProjects)
	require.NoError(t, err)

	_, err = g.AddNode(&domain.Task{ID: 9, Name: "Pour again"}, ClusterProjects)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "task9")
	assert.Len(t, g.Nodes, 1)
}

func TestAddNode_SameIDDifferentKindIsDistinct(t *testing.T) {
	g := New("pmo")
	_, err := g.AddNode(&domain.Task{ID: 1}, "")
	require.NoError(t, err)
	_, err = g.AddNode(&domain.Risk{ID: 1}, "")
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 2)
}

func TestAddEdge_RequiresKnownEndpoints(t *testing.T) {
	g := New("pmo")
	_, err := g.AddNode(&domain.Project{ID: 1}, "")
	require.NoError(t, err)

	assert.Error(t, g.AddEdge("project1", "businessunit1", EdgeOwner))
	assert.Error(t, g.AddEdge("risk4", "project1", EdgeOwner))
	assert.Empty(t, g.Edges)
}

func TestStyleFor(t *testing.T) {
	assert.Equal(t, Style{Shape: "circle", FillColor: "grey"}, StyleFor(domain.KindBusinessUnit))
	assert.Equal(t, "note", StyleFor(domain.KindWorkPackage).Shape)
	assert.Equal(t, "rounded,filled", StyleFor(domain.KindObjective).Style)
	assert.Equal(t, Style{Shape: "box"}, StyleFor(domain.KindDependency))
}

func TestCountByKindAndClusters(t *testing.T) {
	g := sampleGraph(t)

	counts := g.CountByKind()
	assert.Equal(t, 1, counts[domain.KindBusinessUnit])
	assert.Equal(t, 1, counts[domain.KindPosition])
	assert.Len(t, g.NodesIn(""), 2)
	assert.Len(t, g.NodesIn(ClusterOrgChart), 1)
	assert.Empty(t, g.NodesIn(ClusterProjects))
}

func TestEncodeDOT(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeDOT(&buf, sampleGraph(t)))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "// dag\ndigraph pmo {\n"))
	assert.Contains(t, out, `businessunit1 [label="Acme Power" fillcolor=grey shape=circle]`)
	assert.Contains(t, out, `label="Riyadh \"North\" Substation"`)
	assert.Contains(t, out, "subgraph cluster_1 {")
	assert.Contains(t, out, "label=orgchart")
	assert.Contains(t, out, "penwidth=2")
	assert.Contains(t, out, "subgraph cluster_3 {")
	assert.NotContains(t, out, "cluster_2", "empty clusters are skipped")
	assert.Contains(t, out, "position2 -> businessunit1\n")
	assert.True(t, strings.HasSuffix(out, "}\n"))
}

func TestEncodeDOT_ManagesEdgeIsDashed(t *testing.T) {
	g := sampleGraph(t)
	require.NoError(t, g.AddEdge("position2", "businessunit1", EdgeManages))

	var buf bytes.Buffer
	require.NoError(t, EncodeDOT(&buf, g))
	assert.Contains(t, buf.String(), "position2 -> businessunit1 [label=manages style=dashed]")
}

func TestEncodeJSONAndYAML(t *testing.T) {
	g := sampleGraph(t)

	var jbuf bytes.Buffer
	require.NoError(t, EncodeJSON(&jbuf, g))
	var fromJSON Graph
	require.NoError(t, json.Unmarshal(jbuf.Bytes(), &fromJSON))
	assert.Equal(t, "pmo", fromJSON.Name)
	assert.Len(t, fromJSON.Nodes, 4)
	assert.Len(t, fromJSON.Edges, 3)
	assert.Equal(t, domain.KindPosition, fromJSON.Nodes[1].Kind)

	var ybuf bytes.Buffer
	require.NoError(t, EncodeYAML(&ybuf, g))
	var fromYAML Graph
	require.NoError(t, yaml.Unmarshal(ybuf.Bytes(), &fromYAML))
	assert.Equal(t, fromJSON.Nodes[0].ID, fromYAML.Nodes[0].ID)
	assert.Equal(t, "orgchart", fromYAML.Nodes[1].Cluster)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"dot": FormatDOT, "GV": FormatDOT, " json ": FormatJSON, "yml": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("png")
	assert.ErrorIs(t, err, domain.ErrInvalid)
	assert.Equal(t, "gv", FormatDOT.Extension())
	assert.Equal(t, "yaml", FormatYAML.Extension())
}

func TestWriteFile_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "build", "nested")

	path, err := WriteFile(dir, "", sampleGraph(t), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pmo.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"businessunit1"`)
}

func TestDotRenderer_MissingBinary(t *testing.T) {
	r := DotRenderer{Binary: "pmo-no-such-graphviz-binary"}
	_, err := r.Render(context.Background(), filepath.Join(t.TempDir(), "pmo.gv"))
	assert.ErrorIs(t, err, ErrRendererMissing)
}
