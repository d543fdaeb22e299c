// Package graph holds the abstract entity graph the exporter builds and the
// encoders that turn it into graphviz, JSON or YAML documents.
package graph

import (
	"fmt"

	"github.com/alexanderramin/pmo/internal/domain"
)

// Cluster names group nodes the way the org chart, project tree and plan
// tree are boxed in the rendered picture.
const (
	ClusterOrgChart      = "orgchart"
	ClusterProjects      = "projects"
	ClusterBusinessPlans = "businessplans"
)

type EdgeKind string

const (
	// EdgeOwner points from a record to the record that owns or contains it.
	EdgeOwner EdgeKind = "owner"
	// EdgeManages points from a unit's manager position to the unit.
	EdgeManages EdgeKind = "manages"
)

type Node struct {
	ID      string      `json:"id" yaml:"id"`
	Label   string      `json:"label" yaml:"label"`
	Kind    domain.Kind `json:"kind" yaml:"kind"`
	Cluster string      `json:"cluster,omitempty" yaml:"cluster,omitempty"`
	Manager bool        `json:"manager,omitempty" yaml:"manager,omitempty"`
	Style   Style       `json:"style" yaml:"style"`
}

type Edge struct {
	From string   `json:"from" yaml:"from"`
	To   string   `json:"to" yaml:"to"`
	Kind EdgeKind `json:"kind" yaml:"kind"`
}

// Graph is a directed graph whose edges run child to parent.
type Graph struct {
	Name     string   `json:"name" yaml:"name"`
	Clusters []string `json:"clusters" yaml:"clusters"`
	Nodes    []*Node  `json:"nodes" yaml:"nodes"`
	Edges    []Edge   `json:"edges" yaml:"edges"`

	index map[string]*Node
}

func New(name string) *Graph {
	return &Graph{
		Name:     name,
		Clusters: []string{ClusterOrgChart, ClusterProjects, ClusterBusinessPlans},
		index:    make(map[string]*Node),
	}
}

// AddNode registers e under its node key in cluster ("" for the top
// level). A key can only be added once.
func (g *Graph) AddNode(e domain.Entity, cluster string) (*Node, error) {
	key := domain.NodeKey(e)
	if _, dup := g.index[key]; dup {
		return nil, fmt.Errorf("graph %s: node %s added twice", g.Name, key)
	}
	n := &Node{
		ID:      key,
		Label:   e.DisplayName(),
		Kind:    e.EntityKind(),
		Cluster: cluster,
		Style:   StyleFor(e.EntityKind()),
	}
	g.index[key] = n
	g.Nodes = append(g.Nodes, n)
	return n, nil
}

// AddEdge links from to to. Both ends must already be nodes.
func (g *Graph) AddEdge(from, to string, kind EdgeKind) error {
	if _, ok := g.index[from]; !ok {
		return fmt.Errorf("graph %s: edge from unknown node %s", g.Name, from)
	}
	if _, ok := g.index[to]; !ok {
		return fmt.Errorf("graph %s: edge to unknown node %s", g.Name, to)
	}
	g.Edges = append(g.Edges, Edge{From: from, To: to, Kind: kind})
	return nil
}

// Node returns the node registered under key.
func (g *Graph) Node(key string) (*Node, bool) {
	n, ok := g.index[key]
	return n, ok
}

// NodesIn returns the nodes of one cluster in insertion order.
func (g *Graph) NodesIn(cluster string) []*Node {
	var out []*Node
	for _, n := range g.Nodes {
		if n.Cluster == cluster {
			out = append(out, n)
		}
	}
	return out
}

// CountByKind tallies nodes per entity kind.
func (g *Graph) CountByKind() map[domain.Kind]int {
	counts := make(map[domain.Kind]int)
	for _, n := range g.Nodes {
		counts[n.Kind]++
	}
	return counts
}
