package graph

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/pmo/internal/domain"
)

type Format string

const (
	FormatDOT  Format = "dot"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatDOT, FormatJSON, FormatYAML:
		return f, nil
	case "gv":
		return FormatDOT, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", domain.Invalidf("unknown graph format %q (want dot, json or yaml)", s)
}

// Extension is the file suffix written for f, without the dot.
func (f Format) Extension() string {
	if f == FormatDOT {
		return "gv"
	}
	return string(f)
}

// Encode writes g to w in format f.
func Encode(w io.Writer, g *Graph, f Format) error {
	switch f {
	case FormatDOT:
		return EncodeDOT(w, g)
	case FormatJSON:
		return EncodeJSON(w, g)
	case FormatYAML:
		return EncodeYAML(w, g)
	}
	return fmt.Errorf("unknown graph format %q", f)
}

func EncodeJSON(w io.Writer, g *Graph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encoding graph json: %w", err)
	}
	return nil
}

func EncodeYAML(w io.Writer, g *Graph) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encoding graph yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding graph yaml: %w", err)
	}
	return nil
}

// EncodeDOT writes g as a graphviz digraph. Top-level nodes come first,
// then one subgraph per non-empty cluster, then every edge.
func EncodeDOT(w io.Writer, g *Graph) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "// dag\ndigraph %s {\n", dotID(g.Name))

	for _, n := range g.NodesIn("") {
		writeDOTNode(bw, "\t", n)
	}
	for i, cluster := range g.Clusters {
		nodes := g.NodesIn(cluster)
		if len(nodes) == 0 {
			continue
		}
		fmt.Fprintf(bw, "\tsubgraph cluster_%d {\n", i+1)
		bw.WriteString("\t\tcolor=blue\n")
		bw.WriteString("\t\tnode [style=filled]\n")
		fmt.Fprintf(bw, "\t\tlabel=%s\n", dotID(cluster))
		for _, n := range nodes {
			writeDOTNode(bw, "\t\t", n)
		}
		bw.WriteString("\t}\n")
	}
	for _, e := range g.Edges {
		fmt.Fprintf(bw, "\t%s -> %s", dotID(e.From), dotID(e.To))
		if e.Kind == EdgeManages {
			bw.WriteString(" [label=manages style=dashed]")
		}
		bw.WriteString("\n")
	}
	bw.WriteString("}\n")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing graph dot: %w", err)
	}
	return nil
}

func writeDOTNode(bw *bufio.Writer, indent string, n *Node) {
	attrs := []string{"label=" + dotQuote(n.Label)}
	if n.Style.FillColor != "" {
		attrs = append(attrs, "fillcolor="+dotID(n.Style.FillColor))
	}
	if n.Style.Shape != "" {
		attrs = append(attrs, "shape="+dotID(n.Style.Shape))
	}
	if n.Style.Style != "" {
		attrs = append(attrs, "style="+dotID(n.Style.Style))
	}
	if n.Manager {
		attrs = append(attrs, "penwidth=2")
	}
	fmt.Fprintf(bw, "%s%s [%s]\n", indent, dotID(n.ID), strings.Join(attrs, " "))
}

// dotID leaves plain identifiers bare and quotes everything else.
func dotID(s string) string {
	if s == "" {
		return `""`
	}
	for i, r := range s {
		alpha := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		digit := r >= '0' && r <= '9'
		if !alpha && !(digit && i > 0) {
			return dotQuote(s)
		}
	}
	return s
}

func dotQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return `"` + s + `"`
}
