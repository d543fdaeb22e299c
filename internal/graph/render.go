package graph

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrRendererMissing is returned when the graphviz executable is not on
// PATH.
var ErrRendererMissing = errors.New("graphviz dot executable not found")

// Renderer turns a written DOT file into an image and returns its path.
type Renderer interface {
	Render(ctx context.Context, dotPath string) (string, error)
}

// DotRenderer shells out to graphviz.
type DotRenderer struct {
	Binary string // defaults to "dot"
	Format string // output format, defaults to "pdf"
}

func (r DotRenderer) Render(ctx context.Context, dotPath string) (string, error) {
	bin := r.Binary
	if bin == "" {
		bin = "dot"
	}
	format := r.Format
	if format == "" {
		format = "pdf"
	}
	resolved, err := exec.LookPath(bin)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRendererMissing, err)
	}

	out := dotPath + "." + format
	cmd := exec.CommandContext(ctx, resolved, "-T"+format, "-o", out, dotPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("rendering %s: %w: %s", dotPath, err, strings.TrimSpace(stderr.String()))
	}
	return out, nil
}

// WriteFile encodes g into dir, creating the directory if needed. The file
// is named after the graph unless name is given.
func WriteFile(dir, name string, g *Graph, f Format) (string, error) {
	if name == "" {
		name = g.Name
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating graph directory: %w", err)
	}
	path := filepath.Join(dir, name+"."+f.Extension())
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating graph file: %w", err)
	}
	if err := Encode(file, g, f); err != nil {
		file.Close()
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing graph file: %w", err)
	}
	return path, nil
}
