package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexanderramin/pmo/internal/cli/formatter"
	"github.com/alexanderramin/pmo/internal/domain"
	"github.com/alexanderramin/pmo/internal/graph"
)

func newGraphCmd(app *App) *cobra.Command {
	var (
		dir    string
		format string
		render bool
		view   bool
	)
	cmd := &cobra.Command{
		Use:   "graph BU_ID",
		Short: "Export a business unit's entity graph",
		Long: "Writes the graph of everything the unit owns into DIR.\n" +
			"--render runs graphviz on the DOT file and --view pages the graph in the terminal.\n" +
			"Export problems are reported without failing the command.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := background(cmd)
			out := cmd.OutOrStdout()
			id, err := parseID("business unit id", args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("dir") {
				dir = app.Config.Graph.Dir
			}
			if !cmd.Flags().Changed("format") {
				format = app.Config.Graph.Format
			}
			f, err := graph.ParseFormat(format)
			if err != nil {
				return err
			}

			g, err := app.services.Graph.Build(ctx, id)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return reportMissing(out, err)
				}
				exportFailed(app, out, err)
				return nil
			}
			path, err := graph.WriteFile(dir, "", g, f)
			if err != nil {
				exportFailed(app, out, err)
				return nil
			}
			unit := g.Nodes[0].Label
			fmt.Fprint(out, formatter.FormatGraphSummary(unit, g, path))

			if render {
				renderGraph(cmd, app, g, dir, path, f)
			}
			if view {
				run := app.RunViewer
				if run == nil {
					run = runGraphView
				}
				if err := run(newGraphView(unit, formatter.FormatGraphOutline(g))); err != nil {
					exportFailed(app, out, err)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "build", "Output directory")
	cmd.Flags().StringVar(&format, "format", string(graph.FormatDOT), "dot, json or yaml")
	cmd.Flags().BoolVar(&render, "render", false, "Render the DOT file with graphviz")
	cmd.Flags().BoolVar(&view, "view", false, "Page through the graph in the terminal")
	return cmd
}

// renderGraph needs a DOT file; for other formats one is written next to
// the requested output first.
func renderGraph(cmd *cobra.Command, app *App, g *graph.Graph, dir, path string, f graph.Format) {
	out := cmd.OutOrStdout()
	dotPath := path
	if f != graph.FormatDOT {
		var err error
		if dotPath, err = graph.WriteFile(dir, "", g, graph.FormatDOT); err != nil {
			exportFailed(app, out, err)
			return
		}
	}
	r := app.Renderer
	if r == nil {
		r = graph.DotRenderer{}
	}
	image, err := r.Render(background(cmd), dotPath)
	if err != nil {
		exportFailed(app, out, err)
		return
	}
	fmt.Fprintf(out, "%s Rendered %s\n", formatter.StyleGreen.Render("✔"), image)
}

func exportFailed(app *App, w io.Writer, err error) {
	app.Logger.Warn("graph export failed", zap.Error(err))
	fmt.Fprintf(w, "%s Error generating graph: %v\n", formatter.StyleRed.Render("✖"), err)
}
