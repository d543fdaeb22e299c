package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexanderramin/pmo/internal/cli/formatter"
	"github.com/alexanderramin/pmo/internal/importer"
)

func newImportCmd(app *App) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import business units, positions, projects and plans from a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := args[0]
			out := cmd.OutOrStdout()

			doc, err := importer.Load(file)
			if err != nil {
				return err
			}
			plan, err := importer.Convert(doc)
			var verr *importer.ValidationError
			if errors.As(err, &verr) {
				fmt.Fprint(out, formatter.FormatImportProblems(file, verr.Errs))
				return fmt.Errorf("%s is invalid", file)
			}
			if err != nil {
				return err
			}

			if dryRun {
				fmt.Fprint(out, formatter.FormatImportPlan(file, plan))
				return nil
			}
			res, err := app.services.Import.Import(background(cmd), plan)
			if err != nil {
				return err
			}
			app.Logger.Info("import applied", zap.String("file", file), zap.Int64s("business_unit_ids", res.BusinessUnitIDs))
			fmt.Fprint(out, formatter.FormatImportResult(file, res))
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate and preview without writing")
	return cmd
}
