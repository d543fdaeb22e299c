package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/pmo/internal/cli/formatter"
	"github.com/alexanderramin/pmo/internal/domain"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "proj",
		Aliases: []string{"project"},
		Short:   "Manage projects",
	}
	cmd.AddCommand(
		newProjectCreateCmd(app),
		newProjectListCmd(app),
		newProjectGetCmd(app),
		newProjectDeleteCmd(app),
		newProjectStatusCmd(app),
		newProjectAssignCmd(app),
	)
	return cmd
}

func newProjectCreateCmd(app *App) *cobra.Command {
	var (
		category string
		budget   float64
		bidValue float64
	)
	cmd := &cobra.Command{
		Use:   "create NAME BU_ID DESCRIPTION TENDER_NO SCOPE",
		Short: "Create a project under a business unit",
		Long:  "Dates default to today and the funding currency to SAR.",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			buID, err := parseID("business unit id", args[1])
			if err != nil {
				return err
			}
			cat, err := domain.ParseProjectCategory(category)
			if err != nil {
				return err
			}
			p := &domain.Project{
				Name:           args[0],
				BusinessUnitID: buID,
				Description:    args[2],
				TenderNo:       args[3],
				ScopeOfWork:    args[4],
				Category:       cat,
				Budget:         budget,
				BidValue:       bidValue,
			}
			if err := app.services.Projects.Create(background(cmd), p); err != nil {
				return reportMissing(cmd.OutOrStdout(), err)
			}
			printCreated(cmd.OutOrStdout(), domain.KindProject, p.ID, p.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", string(domain.CategorySubstation), "substation, ohtl or ug_cable")
	cmd.Flags().Float64Var(&budget, "budget", 0, "Budget amount")
	cmd.Flags().Float64Var(&bidValue, "bid-value", 0, "Bid value")
	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var buID int64
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := background(cmd)
			projects, err := app.services.Projects.List(ctx, optionalIDFlag(cmd, "bu-id", buID))
			if err != nil {
				return err
			}
			names, err := unitNameIndex(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProjectList(projects, names))
			return nil
		},
	}
	cmd.Flags().Int64Var(&buID, "bu-id", 0, "Only projects of this business unit")
	return cmd
}

func newProjectGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show a project with its status history and registers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := background(cmd)
			id, err := parseID("project id", args[0])
			if err != nil {
				return err
			}
			d, err := app.services.Projects.Detail(ctx, id)
			if err != nil {
				return reportMissing(cmd.OutOrStdout(), err)
			}
			u, err := app.services.BusinessUnits.GetByID(ctx, d.Project.BusinessUnitID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProjectDetail(d, u.Name))
			return nil
		},
	}
}

func newProjectDeleteCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a project and everything it owns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := background(cmd)
			id, err := parseID("project id", args[0])
			if err != nil {
				return err
			}
			p, err := app.services.Projects.GetByID(ctx, id)
			if err != nil {
				return reportMissing(cmd.OutOrStdout(), err)
			}
			ok, err := confirmDelete(app, yes, fmt.Sprintf("project %q", p.Name))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
				return nil
			}
			if err := app.services.Projects.Delete(ctx, id); err != nil {
				return reportMissing(cmd.OutOrStdout(), err)
			}
			printDeleted(cmd.OutOrStdout(), domain.KindProject, id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newProjectStatusCmd(app *App) *cobra.Command {
	var date, notes string
	cmd := &cobra.Command{
		Use:   "status ID [STAGE]",
		Short: "Show a project's stage log, or append STAGE to it",
		Long: "Without STAGE, lists the status history. With STAGE (prospect, bidding, awarded,\n" +
			"in_progress, closed), appends an entry dated --date or today.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := background(cmd)
			out := cmd.OutOrStdout()
			id, err := parseID("project id", args[0])
			if err != nil {
				return err
			}
			p, err := app.services.Projects.GetByID(ctx, id)
			if err != nil {
				return reportMissing(out, err)
			}

			if len(args) == 2 {
				stage, err := domain.ParseLifecycleStage(args[1])
				if err != nil {
					return err
				}
				h := &domain.ProjectStatusHistory{ProjectID: id, Stage: stage}
				if date != "" {
					if h.EffectiveDate, err = domain.ParseDate(date); err != nil {
						return err
					}
				}
				if notes != "" {
					h.Notes = &notes
				}
				if err := app.services.Projects.AppendStatus(ctx, h); err != nil {
					return err
				}
				fmt.Fprintf(out, "%s %s is now %s as of %s\n", formatter.StyleGreen.Render("✔"),
					p.Name, formatter.StagePill(stage), domain.FormatDate(h.EffectiveDate))
				return nil
			}

			history, err := app.services.Projects.StatusHistory(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatStatusHistory(p.Name, history))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Effective date (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes for the entry")
	return cmd
}

func newProjectAssignCmd(app *App) *cobra.Command {
	var (
		role       string
		allocation float64
		wpID       int64
		taskID     int64
	)
	cmd := &cobra.Command{
		Use:   "assign PROJECT_ID POSITION_ID NAME",
		Short: "Assign a position to a project, optionally on a work package or task",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID("project id", args[0])
			if err != nil {
				return err
			}
			positionID, err := parseID("position id", args[1])
			if err != nil {
				return err
			}
			a := &domain.ResourceAssignment{
				Name:              args[2],
				ProjectID:         projectID,
				PositionID:        positionID,
				Role:              role,
				AllocationPercent: allocation,
				WorkPackageID:     optionalIDFlag(cmd, "wp-id", wpID),
				TaskID:            optionalIDFlag(cmd, "task-id", taskID),
			}
			if err := app.services.ResourceAssignments.Create(background(cmd), a); err != nil {
				return reportMissing(cmd.OutOrStdout(), err)
			}
			printCreated(cmd.OutOrStdout(), domain.KindResourceAssignment, a.ID, a.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "  %s on %s\n", formatter.FormatPercent(a.AllocationPercent), a.EffectiveParent())
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "Role on the project")
	cmd.Flags().Float64Var(&allocation, "allocation", domain.DefaultAllocationPercent, "Allocation percent (0-100)")
	cmd.Flags().Int64Var(&wpID, "wp-id", 0, "Work package to attach to")
	cmd.Flags().Int64Var(&taskID, "task-id", 0, "Task to attach to")
	return cmd
}
