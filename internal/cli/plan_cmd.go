package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/pmo/internal/cli/formatter"
	"github.com/alexanderramin/pmo/internal/domain"
)

func newBusinessPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bp",
		Aliases: []string{"businessplan"},
		Short:   "Manage business plans",
	}
	cmd.AddCommand(newBusinessPlanCreateCmd(app), newBusinessPlanListCmd(app))
	return cmd
}

func newBusinessPlanCreateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create NAME BU_ID",
		Short: "Create a business plan for a business unit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			buID, err := parseID("business unit id", args[1])
			if err != nil {
				return err
			}
			p := &domain.BusinessPlan{Name: args[0], BusinessUnitID: buID}
			if err := app.services.Plans.CreatePlan(background(cmd), p); err != nil {
				return reportMissing(cmd.OutOrStdout(), err)
			}
			printCreated(cmd.OutOrStdout(), domain.KindBusinessPlan, p.ID, p.Name)
			return nil
		},
	}
}

func newBusinessPlanListCmd(app *App) *cobra.Command {
	var buID int64
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List business plans with their objective counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := background(cmd)
			plans, err := app.services.Plans.ListPlans(ctx, optionalIDFlag(cmd, "bu-id", buID))
			if err != nil {
				return err
			}
			counts := make(map[int64]int, len(plans))
			for _, p := range plans {
				objs, err := app.services.Plans.ListObjectives(ctx, p.ID)
				if err != nil {
					return err
				}
				counts[p.ID] = len(objs)
			}
			names, err := unitNameIndex(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlanList(plans, counts, names))
			return nil
		},
	}
	cmd.Flags().Int64Var(&buID, "bu-id", 0, "Only plans of this business unit")
	return cmd
}

func newObjectiveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "obj",
		Aliases: []string{"objective"},
		Short:   "Manage business plan objectives",
	}
	cmd.AddCommand(newObjectiveCreateCmd(app), newObjectiveListCmd(app))
	return cmd
}

func newObjectiveCreateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create NAME BP_ID",
		Short: "Add an objective to a business plan",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			planID, err := parseID("business plan id", args[1])
			if err != nil {
				return err
			}
			o := &domain.Objective{Name: args[0], BusinessPlanID: planID}
			if err := app.services.Plans.CreateObjective(background(cmd), o); err != nil {
				return reportMissing(cmd.OutOrStdout(), err)
			}
			printCreated(cmd.OutOrStdout(), domain.KindObjective, o.ID, o.Name)
			return nil
		},
	}
}

func newObjectiveListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list BP_ID",
		Short: "List the objectives of a business plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := background(cmd)
			planID, err := parseID("business plan id", args[0])
			if err != nil {
				return err
			}
			plan, err := app.services.Plans.GetPlan(ctx, planID)
			if err != nil {
				return reportMissing(cmd.OutOrStdout(), err)
			}
			objs, err := app.services.Plans.ListObjectives(ctx, planID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatObjectiveList(plan, objs))
			return nil
		},
	}
}
