package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/pmo/internal/cli/formatter"
	"github.com/alexanderramin/pmo/internal/domain"
	"github.com/alexanderramin/pmo/internal/service"
)

func newBusinessUnitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bu",
		Aliases: []string{"businessunit"},
		Short:   "Manage business units",
	}
	cmd.AddCommand(
		newBusinessUnitCreateCmd(app),
		newBusinessUnitListCmd(app),
		newBusinessUnitGetCmd(app),
		newBusinessUnitUpdateCmd(app),
		newBusinessUnitDeleteCmd(app),
		newBusinessUnitPathCmd(app),
	)
	return cmd
}

func newBusinessUnitCreateCmd(app *App) *cobra.Command {
	var (
		unitType string
		parentID int64
	)
	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a business unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b := &domain.BusinessUnit{
				Name:     args[0],
				Type:     unitType,
				ParentID: optionalIDFlag(cmd, "parent-id", parentID),
			}
			if err := app.services.BusinessUnits.Create(background(cmd), b); err != nil {
				return reportMissing(cmd.OutOrStdout(), err)
			}
			printCreated(cmd.OutOrStdout(), domain.KindBusinessUnit, b.ID, b.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&unitType, "type", domain.DefaultBusinessUnitType, "Unit type label")
	cmd.Flags().Int64Var(&parentID, "parent-id", 0, "Parent business unit")
	return cmd
}

func newBusinessUnitListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List business units",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			units, err := app.services.BusinessUnits.List(background(cmd))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBusinessUnitList(units))
			return nil
		},
	}
}

func newBusinessUnitGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show a business unit with its org chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := background(cmd)
			id, err := parseID("business unit id", args[0])
			if err != nil {
				return err
			}
			u, err := app.services.BusinessUnits.GetByID(ctx, id)
			if err != nil {
				return reportMissing(cmd.OutOrStdout(), err)
			}
			path, err := app.services.Hierarchy.BusinessUnitPath(ctx, id)
			if err != nil {
				return err
			}
			positions, err := app.services.Positions.List(ctx, &id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBusinessUnit(u, path, positions))
			return nil
		},
	}
}

func newBusinessUnitUpdateCmd(app *App) *cobra.Command {
	var (
		name      string
		unitType  string
		managerID int64
		parentID  int64
	)
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change a business unit's name, type, manager or parent",
		Long:  "Only the given flags change. --manager-id 0 or --parent-id 0 clears the reference.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("business unit id", args[0])
			if err != nil {
				return err
			}
			var patch service.BusinessUnitPatch
			flags := cmd.Flags()
			if flags.Changed("name") {
				patch.Name = service.SetTo(name)
			}
			if flags.Changed("type") {
				patch.Type = service.SetTo(unitType)
			}
			if flags.Changed("manager-id") {
				patch.ManagerID = service.SetTo(optionalIDFlag(cmd, "manager-id", managerID))
			}
			if flags.Changed("parent-id") {
				patch.ParentID = service.SetTo(optionalIDFlag(cmd, "parent-id", parentID))
			}
			u, err := app.services.BusinessUnits.Update(background(cmd), id, patch)
			if err != nil {
				return reportMissing(cmd.OutOrStdout(), err)
			}
			printUpdated(cmd.OutOrStdout(), domain.KindBusinessUnit, u.ID, u.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&unitType, "type", "", "New type label")
	cmd.Flags().Int64Var(&managerID, "manager-id", 0, "Managing position (0 clears)")
	cmd.Flags().Int64Var(&parentID, "parent-id", 0, "Parent business unit (0 clears)")
	return cmd
}

func newBusinessUnitDeleteCmd(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a business unit and everything it owns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := background(cmd)
			id, err := parseID("business unit id", args[0])
			if err != nil {
				return err
			}
			u, err := app.services.BusinessUnits.GetByID(ctx, id)
			if err != nil {
				return reportMissing(cmd.OutOrStdout(), err)
			}
			ok, err := confirmDelete(app, yes, fmt.Sprintf("business unit %q", u.Name))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
				return nil
			}
			if err := app.services.BusinessUnits.Delete(ctx, id); err != nil {
				return reportMissing(cmd.OutOrStdout(), err)
			}
			printDeleted(cmd.OutOrStdout(), domain.KindBusinessUnit, id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newBusinessUnitPathCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "path ID",
		Short: "Print the chain of parent units up to the root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("business unit id", args[0])
			if err != nil {
				return err
			}
			path, err := app.services.Hierarchy.BusinessUnitPath(background(cmd), id)
			if err != nil {
				return reportMissing(cmd.OutOrStdout(), err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBusinessUnitPath(path))
			return nil
		},
	}
}

func newPositionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pos",
		Aliases: []string{"position"},
		Short:   "Manage positions",
	}
	cmd.AddCommand(
		newPositionCreateCmd(app),
		newPositionListCmd(app),
		newPositionPathCmd(app),
	)
	return cmd
}

func newPositionCreateCmd(app *App) *cobra.Command {
	var (
		posType  string
		parentID int64
	)
	cmd := &cobra.Command{
		Use:   "create NAME BU_ID",
		Short: "Create a position in a business unit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			buID, err := parseID("business unit id", args[1])
			if err != nil {
				return err
			}
			p := &domain.Position{
				Name:           args[0],
				Type:           posType,
				BusinessUnitID: buID,
				ParentID:       optionalIDFlag(cmd, "parent-id", parentID),
			}
			if err := app.services.Positions.Create(background(cmd), p); err != nil {
				return reportMissing(cmd.OutOrStdout(), err)
			}
			printCreated(cmd.OutOrStdout(), domain.KindPosition, p.ID, p.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&posType, "type", domain.DefaultPositionType, "Position type label")
	cmd.Flags().Int64Var(&parentID, "parent-id", 0, "Position this one reports to")
	return cmd
}

func newPositionListCmd(app *App) *cobra.Command {
	var buID int64
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List positions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := background(cmd)
			positions, err := app.services.Positions.List(ctx, optionalIDFlag(cmd, "bu-id", buID))
			if err != nil {
				return err
			}
			names, err := unitNameIndex(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPositionList(positions, names))
			return nil
		},
	}
	cmd.Flags().Int64Var(&buID, "bu-id", 0, "Only positions of this business unit")
	return cmd
}

func newPositionPathCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "path ID",
		Short: "Print the reporting line up to the top position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("position id", args[0])
			if err != nil {
				return err
			}
			path, err := app.services.Hierarchy.PositionPath(background(cmd), id)
			if err != nil {
				return reportMissing(cmd.OutOrStdout(), err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPositionPath(path))
			return nil
		},
	}
}
