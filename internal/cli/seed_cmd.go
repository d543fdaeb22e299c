package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/pmo/internal/api"
	"github.com/alexanderramin/pmo/internal/cli/formatter"
	"github.com/alexanderramin/pmo/internal/metrics"
	"github.com/alexanderramin/pmo/internal/service"
)

func newSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create a sample business unit with a fully populated project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := app.services.Seed.CreateSampleData(background(cmd))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSampleData(data))
			return nil
		},
	}
}

func newServeCmd(app *App) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the REST API and admin views",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("port") {
				port = app.Config.Server.Port
			}
			if port < 1 || port > 65535 {
				return fmt.Errorf("port %d out of range", port)
			}

			m := metrics.New(nil, app.Config.Metrics.Prefix)
			services := service.New(app.db, app.Clock, service.NewLogUseCaseObserver(app.Logger), m)
			srv := api.NewServer(app.db, services, api.Options{Logger: app.Logger, Metrics: m})

			ctx, stop := signal.NotifyContext(background(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx, fmt.Sprintf(":%d", port))
		},
	}
	cmd.Flags().IntVar(&port, "port", 8000, "Listen port")
	return cmd
}
