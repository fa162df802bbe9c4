package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/autotree/internal/config"
	"github.com/temirov/autotree/internal/services/httpapi"
)

const (
	serveUse              = "serve"
	serveShortDescription = "expose tree, depth and generate over HTTP"
	serveLongDescription  = `Start an HTTP server offering the tree, depth and generate commands as
POST /commands/{name} with a JSON body {"root", "ignore", "depth", "output"}.
GET /capabilities lists the commands. The server stops on interrupt.`
	addressFlagName        = "address"
	addressFlagDescription = "listen address; the configured address or 127.0.0.1:0 when empty"
)

// createServeCommand returns the serve subcommand.
func createServeCommand(app *application) *cobra.Command {
	var address string

	serveCommand := &cobra.Command{
		Use:   serveUse,
		Short: serveShortDescription,
		Long:  serveLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			signalContext, stop := signal.NotifyContext(command.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.serve(signalContext, address)
		},
	}
	serveCommand.Flags().StringVar(&address, addressFlagName, "", addressFlagDescription)
	return serveCommand
}

// serve runs the HTTP API until ctx is canceled.
func (app *application) serve(ctx context.Context, address string) error {
	directory, directoryErr := workingDirectory()
	if directoryErr != nil {
		return directoryErr
	}
	configuration, loadErr := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: directory,
		ExplicitFilePath: app.configFilePath,
		HomeDirectory:    app.homeDirectory,
	})
	if loadErr != nil {
		return loadErr
	}
	if address == "" {
		address = configuration.Serve.Address
	}
	catalog := app.catalogFor(configuration.Language)

	server := httpapi.NewServer(httpapi.Config{
		Address:      address,
		Capabilities: apiCapabilities(),
		Executors:    app.apiExecutors(),
		Logger:       app.logger,
	})
	runErr := server.Run(ctx, func(boundAddress string) {
		app.logger.Info(catalog.ServerListening, zap.String("address", boundAddress))
	})
	if runErr != nil {
		return runErr
	}
	app.logger.Info(catalog.ServerStopped)
	return nil
}
