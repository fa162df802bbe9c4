package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/autotree/internal/config"
)

const (
	initUse              = "init"
	initShortDescription = "write a default configuration file"
	initLongDescription  = `Create .autotree.yaml in the current directory, or ~/.autotree/config.yaml with --global.
Existing files are kept unless --force is given.`
	globalFlagName        = "global"
	forceFlagName         = "force"
	globalFlagDescription = "write the user configuration in the home directory"
	forceFlagDescription  = "overwrite an existing configuration file"
)

// createInitCommand returns the init subcommand.
func createInitCommand(app *application) *cobra.Command {
	var global bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			directory, directoryErr := workingDirectory()
			if directoryErr != nil {
				return directoryErr
			}
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			path, initErr := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            force,
				WorkingDirectory: directory,
				HomeDirectory:    app.homeDirectory,
			})
			if initErr != nil {
				return initErr
			}
			app.logger.Info(app.catalogFor("").ConfigInitialized, zap.String("path", path))
			return nil
		},
	}
	registerBooleanFlag(initCommand.Flags(), &global, globalFlagName, false, globalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &force, forceFlagName, false, forceFlagDescription)
	return initCommand
}
