package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/autotree/internal/config"
	"github.com/temirov/autotree/internal/generator"
)

const (
	depthUse              = "depth [paths...]"
	depthShortDescription = "print the deepest nesting level of each project"
	// depthLongDescription provides detailed help for the depth command.
	depthLongDescription = `Report how many levels deep each project goes once ignored names are
skipped. The value is the largest --depth that still changes the rendered tree.`
	// depthUsageExample demonstrates depth command usage.
	depthUsageExample = `  # Inspect the current project
  autotree depth

  # Inspect two projects, also skipping vendor directories
  autotree depth -i node_modules,.git,vendor ./api ./web`
)

// createDepthCommand returns the depth subcommand.
func createDepthCommand(app *application) *cobra.Command {
	var ignoreValues []string
	var sourceValue string

	depthCommand := &cobra.Command{
		Use:     depthUse,
		Short:   depthShortDescription,
		Long:    depthLongDescription,
		Example: depthUsageExample,
		Args:    cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			roots, rootsErr := app.resolveRoots(arguments)
			if rootsErr != nil {
				return rootsErr
			}
			source, sourceErr := config.ParseSource(sourceValue)
			if sourceErr != nil {
				return sourceErr
			}
			override := ignoreOverride{values: ignoreValues, set: command.Flags().Changed(ignoreFlagName)}
			for _, root := range roots {
				settings, settingsErr := app.loadProjectSettings(root, source, override)
				if settingsErr != nil {
					return settingsErr
				}
				projectDepth := generator.ProjectDepth(root, settings.ignoreNames)
				if _, printErr := fmt.Fprintln(app.stdout, settings.catalog.ProjectDepth(root, projectDepth)); printErr != nil {
					return printErr
				}
			}
			return nil
		},
	}
	depthCommand.Flags().StringArrayVarP(&ignoreValues, ignoreFlagName, ignoreFlagShorthand, nil, ignoreFlagDescription)
	depthCommand.Flags().StringVar(&sourceValue, sourceFlagName, string(config.SourceAuto), sourceFlagDescription)
	return depthCommand
}
