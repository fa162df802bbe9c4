package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/temirov/autotree/internal/config"
	"github.com/temirov/autotree/internal/messages"
	"github.com/temirov/autotree/internal/tree"
)

const (
	ignoreListSeparator      = ","
	errorIgnoreFileFormat    = "read ignore file for %s: %w"
	errorConfigurationFormat = "load configuration for %s: %w"
)

// projectSettings is the configuration in effect for one root after the
// command line has been applied.
type projectSettings struct {
	root          string
	catalog       messages.Catalog
	configuration config.ApplicationConfiguration
	ignoreNames   []string
}

// ignoreOverride carries --ignore values; set reports whether the flag was
// given at all.
type ignoreOverride struct {
	values []string
	set    bool
}

// loadProjectSettings reads the configuration sources of root, applies the
// ignore override and appends the names listed in the root's ignore file.
func (app *application) loadProjectSettings(root string, source config.Source, override ignoreOverride) (projectSettings, error) {
	sources, loadErr := config.LoadSources(config.LoadOptions{
		WorkingDirectory: root,
		ExplicitFilePath: app.configFilePath,
		HomeDirectory:    app.homeDirectory,
	})
	if loadErr != nil {
		return projectSettings{}, fmt.Errorf(errorConfigurationFormat, root, loadErr)
	}
	configuration := sources.Select(source)
	catalog := app.catalogFor(configuration.Language)
	if source == config.SourceAuto && sources.HasMultiple() {
		app.logger.Info(catalog.MultipleSources(catalog.WorkspaceSource))
	}

	ignoreNames := configuration.IgnoreNames()
	if override.set {
		ignoreNames = config.ParseIgnoreList(strings.Join(override.values, ignoreListSeparator))
	}
	fileNames, ignoreFileErr := config.LoadIgnoreNames(filepath.Join(root, config.IgnoreFileName))
	if ignoreFileErr != nil {
		return projectSettings{}, fmt.Errorf(errorIgnoreFileFormat, root, ignoreFileErr)
	}
	ignoreNames = append(ignoreNames, fileNames...)

	ignoredForDisplay := tree.NewIgnoreSet(ignoreNames...).Names()
	app.logger.Debug(catalog.ConfigInfo(sourceLabel(catalog, source, sources), ignoredForDisplay, configuration.Depth(), configuration.Output()))
	return projectSettings{
		root:          root,
		catalog:       catalog,
		configuration: configuration,
		ignoreNames:   ignoreNames,
	}, nil
}

func sourceLabel(catalog messages.Catalog, source config.Source, sources config.Sources) string {
	switch {
	case source == config.SourceUser:
		return catalog.UserSource
	case source == config.SourceWorkspace:
		return catalog.WorkspaceSource
	case sources.Workspace.HasSettings():
		return catalog.WorkspaceSource
	case sources.User.HasSettings():
		return catalog.UserSource
	default:
		return catalog.DefaultSource
	}
}
