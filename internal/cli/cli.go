// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/temirov/autotree/internal/messages"
	"github.com/temirov/autotree/internal/services/clipboard"
	"github.com/temirov/autotree/internal/tokenizer"
	"github.com/temirov/autotree/internal/utils"
)

const (
	versionFlagName      = "version"
	configFlagName       = "config"
	languageFlagName     = "lang"
	verboseFlagName      = "verbose"
	versionTemplate      = "autotree version: %s\n"
	defaultPath          = "."
	rootUse              = "autotree"
	rootShortDescription = "autotree command line interface"
	rootLongDescription  = `autotree renders the directory structure of a project as an indented tree
inside a fenced Markdown block and saves it next to the project.
Use generate to write the document, depth to inspect how deep a project goes,
init to scaffold a configuration file, and serve to expose the same operations over HTTP.`

	versionFlagDescription  = "display application version"
	configFlagDescription   = "workspace configuration file to use instead of .autotree.yaml"
	languageFlagDescription = "message language (en or zh); defaults to the configured language or the locale"
	verboseFlagDescription  = "log configuration details and skipped entries"

	// errorPathMissingFormat reports a root that does not exist.
	errorPathMissingFormat = "%s (%s)"
	// errorNotDirectoryFormat reports a root that is a regular file.
	errorNotDirectoryFormat = "path '%s' is not a directory"
	// errorAbsolutePathFormat reports failure to resolve an absolute path.
	errorAbsolutePathFormat = "abs failed for '%s': %w"
	// errorStatFormat reports failure to retrieve file statistics.
	errorStatFormat = "stat failed for '%s': %w"
	// workingDirectoryErrorFormat reports failure to read the working directory.
	workingDirectoryErrorFormat = "unable to determine working directory: %w"
)

// application carries the collaborators shared by every command.
type application struct {
	logger        *zap.Logger
	level         zap.AtomicLevel
	stdout        io.Writer
	copier        clipboard.Copier
	newCounter    func(tokenizer.Config) (tokenizer.Counter, string, error)
	homeDirectory string

	configFilePath   string
	languageOverride string
	verbose          bool
}

// Execute runs the autotree application. level is lowered to debug when
// --verbose is given.
func Execute(logger *zap.Logger, level zap.AtomicLevel) error {
	app := &application{
		logger:     logger,
		level:      level,
		stdout:     os.Stdout,
		copier:     clipboard.NewService(),
		newCounter: tokenizer.NewCounter,
	}
	rootCommand := createRootCommand(app)
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(app *application) *cobra.Command {
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				_, err := fmt.Fprintf(app.stdout, versionTemplate, utils.GetApplicationVersion())
				return err
			}
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if app.verbose {
				app.level.SetLevel(zapcore.DebugLevel)
			}
		},
	}
	rootCommand.Flags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	persistentFlags := rootCommand.PersistentFlags()
	persistentFlags.StringVar(&app.configFilePath, configFlagName, "", configFlagDescription)
	persistentFlags.StringVar(&app.languageOverride, languageFlagName, "", languageFlagDescription)
	registerBooleanFlag(persistentFlags, &app.verbose, verboseFlagName, false, verboseFlagDescription)

	rootCommand.AddCommand(
		createGenerateCommand(app),
		createDepthCommand(app),
		createInitCommand(app),
		createServeCommand(app),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// catalogFor selects the message table: --lang first, then the configured
// language, then the locale.
func (app *application) catalogFor(configuredLanguage string) messages.Catalog {
	if app.languageOverride != "" {
		return messages.ForLanguage(app.languageOverride)
	}
	if configuredLanguage != "" {
		return messages.ForLanguage(configuredLanguage)
	}
	return messages.Detect()
}

// traversalWarning reports entries the walker skipped. They are only visible
// with --verbose.
func (app *application) traversalWarning(catalog messages.Catalog) func(string, error) {
	return func(path string, err error) {
		app.logger.Debug(catalog.TraversalSkipped, zap.String("path", path), zap.Error(err))
	}
}

// resolveRoots converts the positional arguments into absolute project roots,
// defaulting to the working directory. Every root must be an existing
// directory.
func (app *application) resolveRoots(arguments []string) ([]string, error) {
	if len(arguments) == 0 {
		arguments = []string{defaultPath}
	}
	catalog := app.catalogFor("")
	roots := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		absolutePath, absoluteErr := filepath.Abs(argument)
		if absoluteErr != nil {
			return nil, fmt.Errorf(errorAbsolutePathFormat, argument, absoluteErr)
		}
		info, statErr := os.Stat(absolutePath)
		if statErr != nil {
			if os.IsNotExist(statErr) {
				return nil, fmt.Errorf(errorPathMissingFormat, catalog.NoWorkspace, argument)
			}
			return nil, fmt.Errorf(errorStatFormat, argument, statErr)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf(errorNotDirectoryFormat, argument)
		}
		if !utils.ContainsString(roots, absolutePath) {
			roots = append(roots, absolutePath)
		}
	}
	return roots, nil
}

func workingDirectory() (string, error) {
	directory, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf(workingDirectoryErrorFormat, err)
	}
	return directory, nil
}
