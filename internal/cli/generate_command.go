package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/autotree/internal/config"
	"github.com/temirov/autotree/internal/generator"
	"github.com/temirov/autotree/internal/messages"
	"github.com/temirov/autotree/internal/tokenizer"
)

const (
	generateUse              = "generate [paths...]"
	generateAlias            = "g"
	generateShortDescription = "write the project tree document (" + generateAlias + ")"
	// generateLongDescription provides detailed help for the generate command.
	generateLongDescription = `Render the directory tree of each project root and save it as a fenced
Markdown document inside that root. Several roots are processed independently.
A --depth larger than the project's own depth is lowered to it.`
	// generateUsageExample demonstrates generate command usage.
	generateUsageExample = `  # Write PROJECT_TREE.md for the current directory
  autotree generate

  # Limit the depth and skip build output
  autotree generate -d 2 -i node_modules,.git,dist ./web

  # Print the document and copy it to the clipboard without changing the file name
  autotree g --print --copy`

	ignoreFlagName        = "ignore"
	ignoreFlagShorthand   = "i"
	depthFlagName         = "depth"
	depthFlagShorthand    = "d"
	outputFlagName        = "output"
	outputFlagShorthand   = "o"
	sourceFlagName        = "source"
	copyFlagName          = "copy"
	tokensFlagName        = "tokens"
	modelFlagName         = "model"
	printFlagName         = "print"
	ignoreFlagDescription = "entry names to skip at any depth; repeat or separate with commas"
	depthFlagDescription  = "maximum nesting level to render; 0 renders everything"
	outputFlagDescription = "output file, relative to each root unless absolute"
	sourceFlagDescription = "configuration source: auto, workspace or user"
	copyFlagDescription   = "copy the generated document to the clipboard"
	tokensFlagDescription = "report the token count of the generated document"
	modelFlagDescription  = "tokenizer model to use for token counting"
	printFlagDescription  = "also write the generated document to standard output"

	errorDepthFormat           = "%s %w"
	errorWriteFormat           = "%s %w"
	warningTokenCountMessage   = "token count failed"
	warningClipboardMessage    = "clipboard copy failed"
	documentSeparatorClipboard = "\n"
)

// generateOptions stores the generate command flags.
type generateOptions struct {
	ignoreValues  []string
	depthValue    string
	outputFile    string
	sourceValue   string
	copyEnabled   bool
	tokensEnabled bool
	tokenModel    string
	printDocument bool
}

// generationPlan is one validated root ready to be rendered.
type generationPlan struct {
	settings      projectSettings
	request       generator.Request
	copyEnabled   bool
	tokensEnabled bool
	tokenModel    string
}

// createGenerateCommand returns the generate subcommand.
func createGenerateCommand(app *application) *cobra.Command {
	var options generateOptions

	generateCommand := &cobra.Command{
		Use:     generateUse,
		Aliases: []string{generateAlias},
		Short:   generateShortDescription,
		Long:    generateLongDescription,
		Example: generateUsageExample,
		Args:    cobra.ArbitraryArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return app.runGenerate(command.Flags(), arguments, options)
		},
	}
	flags := generateCommand.Flags()
	flags.StringArrayVarP(&options.ignoreValues, ignoreFlagName, ignoreFlagShorthand, nil, ignoreFlagDescription)
	flags.StringVarP(&options.depthValue, depthFlagName, depthFlagShorthand, "", depthFlagDescription)
	flags.StringVarP(&options.outputFile, outputFlagName, outputFlagShorthand, "", outputFlagDescription)
	flags.StringVar(&options.sourceValue, sourceFlagName, string(config.SourceAuto), sourceFlagDescription)
	registerBooleanFlag(flags, &options.copyEnabled, copyFlagName, false, copyFlagDescription)
	registerBooleanFlag(flags, &options.tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	flags.StringVar(&options.tokenModel, modelFlagName, "", modelFlagDescription)
	registerBooleanFlag(flags, &options.printDocument, printFlagName, false, printFlagDescription)
	return generateCommand
}

// runGenerate validates every root before rendering any of them, then renders
// the roots concurrently and reports their outcomes in argument order.
func (app *application) runGenerate(flags *pflag.FlagSet, arguments []string, options generateOptions) error {
	roots, rootsErr := app.resolveRoots(arguments)
	if rootsErr != nil {
		return rootsErr
	}
	source, sourceErr := config.ParseSource(options.sourceValue)
	if sourceErr != nil {
		return sourceErr
	}

	plans := make([]generationPlan, 0, len(roots))
	for _, root := range roots {
		plan, planErr := app.planGeneration(flags, root, source, options)
		if planErr != nil {
			return planErr
		}
		plans = append(plans, plan)
	}

	results := make([]generator.Result, len(plans))
	failures := make([]error, len(plans))
	var group errgroup.Group
	for index, plan := range plans {
		index, plan := index, plan
		group.Go(func() error {
			result, generateErr := generator.Generate(plan.request)
			results[index] = result
			if generateErr != nil {
				failures[index] = fmt.Errorf(errorWriteFormat, plan.settings.catalog.WriteFailed, generateErr)
			}
			return failures[index]
		})
	}
	waitErr := group.Wait()

	var clipboardDocuments []string
	for index, plan := range plans {
		catalog := plan.settings.catalog
		result := results[index]
		if result.Depth.Clamped {
			app.logger.Info(catalog.DepthAdjustedToMax(result.Depth.Effective))
		}
		if failures[index] != nil {
			app.logger.Error(failures[index].Error())
			continue
		}
		app.logger.Info(catalog.Generated(result.OutputPath))
		if options.printDocument {
			if _, printErr := fmt.Fprint(app.stdout, result.Document); printErr != nil {
				return printErr
			}
		}
		if plan.tokensEnabled {
			app.reportTokens(catalog, plan.tokenModel, result)
		}
		if plan.copyEnabled {
			clipboardDocuments = append(clipboardDocuments, result.Document)
		}
	}
	if len(clipboardDocuments) > 0 {
		app.copyDocuments(plans[0].settings.catalog, clipboardDocuments)
	}
	return waitErr
}

// planGeneration resolves the settings of root and applies the command line
// overrides on top of the configuration.
func (app *application) planGeneration(flags *pflag.FlagSet, root string, source config.Source, options generateOptions) (generationPlan, error) {
	settings, settingsErr := app.loadProjectSettings(root, source, ignoreOverride{
		values: options.ignoreValues,
		set:    flags.Changed(ignoreFlagName),
	})
	if settingsErr != nil {
		return generationPlan{}, settingsErr
	}
	configuration := settings.configuration

	depth := configuration.Depth()
	if flags.Changed(depthFlagName) {
		parsedDepth, depthErr := config.ParseDepth(options.depthValue)
		if depthErr != nil {
			return generationPlan{}, fmt.Errorf(errorDepthFormat, settings.catalog.InvalidDepth, depthErr)
		}
		depth = parsedDepth
	}
	outputFile := configuration.Output()
	if flags.Changed(outputFlagName) && strings.TrimSpace(options.outputFile) != "" {
		outputFile = options.outputFile
	}
	tokenModel := configuration.TokenModel()
	if flags.Changed(modelFlagName) {
		tokenModel = options.tokenModel
	}

	return generationPlan{
		settings: settings,
		request: generator.Request{
			Root:           root,
			IgnoreNames:    settings.ignoreNames,
			RequestedDepth: depth,
			OutputFile:     outputFile,
			Warn:           app.traversalWarning(settings.catalog),
		},
		copyEnabled:   resolveToggle(flags, copyFlagName, options.copyEnabled, configuration.Copy),
		tokensEnabled: resolveToggle(flags, tokensFlagName, options.tokensEnabled, configuration.Tokens.Enabled),
		tokenModel:    tokenModel,
	}, nil
}

// resolveToggle prefers an explicit flag over the configured value.
func resolveToggle(flags *pflag.FlagSet, name string, flagValue bool, configured *bool) bool {
	if flags.Changed(name) {
		return flagValue
	}
	return configured != nil && *configured
}

func (app *application) reportTokens(catalog messages.Catalog, model string, result generator.Result) {
	counter, resolvedModel, counterErr := app.newCounter(tokenizer.Config{Model: model})
	if counterErr != nil {
		app.logger.Warn(warningTokenCountMessage, zap.Error(counterErr))
		return
	}
	tokens, countErr := tokenizer.CountDocument(counter, result.Document)
	if countErr != nil {
		app.logger.Warn(warningTokenCountMessage, zap.String("path", result.OutputPath), zap.Error(countErr))
		return
	}
	app.logger.Info(catalog.TokenCount(result.OutputPath, tokens, resolvedModel))
}

// copyDocuments places the documents on the clipboard. Clipboard failures do
// not fail the generation since the files are already written.
func (app *application) copyDocuments(catalog messages.Catalog, documents []string) {
	copyErr := app.copier.Copy(strings.Join(documents, documentSeparatorClipboard))
	if copyErr != nil {
		app.logger.Warn(warningClipboardMessage, zap.Error(copyErr))
		return
	}
	app.logger.Info(catalog.CopiedToClipboard)
}
