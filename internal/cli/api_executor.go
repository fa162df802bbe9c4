package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/autotree/internal/config"
	"github.com/temirov/autotree/internal/generator"
	"github.com/temirov/autotree/internal/report"
	"github.com/temirov/autotree/internal/services/httpapi"
)

const (
	apiCommandTree     = "tree"
	apiCommandDepth    = "depth"
	apiCommandGenerate = "generate"

	errorRootRequired    = "root is required"
	errorRootNotFound    = "root %q is not a directory"
	errorDecodeRequest   = "decode %s request: %w"
	errorNegativeDepth   = "depth must not be negative"
	errorOutputAbsolute  = "output %q must be relative to the root"
	errorOutputEscapes   = "output %q must stay inside the root"
	apiConfigurationNote = "configuration"
)

// commandPayload is the JSON body accepted by every API command.
type commandPayload struct {
	Root   string   `json:"root"`
	Ignore []string `json:"ignore"`
	Depth  int      `json:"depth"`
	Output string   `json:"output"`
}

func apiCapabilities() []httpapi.Capability {
	return []httpapi.Capability{
		{Name: apiCommandTree, Description: "Render the project tree document without writing it"},
		{Name: apiCommandDepth, Description: "Report the deepest nesting level of a project"},
		{Name: apiCommandGenerate, Description: "Render the project tree document and write it into the project"},
	}
}

func (app *application) apiExecutors() map[string]httpapi.CommandExecutor {
	return map[string]httpapi.CommandExecutor{
		apiCommandTree:     httpapi.CommandExecutorFunc(app.executeTreeCommand),
		apiCommandDepth:    httpapi.CommandExecutorFunc(app.executeDepthCommand),
		apiCommandGenerate: httpapi.CommandExecutorFunc(app.executeGenerateCommand),
	}
}

func (app *application) executeTreeCommand(_ context.Context, request httpapi.CommandRequest) (httpapi.CommandResponse, error) {
	generationRequest, settings, prepareErr := app.prepareAPIRequest(apiCommandTree, request)
	if prepareErr != nil {
		return httpapi.CommandResponse{}, prepareErr
	}
	result := generator.Preview(generationRequest)
	return depthResponse(settings, result), nil
}

func (app *application) executeGenerateCommand(_ context.Context, request httpapi.CommandRequest) (httpapi.CommandResponse, error) {
	generationRequest, settings, prepareErr := app.prepareAPIRequest(apiCommandGenerate, request)
	if prepareErr != nil {
		return httpapi.CommandResponse{}, prepareErr
	}
	result, generateErr := generator.Generate(generationRequest)
	if generateErr != nil {
		var writeError *report.WriteError
		if errors.As(generateErr, &writeError) {
			return httpapi.CommandResponse{}, httpapi.NewCommandExecutionError(http.StatusInternalServerError, fmt.Errorf("%s %w", settings.catalog.WriteFailed, generateErr))
		}
		return httpapi.CommandResponse{}, generateErr
	}
	response := depthResponse(settings, result)
	response.OutputPath = result.OutputPath
	response.Notices = append(response.Notices, settings.catalog.Generated(result.OutputPath))
	return response, nil
}

func (app *application) executeDepthCommand(_ context.Context, request httpapi.CommandRequest) (httpapi.CommandResponse, error) {
	_, settings, prepareErr := app.prepareAPIRequest(apiCommandDepth, request)
	if prepareErr != nil {
		return httpapi.CommandResponse{}, prepareErr
	}
	projectDepth := generator.ProjectDepth(settings.root, settings.ignoreNames)
	return httpapi.CommandResponse{
		Root:            settings.root,
		ProjectMaxDepth: projectDepth,
		Notices:         []string{settings.catalog.ProjectDepth(settings.root, projectDepth)},
	}, nil
}

// prepareAPIRequest decodes and validates a payload and merges it with the
// configuration stored in the requested root.
func (app *application) prepareAPIRequest(commandName string, request httpapi.CommandRequest) (generator.Request, projectSettings, error) {
	var payload commandPayload
	if len(request.Payload) > 0 {
		if decodeErr := json.Unmarshal(request.Payload, &payload); decodeErr != nil {
			return generator.Request{}, projectSettings{}, httpapi.NewCommandExecutionError(http.StatusBadRequest, fmt.Errorf(errorDecodeRequest, commandName, decodeErr))
		}
	}
	root := strings.TrimSpace(payload.Root)
	if root == "" {
		return generator.Request{}, projectSettings{}, httpapi.NewCommandExecutionError(http.StatusBadRequest, errors.New(errorRootRequired))
	}
	absoluteRoot, absoluteErr := filepath.Abs(root)
	if absoluteErr != nil {
		return generator.Request{}, projectSettings{}, httpapi.NewCommandExecutionError(http.StatusBadRequest, fmt.Errorf(errorAbsolutePathFormat, root, absoluteErr))
	}
	if info, statErr := os.Stat(absoluteRoot); statErr != nil || !info.IsDir() {
		return generator.Request{}, projectSettings{}, httpapi.NewCommandExecutionError(http.StatusBadRequest, fmt.Errorf(errorRootNotFound, root))
	}
	if payload.Depth < 0 {
		return generator.Request{}, projectSettings{}, httpapi.NewCommandExecutionError(http.StatusBadRequest, fmt.Errorf("%w: %s", config.ErrInvalidDepth, errorNegativeDepth))
	}

	settings, settingsErr := app.loadProjectSettings(absoluteRoot, config.SourceAuto, ignoreOverride{
		values: payload.Ignore,
		set:    len(payload.Ignore) > 0,
	})
	if settingsErr != nil {
		return generator.Request{}, projectSettings{}, httpapi.NewCommandExecutionError(http.StatusInternalServerError, fmt.Errorf("%s: %w", apiConfigurationNote, settingsErr))
	}

	depth := settings.configuration.Depth()
	if payload.Depth > 0 {
		depth = payload.Depth
	}
	outputFile := settings.configuration.Output()
	if strings.TrimSpace(payload.Output) != "" {
		if outputErr := validateOutputInsideRoot(absoluteRoot, payload.Output); outputErr != nil {
			return generator.Request{}, projectSettings{}, httpapi.NewCommandExecutionError(http.StatusBadRequest, outputErr)
		}
		outputFile = payload.Output
	}
	return generator.Request{
		Root:           absoluteRoot,
		IgnoreNames:    settings.ignoreNames,
		RequestedDepth: depth,
		OutputFile:     outputFile,
		Warn:           app.traversalWarning(settings.catalog),
	}, settings, nil
}

func depthResponse(settings projectSettings, result generator.Result) httpapi.CommandResponse {
	response := httpapi.CommandResponse{
		Root:            result.Root,
		Output:          result.Document,
		RequestedDepth:  result.Depth.Requested,
		ProjectMaxDepth: result.Depth.ProjectMax,
		EffectiveDepth:  result.Depth.Effective,
		DepthAdjusted:   result.Depth.Clamped,
	}
	if result.Depth.Clamped {
		response.Notices = append(response.Notices, settings.catalog.DepthAdjustedToMax(result.Depth.Effective))
	}
	return response
}

// validateOutputInsideRoot accepts only relative output names that resolve to
// a file below root.
func validateOutputInsideRoot(root string, output string) error {
	trimmedOutput := strings.TrimSpace(output)
	if filepath.IsAbs(trimmedOutput) || filepath.VolumeName(trimmedOutput) != "" {
		return fmt.Errorf(errorOutputAbsolute, output)
	}
	relativePath, relativeErr := filepath.Rel(root, filepath.Join(root, trimmedOutput))
	if relativeErr != nil || relativePath == "." || relativePath == ".." || strings.HasPrefix(relativePath, ".."+string(filepath.Separator)) {
		return fmt.Errorf(errorOutputEscapes, output)
	}
	return nil
}
