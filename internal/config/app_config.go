// Package config loads autotree settings from the user and workspace
// configuration files and validates user supplied values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/temirov/autotree/internal/report"
	"github.com/temirov/autotree/internal/tree"
	"github.com/temirov/autotree/internal/utils"
)

// Source names a configuration origin.
type Source string

const (
	// SourceAuto overlays workspace settings onto user settings.
	SourceAuto Source = "auto"
	// SourceWorkspace uses only the project's configuration file.
	SourceWorkspace Source = "workspace"
	// SourceUser uses only the configuration file in the home directory.
	SourceUser Source = "user"

	// DefaultTokenModel is used for token estimation when none is configured.
	DefaultTokenModel = "gpt-4o"
)

// ParseSource validates a source name. An empty value selects SourceAuto.
func ParseSource(value string) (Source, error) {
	switch Source(strings.ToLower(strings.TrimSpace(value))) {
	case "", SourceAuto:
		return SourceAuto, nil
	case SourceWorkspace:
		return SourceWorkspace, nil
	case SourceUser:
		return SourceUser, nil
	default:
		return "", fmt.Errorf("unsupported configuration source %q (expected %s, %s or %s)", value, SourceAuto, SourceWorkspace, SourceUser)
	}
}

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	// WorkingDirectory is the project root holding the workspace file.
	WorkingDirectory string
	// ExplicitFilePath replaces the workspace file.
	ExplicitFilePath string
	// HomeDirectory replaces the user's home directory when set.
	HomeDirectory string
}

// ApplicationConfiguration holds the settings of one configuration file.
type ApplicationConfiguration struct {
	Ignore     []string           `mapstructure:"ignore"`
	MaxDepth   *int               `mapstructure:"max_depth"`
	OutputFile string             `mapstructure:"output_file"`
	Language   string             `mapstructure:"language"`
	Copy       *bool              `mapstructure:"copy"`
	Tokens     TokenConfiguration `mapstructure:"tokens"`
	Serve      ServeConfiguration `mapstructure:"serve"`
}

// TokenConfiguration controls token estimation of the generated document.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// ServeConfiguration configures the HTTP API.
type ServeConfiguration struct {
	Address string `mapstructure:"address"`
}

// HasSettings reports whether the file configured any tree setting.
func (config ApplicationConfiguration) HasSettings() bool {
	return len(config.Ignore) > 0 || config.MaxDepth != nil || config.OutputFile != ""
}

// IgnoreNames returns the configured ignore names or the defaults.
func (config ApplicationConfiguration) IgnoreNames() []string {
	if len(config.Ignore) == 0 {
		return tree.DefaultIgnoreNames()
	}
	return append([]string{}, config.Ignore...)
}

// Depth returns the configured depth limit, zero meaning unlimited.
func (config ApplicationConfiguration) Depth() int {
	if config.MaxDepth == nil {
		return 0
	}
	return *config.MaxDepth
}

// Output returns the configured output file or the default name.
func (config ApplicationConfiguration) Output() string {
	if config.OutputFile == "" {
		return report.DefaultOutputFileName
	}
	return config.OutputFile
}

// TokenModel returns the configured tokenizer model or DefaultTokenModel.
func (config ApplicationConfiguration) TokenModel() string {
	if config.Tokens.Model == "" {
		return DefaultTokenModel
	}
	return config.Tokens.Model
}

// Sources holds the user and workspace configuration separately.
type Sources struct {
	User          ApplicationConfiguration
	Workspace     ApplicationConfiguration
	UserPath      string
	WorkspacePath string
}

// HasMultiple reports whether both sources carry tree settings.
func (sources Sources) HasMultiple() bool {
	return sources.User.HasSettings() && sources.Workspace.HasSettings()
}

// Select returns the configuration for source.
func (sources Sources) Select(source Source) ApplicationConfiguration {
	switch source {
	case SourceWorkspace:
		return sources.Workspace
	case SourceUser:
		return sources.User
	default:
		return sources.User.Merge(sources.Workspace)
	}
}

// LoadSources reads the user file from the home directory and the workspace
// file from the working directory. Missing files yield empty configurations.
func LoadSources(options LoadOptions) (Sources, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return Sources{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var sources Sources

	homeDirectory := options.HomeDirectory
	if homeDirectory == "" {
		if resolvedHome, err := os.UserHomeDir(); err == nil {
			homeDirectory = resolvedHome
		}
	}
	if homeDirectory != "" {
		sources.UserPath = filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
		userConfig, loadErr := loadConfigurationFromPath(sources.UserPath)
		if loadErr != nil {
			return Sources{}, loadErr
		}
		sources.User = userConfig
	}

	sources.WorkspacePath = resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	workspaceConfig, loadErr := loadConfigurationFromPath(sources.WorkspacePath)
	if loadErr != nil {
		return Sources{}, loadErr
	}
	sources.Workspace = workspaceConfig

	return sources, nil
}

// LoadApplicationConfiguration loads both sources and overlays the workspace
// settings onto the user settings.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	sources, err := LoadSources(options)
	if err != nil {
		return ApplicationConfiguration{}, err
	}
	return sources.Select(SourceAuto), nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) string {
	if explicitPath == "" {
		return filepath.Join(workingDirectory, utils.LocalConfigFileName)
	}
	if filepath.IsAbs(explicitPath) {
		return explicitPath
	}
	return filepath.Join(workingDirectory, explicitPath)
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		reader.SetConfigType("yaml")
	}
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config.normalize(), nil
}

// normalize keeps only positive depth limits and trimmed, unique ignore names.
func (config ApplicationConfiguration) normalize() ApplicationConfiguration {
	result := config
	if result.MaxDepth != nil && *result.MaxDepth <= 0 {
		result.MaxDepth = nil
	}
	result.Ignore = utils.DeduplicatePatterns(utils.SplitCommaSeparated(result.Ignore...))
	if len(result.Ignore) == 0 {
		result.Ignore = nil
	}
	result.OutputFile = strings.TrimSpace(result.OutputFile)
	return result
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	if len(override.Ignore) > 0 {
		result.Ignore = append([]string{}, override.Ignore...)
	}
	if override.MaxDepth != nil {
		result.MaxDepth = cloneInt(override.MaxDepth)
	}
	if override.OutputFile != "" {
		result.OutputFile = override.OutputFile
	}
	if override.Language != "" {
		result.Language = override.Language
	}
	if override.Copy != nil {
		result.Copy = cloneBool(override.Copy)
	}
	result.Tokens = result.Tokens.merge(override.Tokens)
	if override.Serve.Address != "" {
		result.Serve.Address = override.Serve.Address
	}
	return result
}

func (config TokenConfiguration) merge(override TokenConfiguration) TokenConfiguration {
	result := config
	if override.Enabled != nil {
		result.Enabled = cloneBool(override.Enabled)
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
