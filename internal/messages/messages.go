// Package messages holds the user facing strings of autotree in English and
// Chinese and selects one table from the locale.
package messages

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
)

var localeEnvironmentVariables = []string{"LC_ALL", "LC_MESSAGES", "LANG"}

// Catalog is one static string table.
type Catalog struct {
	Language language.Tag

	NoWorkspace        string
	InvalidDepth       string
	WriteFailed        string
	WorkspaceSource    string
	UserSource         string
	DefaultSource      string
	Unlimited          string
	CopiedToClipboard  string
	ServerListening    string
	ServerStopped      string
	TraversalSkipped   string
	ConfigInitialized  string
	generatedFormat    string
	depthAdjustedFmt   string
	projectDepthFormat string
	configInfoFormat   string
	multipleSources    string
	tokenCountFormat   string
}

var english = Catalog{
	Language:           language.English,
	NoWorkspace:        "No workspace folder found. Open a folder first.",
	InvalidDepth:       "Invalid input. Please enter a positive integer (no decimals, no signs).",
	WriteFailed:        "Failed to write output file:",
	WorkspaceSource:    "Workspace Config",
	UserSource:         "User Config",
	DefaultSource:      "Default Config",
	Unlimited:          "unlimited",
	CopiedToClipboard:  "Project tree copied to clipboard.",
	ServerListening:    "Listening on",
	ServerStopped:      "Server stopped.",
	TraversalSkipped:   "Skipped unreadable entry",
	ConfigInitialized:  "Configuration written to",
	generatedFormat:    "Project tree generated: %s",
	depthAdjustedFmt:   "Input depth exceeds project max file depth. Using project max = %d.",
	projectDepthFormat: "%s: project max depth = %d",
	configInfoFormat:   "%s:\nIgnore: %s\nDepth: %s\nOutput: %s",
	multipleSources:    "Multiple configuration sources detected. Using %s; pass --source to choose another.",
	tokenCountFormat:   "%s: %d tokens (%s)",
}

var chinese = Catalog{
	Language:           language.Chinese,
	NoWorkspace:        "未检测到工作区文件夹，请先打开一个文件夹。",
	InvalidDepth:       "输入不合法。请输入正整数（不接受小数、正负号或其他字符）。",
	WriteFailed:        "写入输出文件失败：",
	WorkspaceSource:    "工作区配置",
	UserSource:         "用户配置",
	DefaultSource:      "默认配置",
	Unlimited:          "无限制",
	CopiedToClipboard:  "项目结构已复制到剪贴板。",
	ServerListening:    "正在监听",
	ServerStopped:      "服务已停止。",
	TraversalSkipped:   "已跳过无法读取的条目",
	ConfigInitialized:  "配置已写入",
	generatedFormat:    "项目结构已生成：%s",
	depthAdjustedFmt:   "输入深度超过项目最大文件层级，已使用项目最大层级 = %d。",
	projectDepthFormat: "%s：项目最大层级 = %d",
	configInfoFormat:   "%s：\n忽略项: %s\n深度: %s\n输出文件: %s",
	multipleSources:    "检测到多处配置，当前使用%s；可通过 --source 选择其他配置。",
	tokenCountFormat:   "%s：%d 个 token（%s）",
}

// Generated reports the written output file.
func (catalog Catalog) Generated(outputFile string) string {
	return fmt.Sprintf(catalog.generatedFormat, outputFile)
}

// DepthAdjustedToMax reports a requested depth replaced by the project maximum.
func (catalog Catalog) DepthAdjustedToMax(projectMax int) string {
	return fmt.Sprintf(catalog.depthAdjustedFmt, projectMax)
}

// ProjectDepth reports the natural depth of a project.
func (catalog Catalog) ProjectDepth(root string, depth int) string {
	return fmt.Sprintf(catalog.projectDepthFormat, root, depth)
}

// ConfigInfo describes one configuration source.
func (catalog Catalog) ConfigInfo(source string, ignoreNames []string, maxDepth int, outputFile string) string {
	depth := catalog.Unlimited
	if maxDepth > 0 {
		depth = fmt.Sprintf("%d", maxDepth)
	}
	return fmt.Sprintf(catalog.configInfoFormat, source, strings.Join(ignoreNames, ", "), depth, outputFile)
}

// MultipleSources reports which of several configuration sources was used.
func (catalog Catalog) MultipleSources(selectedSource string) string {
	return fmt.Sprintf(catalog.multipleSources, selectedSource)
}

// TokenCount reports the estimated token count of a document.
func (catalog Catalog) TokenCount(outputFile string, tokens int, model string) string {
	return fmt.Sprintf(catalog.tokenCountFormat, outputFile, tokens, model)
}

// English returns the English table.
func English() Catalog {
	return english
}

// ForLanguage selects the table for a locale or language identifier such as
// "zh_CN.UTF-8", "zh-Hant" or "en". Anything that is not Chinese, including
// unparsable values, selects English.
func ForLanguage(value string) Catalog {
	tag, parseError := language.Parse(normalizeLocale(value))
	if parseError != nil {
		return english
	}
	base, _ := tag.Base()
	chineseBase, _ := language.Chinese.Base()
	if base == chineseBase {
		return chinese
	}
	return english
}

// Detect selects the table from the process locale environment.
func Detect() Catalog {
	for _, variableName := range localeEnvironmentVariables {
		if value := strings.TrimSpace(os.Getenv(variableName)); value != "" {
			return ForLanguage(value)
		}
	}
	return english
}

func normalizeLocale(value string) string {
	normalized := strings.TrimSpace(value)
	if index := strings.IndexAny(normalized, ".@"); index >= 0 {
		normalized = normalized[:index]
	}
	return strings.ReplaceAll(normalized, "_", "-")
}
