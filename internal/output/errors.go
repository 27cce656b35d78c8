package output

import (
	"fmt"
	"strings"
)

// CLIError is an error with a stable code, a user-facing message, and an
// optional hint suggesting the next command to try.
type CLIError struct {
	Code    string
	Message string
	Hint    string
	Cause   string
}

func (e *CLIError) Error() string {
	return e.Message
}

// Response converts the error to the standard JSON error format.
func (e *CLIError) Response() ErrorResponse {
	return ErrorResponse{Error: e.Message, Code: e.Code, Details: e.Cause}
}

// Format renders the error for terminal output, hint included.
func (e *CLIError) Format(color bool) string {
	var b strings.Builder
	if color {
		b.WriteString(ErrorStyle.Render("✗ " + e.Message))
	} else {
		b.WriteString("✗ " + e.Message)
	}
	if e.Cause != "" {
		b.WriteString("\n  ")
		if color {
			b.WriteString(DimStyle.Render(e.Cause))
		} else {
			b.WriteString(e.Cause)
		}
	}
	if e.Hint != "" {
		b.WriteString("\n  ")
		if color {
			b.WriteString(DimStyle.Render("Hint: " + e.Hint))
		} else {
			b.WriteString("Hint: " + e.Hint)
		}
	}
	return b.String()
}

// TemplateNotFoundError indicates a requested template does not exist upstream.
func TemplateNotFoundError(name string) *CLIError {
	return &CLIError{
		Code:    "TEMPLATE_NOT_FOUND",
		Message: fmt.Sprintf("template '%s' not found", name),
		Hint:    "Run 'gi list' to see available templates, or 'gi search <term>' to look one up.",
	}
}

// NoTemplatesError indicates nothing was requested and auto-detection found nothing.
func NoTemplatesError() *CLIError {
	return &CLIError{
		Code:    "NO_TEMPLATES",
		Message: "no templates requested and auto-detection found none",
		Hint:    "Pass template names, e.g. 'gi python node', or run 'gi list' to browse.",
	}
}

// AllFetchesFailedError indicates every requested template failed to download.
func AllFetchesFailedError(count int) *CLIError {
	return &CLIError{
		Code:    "FETCH_FAILED",
		Message: fmt.Sprintf("all %d templates failed to fetch", count),
		Hint:    "Check your network connection, or run 'gi doctor' to inspect the cache.",
	}
}

// OutputExistsError indicates the target file exists and no overwrite mode was chosen.
func OutputExistsError(path string) *CLIError {
	return &CLIError{
		Code:    "OUTPUT_EXISTS",
		Message: fmt.Sprintf("%s already exists", path),
		Hint:    "Re-run with --force to overwrite or --append to add to the existing file.",
	}
}

// ConfigLoadError indicates the config file could not be read or parsed.
func ConfigLoadError(cause string) *CLIError {
	return &CLIError{
		Code:    "CONFIG_ERROR",
		Message: "failed to load configuration",
		Hint:    "Check the TOML syntax in your config file, or delete it to use defaults.",
		Cause:   cause,
	}
}

// IndexUnavailableError indicates the template index could not be fetched or read.
func IndexUnavailableError(cause string) *CLIError {
	return &CLIError{
		Code:    "INDEX_UNAVAILABLE",
		Message: "template index unavailable",
		Hint:    "Run 'gi update' when a network connection is available.",
		Cause:   cause,
	}
}
