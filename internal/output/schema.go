package output

import "time"

// ErrorResponse is the standard JSON error format
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// NewError creates a new error response
func NewError(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

// NewErrorWithCode creates a new error response with a code
func NewErrorWithCode(code, msg string) ErrorResponse {
	return ErrorResponse{Error: msg, Code: code}
}

// NewErrorWithDetails creates a new error response with details
func NewErrorWithDetails(msg, details string) ErrorResponse {
	return ErrorResponse{Error: msg, Details: details}
}

// SuccessResponse is a simple success indicator
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// NewSuccess creates a success response
func NewSuccess(msg string) SuccessResponse {
	return SuccessResponse{Success: true, Message: msg}
}

// TimestampedResponse adds a timestamp to any response
type TimestampedResponse struct {
	GeneratedAt time.Time `json:"generated_at"`
}

// NewTimestamped creates a timestamped response base
func NewTimestamped() TimestampedResponse {
	return TimestampedResponse{GeneratedAt: Timestamp()}
}

// TemplateItem is a single template in list and search output
type TemplateItem struct {
	Name     string `json:"name"`
	Category string `json:"category"` // language, global
	Size     int64  `json:"size,omitempty"`
	Cached   bool   `json:"cached,omitempty"`
}

// ListResponse is the output format for the list command
type ListResponse struct {
	TimestampedResponse
	Templates []TemplateItem `json:"templates"`
	Count     int            `json:"count"`
}

// SearchResponse is the output format for the search command
type SearchResponse struct {
	TimestampedResponse
	Query     string         `json:"query"`
	Templates []TemplateItem `json:"templates"`
	Count     int            `json:"count"`
}

// ShowResponse is the output format for the show command
type ShowResponse struct {
	TimestampedResponse
	Template string `json:"template"`
	Content  string `json:"content"`
	Lines    int    `json:"lines"`
}

// WriteResponse is the output format for the root generate command
type WriteResponse struct {
	TimestampedResponse
	Output    string   `json:"output"`
	Templates []string `json:"templates"`
	Failed    []string `json:"failed,omitempty"`
	Sections  int      `json:"sections"`
	Lines     int      `json:"lines"`
	Appended  bool     `json:"appended,omitempty"`
	DryRun    bool     `json:"dry_run,omitempty"`
	Content   string   `json:"content,omitempty"` // populated for dry runs
}

// UpdateResponse is the output format for the update command
type UpdateResponse struct {
	TimestampedResponse
	Source        string `json:"source"`
	TemplateCount int    `json:"template_count"`
	FetchedAt     string `json:"fetched_at"`
}

// DoctorCheck represents a single environment check
type DoctorCheck struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

// DoctorResponse is the output format for the doctor command
type DoctorResponse struct {
	TimestampedResponse
	Healthy  bool          `json:"healthy"`
	Checks   []DoctorCheck `json:"checks"`
	Platform string        `json:"platform,omitempty"`
	Kernel   string        `json:"kernel,omitempty"`
	Arch     string        `json:"arch,omitempty"`
}

// VersionResponse is the output format for the version command
type VersionResponse struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}
