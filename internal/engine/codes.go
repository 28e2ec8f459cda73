package engine

// Issue codes shared with the public package.
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeUnknownKey    = "unknown_key"
	CodeDuplicateKey  = "duplicate_key"
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
	CodePattern       = "pattern"
	CodeInvalidEnum   = "invalid_enum"
	CodeInvalidFormat = "invalid_format"
	CodeParseError    = "parse_error"
	CodeTruncated     = "truncated"
)

// Keywords that can raise a violation and can therefore carry an errorMessage.
var keywordCodes = map[string]string{
	"type":                 CodeInvalidType,
	"enum":                 CodeInvalidEnum,
	"minLength":            CodeTooShort,
	"maxLength":            CodeTooLong,
	"pattern":              CodePattern,
	"format":               CodeInvalidFormat,
	"minimum":              CodeTooSmall,
	"maximum":              CodeTooBig,
	"exclusiveMinimum":     CodeTooSmall,
	"exclusiveMaximum":     CodeTooBig,
	"required":             CodeRequired,
	"additionalProperties": CodeUnknownKey,
	"minItems":             CodeTooShort,
	"maxItems":             CodeTooLong,
}

// Violation is one failed constraint at one instance location.
type Violation struct {
	Path    string // JSON Pointer; "/" is the root.
	Keyword string
	Code    string
	Message string
	Params  map[string]any
}

// IssueError is a lightweight error carrying a Violation.
type IssueError struct{ Violation }

func (e IssueError) Error() string { return e.Violation.Message }
