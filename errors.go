package namedargs

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeMissingRequired   = "missing_required"
	CodeDuplicateArgument = "duplicate_argument"
	CodeUnknownArgument   = "unknown_argument"
	CodeInvalidType       = "invalid_type"
	CodeInvalidSchema     = "invalid_schema"
	CodeParseError        = "parse_error"
	// Wrap/Define: the target operation cannot accept the bound sequence.
	CodeSignatureMismatch = "signature_mismatch"
)

// Issue represents a single diagnostic entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /bufsiz or /params/2).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"param":"age","position":1})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of diagnostics that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. missing_required at /name
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Codes returns the issue codes in order.
func (iss Issues) Codes() []string {
	out := make([]string, len(iss))
	for i, it := range iss {
		out[i] = it.Code
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// ErrPrecondition marks a Bind call on an argument set that does not validate.
// It is a contract breach by the caller, not a data problem.
var ErrPrecondition = errors.New("namedargs: bind precondition violated")

// PreconditionError is the panic value of Bind (and the error of TryBind) when
// the argument set fails validation.
type PreconditionError struct {
	Report Report
}

func (e *PreconditionError) Error() string {
	return ErrPrecondition.Error() + ": " + e.Report.Issues().Error()
}

// Unwrap exposes both the sentinel and the report issues to errors.Is/As.
func (e *PreconditionError) Unwrap() []error {
	return []error{ErrPrecondition, e.Report.Issues()}
}

func singleIssue(code, path, msg string) Issues {
	return AppendIssues(nil, Issue{Code: code, Path: path, Message: msg})
}
