// Package diag implements the compiler's structured diagnostics: the numeric
// ParseResult of spec section 4.7 and the caret-style rendering of section 7.
package diag

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Status is one of the numeric codes from spec section 4.7/7. Zero is
// success; every other value halts compilation of the current line.
type Status int

const (
	OK Status = 0

	// Lexical, section 4.1.
	StatusInvalidChar       Status = 1
	StatusIdentStartsDigit  Status = 2
	StatusIdentStartsUnder  Status = 3

	// Syntactic, section 4.2.
	StatusNoAction       Status = 101
	StatusCannotShift    Status = 102
	StatusUnexpectedKind Status = 103
	StatusTableCorrupt   Status = 104

	// Semantic, section 4.7.
	StatusTooFewTokens     Status = 201
	StatusBadRHSForm       Status = 202
	StatusOutputConflict   Status = 203
	StatusDirectionConflict Status = 204
	StatusScalerNotSingle  Status = 205
	StatusLemoConflict     Status = 206
	StatusUndefinedVar     Status = 207
	StatusNestedDownscale  Status = 208
	StatusExternNotClock   Status = 209

	// Resource, section 4.7.
	StatusPoolExhausted Status = 300
)

var explanations = map[Status]string{
	StatusInvalidChar:      "invalid character",
	StatusIdentStartsDigit: "identifier starts with a digit",
	StatusIdentStartsUnder: "identifier starts with an underscore",

	StatusNoAction:       "no action defined for this token here",
	StatusCannotShift:    "this token cannot be shifted in this state",
	StatusUnexpectedKind: "unexpected token kind",
	StatusTableCorrupt:   "parser table is corrupt",

	StatusTooFewTokens:      "assignment requires a target, '=', and an expression",
	StatusBadRHSForm:        "token is not acceptable here",
	StatusOutputConflict:    "target already has a source in this plan",
	StatusDirectionConflict: "port used as both input and output",
	StatusScalerNotSingle:   "scaler right-hand side must be a single identifier",
	StatusLemoConflict:      "port used as both LEMO and LVDS",
	StatusUndefinedVar:      "referenced variable is undefined",
	StatusNestedDownscale:   "nested downscale is not supported",
	StatusExternNotClock:    "Extern right-hand side must be a single clock",

	StatusPoolExhausted: "a finite resource pool is exhausted",
}

var titleCaser = cases.Title(language.English)

// Explain returns a human-readable, title-cased explanation of status, or
// "unknown error" if status is not a recognized code.
func Explain(status Status) string {
	msg, ok := explanations[status]
	if !ok {
		return "unknown error"
	}
	return titleCaser.String(msg)
}

// Result is the wire-level ParseResult of spec section 6: a status code plus
// the byte position and length of the offending token in the original line.
// A zero Status denotes success.
type Result struct {
	Status   Status
	Position int
	Length   int
}

// Ok reports whether the result denotes success.
func (r Result) Ok() bool {
	return r.Status == OK
}

func (r Result) Error() string {
	if r.Ok() {
		return "ok"
	}
	return fmt.Sprintf("status %d at %d (len %d): %s", r.Status, r.Position, r.Length, Explain(r.Status))
}

// Render produces the user-visible "[Error] ..." caret message of spec
// section 7, pointing at the offending range of line.
func (r Result) Render(line string) string {
	if r.Ok() {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "[Error] %s\n  ", Explain(r.Status))

	pos := r.Position
	length := r.Length
	if length < 1 {
		length = 1
	}
	if pos < 0 {
		pos = 0
	}
	if pos > len(line) {
		pos = len(line)
	}
	end := pos + length
	if end > len(line) {
		end = len(line)
	}

	sb.WriteString(line[:pos])
	sb.WriteString("\033[31m")
	sb.WriteString(line[pos:end])
	sb.WriteString("\033[0m")
	sb.WriteString(line[end:])
	sb.WriteRune('\n')

	return sb.String()
}

// New builds a failing Result for status, with no particular source range.
// Used for whole-line errors such as 201 and 208.
func New(status Status) Result {
	return Result{Status: status}
}

// At builds a failing Result localized to [position, position+length).
func At(status Status, position, length int) Result {
	return Result{Status: status, Position: position, Length: length}
}
