// Package rpc is the session-scoped façade the engine exposes to
// external callers (spec.md §6): Convert, Compute, ListUnits,
// ListScales, ListDimensions, CheckDimensions, DefineUnit,
// DefineConversion, and Reset, plus the structured error
// shape they report on failure, grounded on
// original_source/ucon/mcp/server.py and
// original_source/ucon/suggestions.py.
package rpc

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// ErrorType enumerates the failure kinds a ToolError can report,
// mirroring suggestions.py's ConversionError.error_type values.
type ErrorType string

const (
	ErrUnknownUnit       ErrorType = "unknown_unit"
	ErrDimensionMismatch ErrorType = "dimension_mismatch"
	ErrNoConversionPath  ErrorType = "no_conversion_path"
	ErrParseError        ErrorType = "parse_error"
	ErrInvalidInput      ErrorType = "invalid_input"
)

// ToolError is the structured failure response returned by every rpc
// method instead of a bare error, so a calling agent gets an
// actionable hint rather than a stack trace.
type ToolError struct {
	Message   string    `json:"error"`
	ErrorType ErrorType `json:"error_type"`
	Parameter string    `json:"parameter,omitempty"`
	Got       string    `json:"got,omitempty"`
	Expected  string    `json:"expected,omitempty"`
	LikelyFix *string   `json:"likely_fix,omitempty"`
	Hints     []string  `json:"hints,omitempty"`
}

func (e *ToolError) Error() string { return e.Message }

const (
	maxHints    = 3
	matchCutoff = 0.6
	fixScoreMin = 0.7
	fixGapMin   = 0.1
)

// unknownUnitError builds a ToolError for a failed unit lookup,
// suggesting close matches from candidates the way
// suggestions.py's _suggest_units does.
func unknownUnitError(name, parameter string, candidates []string) *ToolError {
	matches := closeMatches(name, candidates, maxHints, matchCutoff)
	e := &ToolError{
		Message:   fmt.Sprintf("unknown unit %q", name),
		ErrorType: ErrUnknownUnit,
		Parameter: parameter,
		Got:       name,
	}
	for _, m := range matches {
		e.Hints = append(e.Hints, m.name)
	}
	if len(matches) > 0 && matches[0].score >= fixScoreMin {
		gap := matches[0].score
		if len(matches) > 1 {
			gap -= matches[1].score
		}
		if len(matches) == 1 || gap >= fixGapMin {
			fix := matches[0].name
			e.LikelyFix = &fix
		}
	}
	return e
}

type scoredMatch struct {
	name  string
	score float64
}

// closeMatches ranks candidates by difflib.SequenceMatcher ratio
// against word, keeping only those at or above cutoff and returning
// at most n, mirroring Python's difflib.get_close_matches (which this
// engine's original Python used for the same purpose); go-difflib's
// SequenceMatcher is the direct Go port of that algorithm.
func closeMatches(word string, candidates []string, n int, cutoff float64) []scoredMatch {
	wordSeq := charSeq(strings.ToLower(word))
	scored := make([]scoredMatch, 0, len(candidates))
	for _, c := range candidates {
		m := difflib.NewMatcher(wordSeq, charSeq(strings.ToLower(c)))
		ratio := m.Ratio()
		if ratio >= cutoff {
			scored = append(scored, scoredMatch{name: c, score: ratio})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
	if len(scored) > n {
		scored = scored[:n]
	}
	return scored
}

func charSeq(s string) []string {
	r := []rune(s)
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = string(c)
	}
	return out
}
