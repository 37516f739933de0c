package domain

import (
	"errors"
	"fmt"
)

// Kind classifies every failure the engine can report.
type Kind int

const (
	KindUnknown Kind = iota
	KindChecker
	KindLanguage
	KindCandidates
	KindParsing
)

const (
	MsgChecker    = "Checker error"
	MsgLanguage   = "Language not supported"
	MsgCandidates = "Candidates error"
	MsgParsing    = "Output parsing error"
)

func (k Kind) String() string {
	switch k {
	case KindChecker:
		return "checker"
	case KindLanguage:
		return "language"
	case KindCandidates:
		return "candidates"
	case KindParsing:
		return "parsing"
	default:
		return "unknown"
	}
}

// Error is the single error family returned by the engine. Details is a
// free-form diagnostic payload safe to show to the caller.
type Error struct {
	Kind    Kind
	Message string
	Details any
	Err     error
}

func (e *Error) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Details)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NewCheckerError reports a detector that rejected its input or failed to run.
func NewCheckerError(details any, err error) *Error {
	return &Error{Kind: KindChecker, Message: MsgChecker, Details: details, Err: err}
}

// NewLanguageError reports a language outside the registry.
func NewLanguageError(lang string) *Error {
	return &Error{Kind: KindLanguage, Message: MsgLanguage, Details: lang}
}

// NewCandidatesError reports a score map that cannot be aggregated.
func NewCandidatesError(details any) *Error {
	return &Error{Kind: KindCandidates, Message: MsgCandidates, Details: details}
}

// NewParsingError reports detector output that does not have the expected shape.
func NewParsingError(details any) *Error {
	return &Error{Kind: KindParsing, Message: MsgParsing, Details: details}
}

// KindOf returns the kind of a domain error anywhere in err's chain.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}
