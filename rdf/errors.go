package rdf

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrorCode represents a programmatic error code for error handling.
type ErrorCode string

const (
	// ErrCodeParseError indicates a general parse error.
	ErrCodeParseError ErrorCode = "PARSE_ERROR"
	// ErrCodeStackCorrupted indicates a structural violation: element events
	// arrived out of step with the parser's state or subject stacks.
	ErrCodeStackCorrupted ErrorCode = "STACK_CORRUPTED"
	// ErrCodeUnresolvedPrefix indicates a qualified name used a namespace
	// prefix not bound in the current scope.
	ErrCodeUnresolvedPrefix ErrorCode = "UNRESOLVED_PREFIX"
	// ErrCodeDepthExceeded indicates that nesting depth exceeded the configured limit.
	ErrCodeDepthExceeded ErrorCode = "DEPTH_EXCEEDED"
	// ErrCodeTripleLimitExceeded indicates that the maximum number of triples was exceeded.
	ErrCodeTripleLimitExceeded ErrorCode = "TRIPLE_LIMIT_EXCEEDED"
	// ErrCodeDocumentEnded indicates an event was delivered after document end.
	ErrCodeDocumentEnded ErrorCode = "DOCUMENT_ENDED"
	// ErrCodeContextCanceled indicates the context was canceled.
	ErrCodeContextCanceled ErrorCode = "CONTEXT_CANCELED"
	// ErrCodeIOError indicates an I/O error.
	ErrCodeIOError ErrorCode = "IO_ERROR"
)

var (
	// ErrStackCorruption indicates a structural violation; the parse is
	// aborted. Triples already emitted remain valid.
	ErrStackCorruption = errors.New("rdf: parser stack corrupted")
	// ErrUnresolvedPrefix indicates a qualified name used an unbound prefix.
	// The offending statement is dropped and parsing continues; the condition
	// is surfaced through the warning handler.
	ErrUnresolvedPrefix = errors.New("rdf: unresolved namespace prefix")
	// ErrDepthExceeded indicates that nesting depth exceeded the configured limit.
	ErrDepthExceeded = errors.New("rdf: nesting depth exceeded configured limit")
	// ErrTripleLimitExceeded indicates that the maximum number of triples was exceeded.
	ErrTripleLimitExceeded = errors.New("rdf: maximum number of triples exceeded")
	// ErrDocumentEnded indicates the parser received an event after document
	// end; a parser instance is not reusable.
	ErrDocumentEnded = errors.New("rdf: parser not reusable after document end")
)

// Code returns the error code for an error, or ErrCodeParseError if unknown.
// Returns empty string for nil errors or io.EOF (which is not an error condition).
func Code(err error) ErrorCode {
	if err == nil || err == io.EOF {
		return ""
	}

	switch {
	case errors.Is(err, ErrStackCorruption):
		return ErrCodeStackCorrupted
	case errors.Is(err, ErrUnresolvedPrefix):
		return ErrCodeUnresolvedPrefix
	case errors.Is(err, ErrDepthExceeded):
		return ErrCodeDepthExceeded
	case errors.Is(err, ErrTripleLimitExceeded):
		return ErrCodeTripleLimitExceeded
	case errors.Is(err, ErrDocumentEnded):
		return ErrCodeDocumentEnded
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrCodeContextCanceled
	}

	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		if code := Code(parseErr.Err); code != "" && code != ErrCodeParseError {
			return code
		}
		return ErrCodeParseError
	}

	return ErrCodeParseError
}

// ParseError provides structured context for parse failures.
type ParseError struct {
	Element string // Qualified name of the offending element, if known
	Offset  int64  // Byte offset in input (0 if unknown)
	Err     error  // Underlying error
}

func (e *ParseError) Error() string {
	msg := "rdfxml"
	if e.Offset > 0 {
		msg += fmt.Sprintf(" (offset %d)", e.Offset)
	}
	if e.Element != "" {
		msg += fmt.Sprintf(" <%s>", e.Element)
	}
	return msg + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// wrapParseError adds element/offset context to a parse error.
func wrapParseError(element string, offset int64, err error) error {
	if err == nil {
		return nil
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return err
	}
	return &ParseError{Element: element, Offset: offset, Err: err}
}
