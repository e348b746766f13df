package types

import "errors"

// Domain errors for request validation
var (
	ErrMissingToolName = errors.New("missing tool name")
	ErrUnknownTool     = errors.New("unknown tool")
	ErrEmptyQuestion   = errors.New("question cannot be empty")
	ErrQuestionTooLong = errors.New("question exceeds 500 characters")
	ErrMaxResultsRange = errors.New("max_results must be between 1 and 20")
)
