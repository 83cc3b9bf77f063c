package pipeline

import "errors"

// Error taxonomy for a grant-derivation run. Only ErrDocumentUnavailable
// aborts the whole run; the rest are absorbed locally, counted in
// Diagnostics, and never change the shape of the produced script beyond
// omitting the affected grants.
var (
	// ErrDocumentUnavailable means the agent specification could not be
	// fetched. Fatal: zero grants are produced.
	ErrDocumentUnavailable = errors.New("agent specification unavailable")

	// ErrDocumentUnparsable means one dataset definition was malformed.
	// Local to that resource.
	ErrDocumentUnparsable = errors.New("dataset definition unparsable")

	// ErrLocatorIncomplete means resolution yielded no usable object
	// name or an unknown kind. The tool stays visible in diagnostics
	// but contributes no grants.
	ErrLocatorIncomplete = errors.New("resource locator incomplete")

	// ErrStagePathMalformed means a semantic-model file path did not
	// match the @db.schema.stage/path grammar. The file is still
	// analyzed but no stage-read grant is emitted.
	ErrStagePathMalformed = errors.New("stage path malformed")

	// ErrDefinitionNotFound is returned by DefinitionSource when a
	// declared resource is unreachable. A legitimate outcome: the
	// locator degrades to zero discovered tables and services.
	ErrDefinitionNotFound = errors.New("dataset definition not found")
)
