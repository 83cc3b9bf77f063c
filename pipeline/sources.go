package pipeline

import (
	"context"

	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/resolve"
)

// SpecSource supplies raw agent specification documents. Any error is
// fatal for the run and surfaces as ErrDocumentUnavailable.
type SpecSource interface {
	FetchAgentSpec(ctx context.Context, database, schema, name string) ([]byte, error)
}

// DefinitionSource supplies raw dataset-definition documents for
// semantic-view and semantic-model-file locators. Implementations
// return ErrDefinitionNotFound (possibly wrapped) when the resource is
// unreachable; that is not a failure of the run.
type DefinitionSource interface {
	FetchDefinition(ctx context.Context, loc resolve.Locator) ([]byte, error)
}
