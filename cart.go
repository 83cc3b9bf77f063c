// Package cart provides a high-level API surface for embedding the
// Cortex Agents grant-script generator as a library.
//
// This is the primary entry point for external consumers who want to
// derive least-privilege grant scripts without importing CLI
// dependencies.
package cart

import (
	"context"

	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/agentspec"
	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/logging"
	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/pipeline"
	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/validate"
)

// GenerateRequest identifies the agent to derive grants for.
type GenerateRequest struct {
	Database  string
	Schema    string
	Name      string
	Warehouse string
	// RoleName overrides the derived <NAME>_USER_ROLE when set.
	RoleName string
}

// GenerateResult carries the rendered script and the run report.
type GenerateResult struct {
	Script string
	Tools  []pipeline.ToolDetail
	Diags  *pipeline.Diagnostics
}

// Generate runs the full derivation pipeline against the given document
// sources and returns the rendered grant script. log may be nil.
func Generate(ctx context.Context, specs pipeline.SpecSource, defs pipeline.DefinitionSource, log logging.Logger, req GenerateRequest) (*GenerateResult, error) {
	g := pipeline.NewGenerator(specs, defs, log)
	res, err := g.GenerateGrantScript(ctx, pipeline.Request{
		Database:  req.Database,
		Schema:    req.Schema,
		Name:      req.Name,
		Warehouse: req.Warehouse,
		RoleName:  req.RoleName,
	})
	if err != nil {
		return nil, err
	}
	return &GenerateResult{Script: res.Script, Tools: res.Tools, Diags: res.Diags}, nil
}

// ParseAgentSpec parses a raw agent specification document.
func ParseAgentSpec(database, schema, name string, doc []byte) (*agentspec.AgentSpec, error) {
	return agentspec.Parse(database, schema, name, doc)
}

// ValidateAgentSpec validates raw JSON bytes against the agent
// specification schema and returns human-readable findings.
func ValidateAgentSpec(doc []byte) ([]string, error) {
	return validate.ValidateAgentDocument(doc)
}
