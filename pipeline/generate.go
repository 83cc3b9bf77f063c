package pipeline

import (
	"context"
	"time"

	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/agentspec"
	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/grants"
	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/logging"
)

// ToolDetail is the per-tool report row exposed to callers.
type ToolDetail struct {
	Name      string
	Type      string
	Kind      agentspec.ToolKind
	Database  string
	Schema    string
	Object    string
	Path      string
	Warehouse string
}

// Result is the output of one grant-derivation run.
type Result struct {
	Script string
	Grants grants.GrantSet
	Tools  []ToolDetail
	Diags  *Diagnostics
}

// Generator runs the grant-derivation pipeline against a pair of
// document sources. The zero value is not usable; construct with
// NewGenerator.
type Generator struct {
	specs SpecSource
	defs  DefinitionSource
	log   logging.Logger

	// now overrides the renderer clock in tests.
	now func() time.Time
}

// NewGenerator creates a Generator. log may be nil.
func NewGenerator(specs SpecSource, defs DefinitionSource, log logging.Logger) *Generator {
	return &Generator{specs: specs, defs: defs, log: log}
}

// GenerateGrantScript runs the full pipeline for one agent and returns
// the rendered script plus everything discovered along the way. The
// output is deterministic for a given pair of input documents and
// warehouse name, except for the embedded generation timestamp.
func (g *Generator) GenerateGrantScript(ctx context.Context, req Request) (*Result, error) {
	rc := newRunContext(req, g.specs, g.defs, g.log)

	p := New(
		fetchStage{},
		schemaStage{},
		parseStage{},
		resolveStage{},
		analyzeStage{},
		aggregateStage{},
		renderStage{now: g.now},
	)
	if err := p.Run(ctx, rc); err != nil {
		return nil, err
	}

	res := &Result{
		Script: rc.Script,
		Grants: rc.Grants,
		Diags:  rc.Diags,
	}
	for _, rt := range rc.Resolved {
		res.Tools = append(res.Tools, ToolDetail{
			Name:      rt.Tool.Name,
			Type:      rt.Tool.RawType,
			Kind:      rt.Tool.Kind,
			Database:  rt.Locator.Database,
			Schema:    rt.Locator.Schema,
			Object:    rt.Locator.Object,
			Path:      rt.Locator.Path,
			Warehouse: rt.Tool.Resource.Warehouse(),
		})
	}
	return res, nil
}
