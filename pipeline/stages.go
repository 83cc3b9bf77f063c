package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/agentspec"
	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/grants"
	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/resolve"
	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/semantic"
	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/util"
	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/validate"
)

// fetchStage acquires the raw agent specification document. Any failure
// here is fatal for the run: zero grants, no partial script.
type fetchStage struct{}

func (fetchStage) Name() string { return "fetch-agent-spec" }

func (fetchStage) Execute(ctx context.Context, rc *RunContext) error {
	raw, err := rc.Specs.FetchAgentSpec(ctx, rc.Req.Database, rc.Req.Schema, rc.Req.Name)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDocumentUnavailable, err)
	}
	rc.RawSpec = raw
	return nil
}

// schemaStage validates the raw document against the embedded JSON
// schema. Findings are diagnostics only: the parser is tolerant by
// contract, so a non-conforming document still flows through.
type schemaStage struct{}

func (schemaStage) Name() string { return "validate-agent-spec" }

func (schemaStage) Execute(_ context.Context, rc *RunContext) error {
	findings, err := validate.ValidateAgentDocument(rc.RawSpec)
	if err != nil {
		rc.Log.Warn("agent spec schema validation unavailable", map[string]any{"error": err.Error()})
		return nil
	}
	for _, f := range findings {
		rc.Log.Warn("agent spec schema finding", map[string]any{"finding": f})
	}
	rc.Diags.SchemaFindings = findings
	return nil
}

// parseStage turns the raw document into typed tool descriptors. A
// wholly unparsable specification leaves nothing to derive grants from,
// so it is treated like an unavailable document.
type parseStage struct{}

func (parseStage) Name() string { return "parse-tool-specs" }

func (parseStage) Execute(_ context.Context, rc *RunContext) error {
	spec, err := agentspec.Parse(rc.Req.Database, rc.Req.Schema, rc.Req.Name, rc.RawSpec)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDocumentUnavailable, err)
	}
	rc.Spec = spec
	rc.Diags.ToolsTotal = len(spec.Tools)
	return nil
}

// resolveStage resolves a locator for every tool. Incomplete locators
// are absorbed: the tool stays visible in diagnostics but contributes
// no grants.
type resolveStage struct{}

func (resolveStage) Name() string { return "resolve-resource-paths" }

func (resolveStage) Execute(_ context.Context, rc *RunContext) error {
	for _, tool := range rc.Spec.Tools {
		loc := resolve.Resolve(tool)
		rc.Resolved = append(rc.Resolved, ResolvedTool{Tool: tool, Locator: loc})

		if tool.Kind == agentspec.KindUnknown {
			rc.Diags.ToolsUnknown++
		}
		switch {
		case loc.Kind == resolve.KindSemanticModelFile && loc.Malformed:
			rc.Diags.StagePathsMalformed++
			rc.Diags.absorb(fmt.Errorf("tool %s: %w: %q", tool.Name, ErrStagePathMalformed, loc.Path))
			rc.Log.Warn("stage path malformed", map[string]any{"tool": tool.Name, "path": loc.Path})
		case !loc.Complete():
			rc.Diags.ToolsIncomplete++
			rc.Diags.absorb(fmt.Errorf("tool %s: %w", tool.Name, ErrLocatorIncomplete))
			rc.Log.Debug("locator incomplete", map[string]any{"tool": tool.Name, "kind": string(tool.Kind)})
		}
	}
	return nil
}

// analyzeStage fetches and scans the dataset definition behind each
// semantic-view and semantic-model-file locator, one resource at a
// time. Fetch and parse problems stay local to the resource they
// concern; only context cancellation propagates.
type analyzeStage struct{}

func (analyzeStage) Name() string { return "analyze-dataset-definitions" }

func (analyzeStage) Execute(ctx context.Context, rc *RunContext) error {
	for _, rt := range rc.Resolved {
		loc := rt.Locator
		if loc.Kind != resolve.KindSemanticView && loc.Kind != resolve.KindSemanticModelFile {
			continue
		}

		raw, err := rc.Defs.FetchDefinition(ctx, loc)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			rc.Diags.DefinitionsMissing++
			if !errors.Is(err, ErrDefinitionNotFound) {
				rc.Diags.absorb(fmt.Errorf("tool %s: fetching definition: %v", rt.Tool.Name, err))
			}
			rc.Log.Warn("dataset definition unavailable", map[string]any{
				"tool": rt.Tool.Name, "path": loc.Path, "error": err.Error(),
			})
			continue
		}

		analysis, err := semantic.AnalyzeDocument(raw)
		if err != nil {
			rc.Diags.DefinitionsUnparsable++
			rc.Diags.absorb(fmt.Errorf("tool %s: %w: %v", rt.Tool.Name, ErrDocumentUnparsable, err))
			rc.Log.Warn("dataset definition unparsable", map[string]any{
				"tool": rt.Tool.Name, "path": loc.Path, "error": err.Error(),
			})
			continue
		}

		rc.Diags.DefinitionsFetched++
		rc.Tables = append(rc.Tables, analysis.Tables...)
		rc.Services = append(rc.Services, analysis.Services...)
		rc.Log.Info("dataset definition analyzed", map[string]any{
			"tool":     rt.Tool.Name,
			"format":   analysis.Format,
			"tables":   len(analysis.Tables),
			"services": len(analysis.Services),
		})
	}
	return nil
}

// aggregateStage unions every discovered resource into the final sets.
type aggregateStage struct{}

func (aggregateStage) Name() string { return "aggregate-permissions" }

func (aggregateStage) Execute(_ context.Context, rc *RunContext) error {
	in := grants.Input{
		AgentDatabase: rc.Spec.Database,
		AgentSchema:   rc.Spec.Schema,
		Tables:        rc.Tables,
		Services:      rc.Services,
	}
	for _, rt := range rc.Resolved {
		in.Locators = append(in.Locators, rt.Locator)
		if wh := rt.Tool.Resource.Warehouse(); wh != "" {
			in.Warehouses = append(in.Warehouses, grants.WarehouseGrant{
				Tool:      rt.Tool.Name,
				Warehouse: wh,
			})
		}
	}
	rc.Grants = grants.Aggregate(in)
	return nil
}

// renderStage produces the script text.
type renderStage struct {
	now func() time.Time
}

func (renderStage) Name() string { return "render-script" }

func (s renderStage) Execute(_ context.Context, rc *RunContext) error {
	role := rc.Req.RoleName
	if role == "" {
		role = util.RoleName(rc.Req.Name)
	}
	r := grants.Renderer{Now: s.now}
	rc.Script = r.Render(rc.Grants, grants.ScriptParams{
		AgentDatabase: rc.Spec.Database,
		AgentSchema:   rc.Spec.Schema,
		AgentName:     rc.Spec.Name,
		RoleName:      role,
		Warehouse:     rc.Req.Warehouse,
	})
	return nil
}
