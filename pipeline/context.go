package pipeline

import (
	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/agentspec"
	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/grants"
	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/logging"
	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/resolve"
	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/semantic"
)

// Request identifies the agent and the run-level names for one
// grant-derivation run.
type Request struct {
	Database string
	Schema   string
	Name     string

	// Warehouse is the default warehouse for the rendered script.
	Warehouse string

	// RoleName overrides the derived <AGENT>_USER_ROLE name when set.
	RoleName string
}

// ResolvedTool pairs a tool descriptor with its resolved locator,
// preserving tool order.
type ResolvedTool struct {
	Tool    agentspec.ToolDescriptor
	Locator resolve.Locator
}

// RunContext carries all state through one grant-derivation run. Each
// stage fills in its own output and never mutates an earlier stage's.
type RunContext struct {
	Req   Request
	Specs SpecSource
	Defs  DefinitionSource
	Log   logging.Logger
	Diags *Diagnostics

	RawSpec  []byte
	Spec     *agentspec.AgentSpec
	Resolved []ResolvedTool

	// Discovered content across all processed dataset definitions,
	// in discovery order.
	Tables   []semantic.TableRef
	Services []string

	Grants grants.GrantSet
	Script string
}

// newRunContext creates a RunContext for a run. A nil logger falls back
// to the no-op logger.
func newRunContext(req Request, specs SpecSource, defs DefinitionSource, log logging.Logger) *RunContext {
	if log == nil {
		log = logging.Nop{}
	}
	return &RunContext{
		Req:   req,
		Specs: specs,
		Defs:  defs,
		Log:   log,
		Diags: newDiagnostics(),
	}
}
