package grants

import (
	"fmt"
	"strings"
	"time"
)

// ScriptParams carries the agent identity and run-level names the
// renderer interpolates into the script.
type ScriptParams struct {
	AgentDatabase string
	AgentSchema   string
	AgentName     string

	// RoleName is the access role the script creates and grants to.
	RoleName string

	// Warehouse is the default warehouse granted for user sessions.
	Warehouse string
}

// Renderer renders a deterministic access-control script from a
// GrantSet. The section order is fixed and must remain stable so
// successive runs can be diffed. Every statement is idempotent, so the
// whole script can be re-run safely.
type Renderer struct {
	// Now supplies the generation timestamp; defaults to time.Now.
	// Tests pin it to get byte-identical output.
	Now func() time.Time
}

const divider = "-- ========================================================================================="

// Render produces the script text.
func (r Renderer) Render(set GrantSet, p ScriptParams) string {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	agent := p.AgentDatabase + "." + p.AgentSchema + "." + p.AgentName

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", divider)
	fmt.Fprintf(&b, "-- AUTO-GENERATED LEAST-PRIVILEGE SCRIPT FOR AGENT: %s\n", agent)
	fmt.Fprintf(&b, "-- Generated on: %s\n", now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "-- Generated by: Cortex Agent Permission Generator\n")
	fmt.Fprintf(&b, "%s\n\n", divider)

	b.WriteString("-- IMPORTANT: Review and adjust the placeholder variables below for your environment.\n")
	fmt.Fprintf(&b, "SET AGENT_ROLE_NAME = '%s';\n", p.RoleName)
	fmt.Fprintf(&b, "SET WAREHOUSE_NAME = '%s';\n\n", p.Warehouse)

	b.WriteString("-- Create a dedicated role for the agent's permissions.\n")
	b.WriteString("USE ROLE SECURITYADMIN; -- Or your own privileged role to assign permissions\n")
	b.WriteString("CREATE ROLE IF NOT EXISTS IDENTIFIER($AGENT_ROLE_NAME);\n")
	b.WriteString("GRANT ROLE IDENTIFIER($AGENT_ROLE_NAME) TO ROLE SYSADMIN; -- Optional: Allows SYSADMIN to manage the role.\n\n")

	b.WriteString("-- Grant core permission to use the agent object itself.\n")
	fmt.Fprintf(&b, "GRANT USAGE ON AGENT %s TO ROLE IDENTIFIER($AGENT_ROLE_NAME);\n\n", agent)

	b.WriteString("-- Grant permissions on the underlying database objects required by the agent's tools.\n")
	b.WriteString("-- NOTE: These permissions are derived from the agent's tool specification and semantic view YAML definitions.\n\n")

	b.WriteString("-- Database and Schema USAGE grants (including agent location, tool-specific locations, and tables from semantic views)\n")
	writeGrants(&b, set.Databases, "GRANT USAGE ON DATABASE %s TO ROLE IDENTIFIER($AGENT_ROLE_NAME);\n")
	writeGrants(&b, set.Schemas, "GRANT USAGE ON SCHEMA %s TO ROLE IDENTIFIER($AGENT_ROLE_NAME);\n")
	b.WriteString("\n")

	b.WriteString("-- Permissions for 'cortex_analyst_text_to_sql' tools\n")
	b.WriteString("-- Semantic view permissions\n")
	writeGrants(&b, set.SemanticViews, "GRANT SELECT ON VIEW %s TO ROLE IDENTIFIER($AGENT_ROLE_NAME);\n")
	b.WriteString("\n")

	b.WriteString("-- Base table permissions (from semantic view YAML)\n")
	writeGrants(&b, set.Tables, "GRANT SELECT ON TABLE %s TO ROLE IDENTIFIER($AGENT_ROLE_NAME);\n")
	b.WriteString("\n")

	b.WriteString("-- Permissions for 'cortex_search' tools\n")
	writeGrants(&b, set.SearchServices, "GRANT USAGE ON CORTEX SEARCH SERVICE %s TO ROLE IDENTIFIER($AGENT_ROLE_NAME);\n")
	b.WriteString("\n")

	b.WriteString("-- Permissions for 'generic' tools (procedures)\n")
	writeGrants(&b, set.Procedures, "GRANT USAGE ON PROCEDURE %s TO ROLE IDENTIFIER($AGENT_ROLE_NAME);\n")
	b.WriteString("\n")

	b.WriteString("-- Permissions for semantic model files (stages)\n")
	writeGrants(&b, set.Stages, "GRANT READ ON STAGE %s TO ROLE IDENTIFIER($AGENT_ROLE_NAME);\n")
	b.WriteString("\n")

	if len(set.Warehouses) > 0 {
		b.WriteString("-- Tool-specific warehouse permissions\n")
		for _, wg := range set.Warehouses {
			fmt.Fprintf(&b, "GRANT USAGE ON WAREHOUSE IDENTIFIER('%s') TO ROLE IDENTIFIER($AGENT_ROLE_NAME); -- Required for tool: %s\n", wg.Warehouse, wg.Tool)
		}
		b.WriteString("\n")
	}

	b.WriteString("-- Grant warehouse usage to the role for the user's session.\n")
	b.WriteString("GRANT USAGE ON WAREHOUSE IDENTIFIER($WAREHOUSE_NAME) TO ROLE IDENTIFIER($AGENT_ROLE_NAME);\n\n")

	fmt.Fprintf(&b, "%s\n", divider)
	b.WriteString("SELECT 'Setup complete for role ' || $AGENT_ROLE_NAME AS \"Status\";\n")
	fmt.Fprintf(&b, "%s\n", divider)

	return b.String()
}

func writeGrants(b *strings.Builder, targets []string, format string) {
	for _, t := range targets {
		fmt.Fprintf(b, format, t)
	}
}
