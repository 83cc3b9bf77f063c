package tui

import (
	"fmt"
	"strings"

	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/pipeline"
)

// RenderSummary returns the run summary printed after a successful
// generation: agent coordinates, grant counts, per-tool rows, and any
// coverage warnings.
func RenderSummary(styles *StyleSet, req pipeline.Request, res *pipeline.Result) string {
	var b strings.Builder

	agent := req.Database + "." + req.Schema + "." + req.Name
	b.WriteString(styles.Header.Render("Agent: "+agent) + "\n\n")

	metric := func(label string, n int) {
		fmt.Fprintf(&b, "  %s %s\n",
			styles.Label.Render(fmt.Sprintf("%-18s", label)),
			styles.Value.Render(fmt.Sprintf("%d", n)))
	}
	metric("Tools", len(res.Tools))
	metric("Databases", len(res.Grants.Databases))
	metric("Schemas", len(res.Grants.Schemas))
	metric("Semantic views", len(res.Grants.SemanticViews))
	metric("Tables", len(res.Grants.Tables))
	metric("Search services", len(res.Grants.SearchServices))
	metric("Procedures", len(res.Grants.Procedures))
	metric("Stages", len(res.Grants.Stages))
	b.WriteString("\n")

	for _, t := range res.Tools {
		target := t.Path
		if target == "" {
			target = styles.Dim.Render("(unresolved)")
		}
		fmt.Fprintf(&b, "  %s %s %s\n",
			styles.Value.Render(t.Name),
			styles.Label.Render("["+t.Type+"]"),
			target)
	}

	d := res.Diags
	var warnings []string
	if d.ToolsUnknown > 0 {
		warnings = append(warnings, fmt.Sprintf("%d tool(s) of unrecognized kind contribute no grants", d.ToolsUnknown))
	}
	if d.ToolsIncomplete > 0 {
		warnings = append(warnings, fmt.Sprintf("%d tool(s) resolved to incomplete locators", d.ToolsIncomplete))
	}
	if d.DefinitionsMissing > 0 {
		warnings = append(warnings, fmt.Sprintf("%d dataset definition(s) unreachable", d.DefinitionsMissing))
	}
	if d.DefinitionsUnparsable > 0 {
		warnings = append(warnings, fmt.Sprintf("%d dataset definition(s) unparsable", d.DefinitionsUnparsable))
	}
	if d.StagePathsMalformed > 0 {
		warnings = append(warnings, fmt.Sprintf("%d malformed stage path(s); stage grants omitted", d.StagePathsMalformed))
	}
	if len(warnings) > 0 {
		b.WriteString("\n")
		for _, w := range warnings {
			b.WriteString("  " + styles.Warning.Render("! "+w) + "\n")
		}
	}

	return b.String()
}
