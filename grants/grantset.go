// Package grants aggregates discovered resources into deduplicated
// grant sets and renders the access-control script.
package grants

// WarehouseGrant pairs a tool name with the warehouse it declared.
// Unlike every other collection, these are not deduplicated across
// tools: each grant line is annotated with the tool that needs it, so
// two tools sharing a warehouse produce two annotated lines.
type WarehouseGrant struct {
	Tool      string
	Warehouse string
}

// GrantSet holds the deduplicated, sorted grant targets for one agent.
// All collections are sorted lexicographically by their rendered
// grant-target string; discovery order does not affect output.
type GrantSet struct {
	Databases      []string
	Schemas        []string // qualified db.schema
	SemanticViews  []string
	Tables         []string // qualified db.schema.table
	SearchServices []string
	Procedures     []string
	Stages         []string // qualified db.schema.stage
	Warehouses     []WarehouseGrant
}
