package semantic

// Ordered alias lists for the field-naming conventions seen across
// document versions. Consulted first-match-wins by stringField; the
// document is never branched on a version flag.
var (
	databaseAliases = []string{"database", "db"}
	schemaAliases   = []string{"schema", "schema_name"}
	tableAliases    = []string{"table", "table_name", "name"}
	serviceAliases  = []string{"service", "service_name", "name"}
)

// stringField returns the first non-empty string value found under the
// alias keys, in order. Alias keys are matched exactly; only the
// trigger keys of the recursive scans are case-insensitive.
func (n Node) stringField(aliases []string) string {
	if n.Kind != ObjectNode {
		return ""
	}
	for _, key := range aliases {
		if child, ok := n.Object[key]; ok && child.Kind == ScalarNode {
			if s, ok := child.Scalar.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}
