package semantic

import (
	"sort"
	"strings"
)

// TableRef identifies one base table backing a dataset.
type TableRef struct {
	Database string
	Schema   string
	Table    string
}

// Qualified returns the db.schema.table form used for table grants.
func (t TableRef) Qualified() string {
	return t.Database + "." + t.Schema + "." + t.Table
}

// Format labels for user-facing messages. They carry no semantics:
// the recursive scans below run regardless of the detected shape.
const (
	FormatSemanticModel = "semantic model"
	FormatSemanticView  = "semantic view"
	FormatUnknown       = "unknown"
)

// Analysis is everything discovered in one dataset-definition document.
// Tables and Services preserve first-discovery order; the aggregator
// applies its own final sort.
type Analysis struct {
	Tables   []TableRef
	Services []string
	Format   string
}

// AnalyzeDocument parses raw document bytes and analyzes the result.
func AnalyzeDocument(data []byte) (Analysis, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return Analysis{}, err
	}
	return Analyze(doc), nil
}

// Analyze extracts base-table and search-service references from a
// parsed dataset definition.
//
// Two top-level shapes are auto-detected, model-wrapper first: (a) a
// semantic_model object holding a tables list with aliased fields, and
// (b) a flat tables list where each entry nests its reference under
// base_table. Detection only sets the Format label. Independent of
// shape, two whole-document scans always run, because search-service
// and base-table references may appear nested arbitrarily deep rather
// than only under the top-level tables key.
func Analyze(doc Node) Analysis {
	a := Analysis{Format: FormatUnknown}

	if model, ok := doc.field("semantic_model"); ok {
		a.Format = FormatSemanticModel
		if tables, ok := model.field("tables"); ok && tables.Kind == ArrayNode {
			for _, entry := range tables.Array {
				if ref, ok := tableFromNode(entry); ok {
					a.Tables = append(a.Tables, ref)
				}
			}
		}
	} else if tables, ok := doc.field("tables"); ok && tables.Kind == ArrayNode {
		a.Format = FormatSemanticView
		for _, entry := range tables.Array {
			base, ok := entry.field("base_table")
			if !ok {
				continue
			}
			if ref, ok := tableFromNode(base); ok {
				a.Tables = append(a.Tables, ref)
			}
		}
	}

	walkServices(doc, &a.Services)
	walkTables(doc, &a.Tables)

	a.Tables = dedupeTables(a.Tables)
	a.Services = dedupeStrings(a.Services)
	return a
}

// tableFromNode reads a table reference from an object node, consulting
// the alias lists. All three parts must resolve.
func tableFromNode(n Node) (TableRef, bool) {
	ref := TableRef{
		Database: n.stringField(databaseAliases),
		Schema:   n.stringField(schemaAliases),
		Table:    n.stringField(tableAliases),
	}
	if ref.Database == "" || ref.Schema == "" || ref.Table == "" {
		return TableRef{}, false
	}
	return ref, true
}

// walkServices is a depth-first scan for cortex_search_service keys
// whose value is an object supplying a resolvable service reference.
func walkServices(n Node, out *[]string) {
	switch n.Kind {
	case ObjectNode:
		for _, key := range sortedKeys(n.Object) {
			value := n.Object[key]
			if strings.EqualFold(key, "cortex_search_service") && value.Kind == ObjectNode {
				db := value.stringField(databaseAliases)
				schema := value.stringField(schemaAliases)
				service := value.stringField(serviceAliases)
				if db != "" && schema != "" && service != "" {
					*out = append(*out, db+"."+schema+"."+service)
				}
				continue
			}
			walkServices(value, out)
		}
	case ArrayNode:
		for _, item := range n.Array {
			walkServices(item, out)
		}
	}
}

// walkTables is a depth-first scan for table, base_table, and
// source_table keys whose value is an object supplying a resolvable
// table reference.
func walkTables(n Node, out *[]TableRef) {
	switch n.Kind {
	case ObjectNode:
		for _, key := range sortedKeys(n.Object) {
			value := n.Object[key]
			lower := strings.ToLower(key)
			if (lower == "table" || lower == "base_table" || lower == "source_table") && value.Kind == ObjectNode {
				if ref, ok := tableFromNode(value); ok {
					*out = append(*out, ref)
				}
				continue
			}
			walkTables(value, out)
		}
	case ArrayNode:
		for _, item := range n.Array {
			walkTables(item, out)
		}
	}
}

// sortedKeys makes the depth-first scans deterministic; Go map
// iteration order would otherwise vary run to run.
func sortedKeys(m map[string]Node) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func dedupeTables(refs []TableRef) []TableRef {
	seen := make(map[TableRef]struct{}, len(refs))
	out := refs[:0]
	for _, r := range refs {
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

func dedupeStrings(vals []string) []string {
	seen := make(map[string]struct{}, len(vals))
	out := vals[:0]
	for _, v := range vals {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
