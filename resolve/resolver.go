package resolve

import (
	"regexp"
	"strings"

	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/agentspec"
	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/util"
)

// Some tool kinds historically embedded their target location only in
// description prose. These patterns recover it.
var (
	dbPattern     = regexp.MustCompile(`Database: (\w+)`)
	schemaPattern = regexp.MustCompile(`Schema: (\w+)`)
)

// descLocation extracts a database/schema pair from free-text tool
// description prose. Either value may be empty.
func descLocation(description string) (db, schema string) {
	if m := dbPattern.FindStringSubmatch(description); m != nil {
		db = m[1]
	}
	if m := schemaPattern.FindStringSubmatch(description); m != nil {
		schema = m[1]
	}
	return db, schema
}

// resourcePath returns the first non-empty fully qualified path from
// the tool's resource mapping, checked in fixed field priority order.
func resourcePath(res agentspec.Resource) string {
	for _, v := range []string{
		res.Identifier,
		res.SemanticView,
		res.SearchService,
		res.Name,
		res.SemanticModelFile,
	} {
		if v != "" {
			return v
		}
	}
	return ""
}

// Resolve produces a Locator for one tool descriptor.
//
// The fallback chain, in priority order: (1) read Database:/Schema:
// from description prose, (2) read a fully qualified path from the
// resource mapping, (3) the final database/schema is the prose value
// when present, else the first/second path segment. Per-kind dispatch
// then selects the variant. When the path itself carries at least two
// segments, those segments locate the object; the prose-derived pair is
// the fallback for shorter paths. Note the prose pair can silently
// disagree with the path when description text is stale.
func Resolve(tool agentspec.ToolDescriptor) Locator {
	descDB, descSchema := descLocation(tool.Description)
	path := resourcePath(tool.Resource)

	// SPLIT_PART-style: missing segments are empty, never an error.
	finalDB := descDB
	if finalDB == "" {
		finalDB = util.Segment(path, 0)
	}
	finalSchema := descSchema
	if finalSchema == "" {
		finalSchema = util.Segment(path, 1)
	}
	object := util.Segment(path, 2)

	switch tool.Kind {
	case agentspec.KindDatasetQuery:
		if file := tool.Resource.SemanticModelFile; file != "" {
			loc := Locator{Kind: KindSemanticModelFile, Path: file}
			sp, ok := ParseStagePath(file)
			if !ok {
				loc.Malformed = true
				return loc
			}
			loc.Stage = sp
			loc.Database = sp.Database
			loc.Schema = sp.Schema
			return loc
		}
		if path == "" {
			return Locator{Kind: KindUnresolved}
		}
		db, schema := locate(path, finalDB, finalSchema)
		return Locator{
			Kind:     KindSemanticView,
			Database: db,
			Schema:   schema,
			Object:   object,
			Path:     path,
		}

	case agentspec.KindSearchIndex:
		// An explicit search_service field wins over the generic path.
		servicePath := tool.Resource.SearchService
		if servicePath == "" {
			servicePath = path
		}
		if servicePath == "" {
			return Locator{Kind: KindUnresolved}
		}
		db, schema := locate(servicePath, finalDB, finalSchema)
		return Locator{
			Kind:     KindSearchService,
			Database: db,
			Schema:   schema,
			Object:   util.Segment(servicePath, 2),
			Path:     servicePath,
		}

	case agentspec.KindProcedure:
		if path == "" {
			return Locator{Kind: KindUnresolved}
		}
		db, schema := locate(path, finalDB, finalSchema)
		signature := path
		if annotated := tool.Resource.Name; annotated != "" {
			signature = db + "." + schema + "." + annotated
		}
		return Locator{
			Kind:      KindProcedure,
			Database:  db,
			Schema:    schema,
			Object:    object,
			Path:      path,
			Signature: signature,
		}

	default:
		return Locator{Kind: KindUnresolved}
	}
}

// locate picks the database/schema for a resolved path: the first two
// path segments when the path is qualified, else the fallback pair from
// the description/segment chain.
func locate(path, fallbackDB, fallbackSchema string) (db, schema string) {
	parts := strings.Split(path, ".")
	if len(parts) >= 2 {
		return parts[0], parts[1]
	}
	return fallbackDB, fallbackSchema
}
