// Package resolve turns tool descriptors into canonical resource
// locators using a per-kind fallback chain.
package resolve

// Kind tags the variant of a Locator.
type Kind string

const (
	KindUnresolved        Kind = "unresolved"
	KindSemanticView      Kind = "semantic_view"
	KindSemanticModelFile Kind = "semantic_model_file"
	KindSearchService     Kind = "search_service"
	KindProcedure         Kind = "procedure"
)

// Locator is the canonical (database, schema, object) resolution of a
// tool's target resource. Which fields are meaningful depends on Kind:
//
//   - KindSemanticView, KindSearchService: Database, Schema, Object, Path.
//   - KindSemanticModelFile: Path is the raw @stage reference; Stage
//     carries the parsed stage location when the path is well formed.
//   - KindProcedure: Database, Schema, Signature.
//   - KindUnresolved: no fields are meaningful.
//
// Once resolved, Database and Schema are non-empty for every variant
// except KindUnresolved and model-file locators whose stage path could
// not be parsed.
type Locator struct {
	Kind     Kind
	Database string
	Schema   string

	// Object is the third path segment; empty when the path had fewer
	// than three segments. An empty Object means the locator is
	// incomplete and no object-level permission can be derived.
	Object string

	// Path is the raw fully qualified path (or @stage reference) the
	// locator was resolved from.
	Path string

	// Signature is the procedure signature, including parameter types
	// when the resource mapping supplied a type-annotated name.
	Signature string

	// Stage is the parsed stage location for model-file locators.
	// Malformed is true when the path did not match the stage grammar;
	// the file is still analyzed but no stage grant is emitted.
	Stage     StagePath
	Malformed bool
}

// Complete reports whether the locator carries enough information to
// derive an object-level permission.
func (l Locator) Complete() bool {
	switch l.Kind {
	case KindSemanticView, KindSearchService:
		return l.Database != "" && l.Schema != "" && l.Object != ""
	case KindProcedure:
		return l.Signature != ""
	case KindSemanticModelFile:
		return !l.Malformed
	default:
		return false
	}
}
