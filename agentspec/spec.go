// Package agentspec parses Cortex agent specification documents into
// typed tool descriptors.
package agentspec

// ToolKind is the recognized category of an agent tool.
type ToolKind string

const (
	KindDatasetQuery ToolKind = "dataset_query"
	KindSearchIndex  ToolKind = "search_index"
	KindProcedure    ToolKind = "procedure"
	KindUnknown      ToolKind = "unknown"
)

// Wire values of the tool_spec "type" field.
const (
	typeAnalyst   = "cortex_analyst_text_to_sql"
	typeSearch    = "cortex_search"
	typeProcedure = "generic"
)

// KindOf maps a raw tool_spec type string to a ToolKind. Unrecognized
// values map to KindUnknown; the tool is retained but contributes no
// permissions downstream.
func KindOf(rawType string) ToolKind {
	switch rawType {
	case typeAnalyst:
		return KindDatasetQuery
	case typeSearch:
		return KindSearchIndex
	case typeProcedure:
		return KindProcedure
	default:
		return KindUnknown
	}
}

// AgentSpec is the canonical in-memory representation of an agent
// specification: the agent's own location plus its tools, in document
// order. Immutable once parsed.
type AgentSpec struct {
	Database string
	Schema   string
	Name     string
	Tools    []ToolDescriptor
}

// Qualified returns the fully qualified agent name.
func (s *AgentSpec) Qualified() string {
	return s.Database + "." + s.Schema + "." + s.Name
}

// ToolDescriptor is one tool entry from the specification's tools array,
// joined with its tool_resources mapping entry.
type ToolDescriptor struct {
	Name        string
	Kind        ToolKind
	RawType     string
	Description string
	Resource    Resource
}

// Resource is the decoded tool_resources entry for one tool. Different
// tool kinds populate different fields; resolution happens in the
// resolve package, not here.
type Resource struct {
	Identifier        string `json:"identifier"`
	SemanticView      string `json:"semantic_view"`
	SearchService     string `json:"search_service"`
	Name              string `json:"name"`
	SemanticModelFile string `json:"semantic_model_file"`

	ExecutionEnvironment *ExecutionEnvironment `json:"execution_environment"`
}

// Warehouse returns the warehouse declared by the tool's execution
// environment, or "" when none is declared.
func (r Resource) Warehouse() string {
	if r.ExecutionEnvironment == nil {
		return ""
	}
	return r.ExecutionEnvironment.Warehouse
}

// ExecutionEnvironment carries the optional compute settings of a tool.
type ExecutionEnvironment struct {
	Type      string `json:"type"`
	Warehouse string `json:"warehouse"`
}
