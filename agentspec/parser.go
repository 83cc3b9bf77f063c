package agentspec

import (
	"encoding/json"
	"fmt"
)

// rawDocument is the wire shape of the agent_spec column returned by
// DESCRIBE AGENT: a tools array plus a tool_resources object keyed by
// tool name.
type rawDocument struct {
	Tools         []rawTool                  `json:"tools"`
	ToolResources map[string]json.RawMessage `json:"tool_resources"`
}

type rawTool struct {
	ToolSpec rawToolSpec `json:"tool_spec"`
}

type rawToolSpec struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Parse decodes a raw agent specification document into an AgentSpec.
// Tool entries with an unrecognized type are retained with KindUnknown.
// Malformed tool_resources entries are ignored for the affected tool;
// the tool itself is kept. When the same tool name appears more than
// once the resource mapping is keyed by name, so the last document
// occurrence wins for attribute lookup.
func Parse(database, schema, name string, doc []byte) (*AgentSpec, error) {
	var raw rawDocument
	if err := json.Unmarshal(doc, &raw); err != nil {
		return nil, fmt.Errorf("parsing agent specification: %w", err)
	}

	spec := &AgentSpec{
		Database: database,
		Schema:   schema,
		Name:     name,
		Tools:    make([]ToolDescriptor, 0, len(raw.Tools)),
	}

	for _, t := range raw.Tools {
		td := ToolDescriptor{
			Name:        t.ToolSpec.Name,
			Kind:        KindOf(t.ToolSpec.Type),
			RawType:     t.ToolSpec.Type,
			Description: t.ToolSpec.Description,
		}
		if entry, ok := raw.ToolResources[td.Name]; ok {
			var res Resource
			if err := json.Unmarshal(entry, &res); err == nil {
				td.Resource = res
			}
		}
		spec.Tools = append(spec.Tools, td)
	}

	return spec, nil
}
