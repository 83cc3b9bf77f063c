// Package schemas embeds the JSON Schemas used for input validation.
package schemas

import _ "embed"

// AgentSpecV1Schema is the schema for the agent_spec document returned
// by DESCRIBE AGENT.
//
//go:embed agent_spec_v1.json
var AgentSpecV1Schema []byte
