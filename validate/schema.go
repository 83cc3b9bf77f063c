// Package validate provides JSON Schema validation for agent
// specification documents.
package validate

import (
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/schemas"
)

var (
	compiledSchema *gojsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
)

func getSchema() (*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		loader := gojsonschema.NewBytesLoader(schemas.AgentSpecV1Schema)
		compiledSchema, compileErr = gojsonschema.NewSchema(loader)
	})
	return compiledSchema, compileErr
}

// ValidateAgentDocument validates raw agent_spec JSON against the
// embedded schema. It returns a slice of finding descriptions and an
// error if schema compilation or validation itself fails. Findings are
// advisory: the downstream parser is tolerant by contract.
func ValidateAgentDocument(jsonData []byte) ([]string, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("compiling agent spec schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("validating agent spec: %w", err)
	}

	if result.Valid() {
		return nil, nil
	}

	findings := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		findings = append(findings, e.String())
	}
	return findings, nil
}
