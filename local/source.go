// Package local supplies document sources backed by files on disk, for
// offline runs against exported agent specifications.
package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/pipeline"
	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/resolve"
)

// Source reads the agent specification from SpecPath and dataset
// definitions from ModelDir. Definitions are looked up by object name
// (semantic views) or file name (semantic-model files) with .yaml,
// .yml, and .json extensions tried in that order.
type Source struct {
	SpecPath string
	ModelDir string
}

// FetchAgentSpec reads the exported agent_spec JSON document.
func (s Source) FetchAgentSpec(_ context.Context, _, _, _ string) ([]byte, error) {
	data, err := os.ReadFile(s.SpecPath)
	if err != nil {
		return nil, fmt.Errorf("reading agent spec %s: %w", s.SpecPath, err)
	}
	return data, nil
}

// FetchDefinition resolves a locator to a file under ModelDir.
func (s Source) FetchDefinition(_ context.Context, loc resolve.Locator) ([]byte, error) {
	if s.ModelDir == "" {
		return nil, fmt.Errorf("%w: no model directory configured", pipeline.ErrDefinitionNotFound)
	}

	var candidates []string
	switch loc.Kind {
	case resolve.KindSemanticView:
		base := loc.Object
		if base == "" {
			return nil, fmt.Errorf("%w: locator has no object name", pipeline.ErrDefinitionNotFound)
		}
		candidates = []string{base + ".yaml", base + ".yml", base + ".json"}
	case resolve.KindSemanticModelFile:
		base := filepath.Base(loc.Path)
		candidates = []string{base}
	default:
		return nil, fmt.Errorf("%w: locator kind %s has no definition", pipeline.ErrDefinitionNotFound, loc.Kind)
	}

	for _, name := range candidates {
		data, err := os.ReadFile(filepath.Join(s.ModelDir, name))
		if err == nil {
			return data, nil
		}
	}
	return nil, fmt.Errorf("%w: no definition file for %s in %s", pipeline.ErrDefinitionNotFound, loc.Path, s.ModelDir)
}
