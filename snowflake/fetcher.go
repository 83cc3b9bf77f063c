package snowflake

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/pipeline"
	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/resolve"
)

// FetchAgentSpec runs DESCRIBE AGENT and returns the agent_spec column
// of the result row.
func (c *Client) FetchAgentSpec(ctx context.Context, database, schema, name string) ([]byte, error) {
	fqn := database + "." + schema + "." + name
	rows, err := c.db.QueryContext(ctx, "DESCRIBE AGENT "+fqn)
	if err != nil {
		return nil, fmt.Errorf("describing agent %s: %w", fqn, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("describing agent %s: %w", fqn, err)
	}
	specIdx := -1
	for i, col := range cols {
		if strings.EqualFold(col, "agent_spec") {
			specIdx = i
			break
		}
	}
	if specIdx < 0 {
		return nil, fmt.Errorf("describing agent %s: no agent_spec column in result", fqn)
	}

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("describing agent %s: %w", fqn, err)
		}
		return nil, fmt.Errorf("describing agent %s: empty result", fqn)
	}

	values := make([]any, len(cols))
	for i := range values {
		values[i] = new(sql.NullString)
	}
	if err := rows.Scan(values...); err != nil {
		return nil, fmt.Errorf("describing agent %s: %w", fqn, err)
	}

	spec := values[specIdx].(*sql.NullString)
	if !spec.Valid || spec.String == "" {
		return nil, fmt.Errorf("describing agent %s: agent_spec is empty", fqn)
	}
	return []byte(spec.String), nil
}

// FetchDefinition returns the raw dataset-definition document behind a
// locator: the YAML of a semantic view, or the content of a
// semantic-model file read from its stage.
func (c *Client) FetchDefinition(ctx context.Context, loc resolve.Locator) ([]byte, error) {
	switch loc.Kind {
	case resolve.KindSemanticView:
		return c.readSemanticViewYAML(ctx, loc)
	case resolve.KindSemanticModelFile:
		if loc.Malformed {
			// No stage coordinates to read from.
			return nil, fmt.Errorf("%w: %s", pipeline.ErrDefinitionNotFound, loc.Path)
		}
		return c.readStageFile(ctx, loc.Stage)
	default:
		return nil, fmt.Errorf("%w: locator kind %s has no definition", pipeline.ErrDefinitionNotFound, loc.Kind)
	}
}

func (c *Client) readSemanticViewYAML(ctx context.Context, loc resolve.Locator) ([]byte, error) {
	query := fmt.Sprintf(
		"SELECT SYSTEM$READ_YAML_FROM_SEMANTIC_VIEW('%s') AS yaml_content", loc.Path)
	content, ok, err := c.queryScalar(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("reading semantic view %s: %w", loc.Path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: semantic view %s", pipeline.ErrDefinitionNotFound, loc.Path)
	}
	return []byte(content), nil
}
