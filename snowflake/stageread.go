package snowflake

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/pipeline"
	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/resolve"
)

// readStageFile reads a file from a stage by copying its lines into a
// transient line table and reassembling them with LISTAGG. GET-style
// reads are unavailable inside a server-side session, so this mirrors
// the COPY INTO mechanics the platform permits there.
func (c *Client) readStageFile(ctx context.Context, sp resolve.StagePath) ([]byte, error) {
	fileName := sp.File
	if i := strings.LastIndex(fileName, "/"); i >= 0 {
		fileName = fileName[i+1:]
	}
	stageRef := fmt.Sprintf("@%s.%s.%s/%s", sp.Database, sp.Schema, sp.Stage, fileName)

	// Existence check first: a missing file is a legitimate outcome.
	rows, err := c.db.QueryContext(ctx, "LIST "+stageRef)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", stageRef, err)
	}
	found := rows.Next()
	listErr := rows.Err()
	rows.Close()
	if listErr != nil {
		return nil, fmt.Errorf("listing %s: %w", stageRef, listErr)
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", pipeline.ErrDefinitionNotFound, stageRef)
	}

	// Regular table, not temporary: temporary tables are unavailable in
	// the restricted session this runs under.
	tableName := "YAML_TEMP_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	defer func() {
		c.db.ExecContext(context.WithoutCancel(ctx), "DROP TABLE IF EXISTS "+tableName) //nolint:errcheck
	}()

	content, err := c.copyAndAssemble(ctx, tableName, stageRef, true)
	if err != nil {
		c.log.Warn("ordered stage read failed, retrying without ordering", map[string]any{
			"stage": stageRef, "error": err.Error(),
		})
		content, err = c.copyAndAssemble(ctx, tableName, stageRef, false)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", stageRef, err)
	}
	if content == "" {
		return nil, fmt.Errorf("%w: %s has no content", pipeline.ErrDefinitionNotFound, stageRef)
	}
	return []byte(content), nil
}

// copyAndAssemble copies the staged file into a fresh line table and
// reassembles the content. With ordered=true an autoincrement row
// number preserves line order; the unordered fallback exists for
// accounts where autoincrement columns are restricted.
func (c *Client) copyAndAssemble(ctx context.Context, tableName, stageRef string, ordered bool) (string, error) {
	var createStmt, selectStmt string
	if ordered {
		createStmt = fmt.Sprintf(
			"CREATE OR REPLACE TABLE %s (row_num INTEGER AUTOINCREMENT, line_content STRING)", tableName)
		selectStmt = fmt.Sprintf(
			"SELECT LISTAGG(line_content, '\\n') WITHIN GROUP (ORDER BY row_num) AS file_content FROM %s WHERE line_content IS NOT NULL", tableName)
	} else {
		createStmt = fmt.Sprintf(
			"CREATE OR REPLACE TABLE %s (line_content STRING)", tableName)
		selectStmt = fmt.Sprintf(
			"SELECT LISTAGG(line_content, '\\n') AS file_content FROM %s WHERE line_content IS NOT NULL", tableName)
	}

	if _, err := c.db.ExecContext(ctx, createStmt); err != nil {
		return "", fmt.Errorf("creating line table: %w", err)
	}

	copyStmt := fmt.Sprintf(
		"COPY INTO %s (line_content) FROM %s FILE_FORMAT = (TYPE = 'CSV' FIELD_DELIMITER = NONE FIELD_OPTIONALLY_ENCLOSED_BY = NONE) ON_ERROR = 'CONTINUE'",
		tableName, stageRef)
	if !ordered {
		copyStmt = fmt.Sprintf(
			"COPY INTO %s FROM %s FILE_FORMAT = (TYPE = 'CSV' FIELD_DELIMITER = NONE FIELD_OPTIONALLY_ENCLOSED_BY = NONE) ON_ERROR = 'CONTINUE'",
			tableName, stageRef)
	}
	if _, err := c.db.ExecContext(ctx, copyStmt); err != nil {
		return "", fmt.Errorf("copying file content: %w", err)
	}

	content, _, err := c.queryScalar(ctx, selectStmt)
	if err != nil {
		return "", fmt.Errorf("assembling file content: %w", err)
	}
	return content, nil
}
