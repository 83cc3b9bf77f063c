package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/config"
	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/internal/tui"
	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/local"
	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/logging"
	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/pipeline"
	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/snowflake"
)

var (
	agentDatabase string
	agentSchema   string
	agentName     string
	warehouse     string
	roleName      string
	dsn           string
	specFile      string
	modelDir      string
	outputPath    string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the least-privilege grant script for an agent",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&agentDatabase, "database", "", "agent database")
	generateCmd.Flags().StringVar(&agentSchema, "schema", "", "agent schema")
	generateCmd.Flags().StringVar(&agentName, "name", "", "agent name")
	generateCmd.Flags().StringVar(&warehouse, "warehouse", "COMPUTE_WH", "default warehouse for the rendered script")
	generateCmd.Flags().StringVar(&roleName, "role", "", "access role name (default <AGENT>_USER_ROLE)")
	generateCmd.Flags().StringVar(&dsn, "dsn", "", "snowflake DSN (overrides config and $SNOWFLAKE_DSN)")
	generateCmd.Flags().StringVar(&specFile, "spec-file", "", "read the agent spec from a local JSON file instead of a live connection")
	generateCmd.Flags().StringVar(&modelDir, "model-dir", "", "directory of local dataset-definition files (with --spec-file)")
	generateCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the script to this path (default <agent>_permissions_<timestamp>.sql)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	req := pipeline.Request{
		Database:  agentDatabase,
		Schema:    agentSchema,
		Name:      agentName,
		Warehouse: warehouse,
		RoleName:  roleName,
	}

	// cart.yaml fills in anything the flags left unset.
	if cfg, err := config.LoadConfig(cfgFile); err == nil {
		if req.Database == "" {
			req.Database = cfg.Agent.Database
		}
		if req.Schema == "" {
			req.Schema = cfg.Agent.Schema
		}
		if req.Name == "" {
			req.Name = cfg.Agent.Name
		}
		if !cmd.Flags().Changed("warehouse") && cfg.Warehouse != "" {
			req.Warehouse = cfg.Warehouse
		}
		if req.RoleName == "" {
			req.RoleName = cfg.Role
		}
		if dsn == "" {
			dsn = cfg.DSN
		}
		if outputPath == "" {
			outputPath = cfg.Output
		}
	}

	if req.Database == "" || req.Schema == "" || req.Name == "" {
		return fmt.Errorf("agent database, schema, and name are required (flags or cart.yaml)")
	}

	log := logging.NewJSONLogger(os.Stderr, verbose)

	var (
		specs pipeline.SpecSource
		defs  pipeline.DefinitionSource
	)
	if specFile != "" {
		src := local.Source{SpecPath: specFile, ModelDir: modelDir}
		specs, defs = src, src
	} else {
		if dsn == "" {
			dsn = os.Getenv("SNOWFLAKE_DSN")
		}
		if dsn == "" {
			return fmt.Errorf("no connection configured: set --dsn, dsn in cart.yaml, or $SNOWFLAKE_DSN (or use --spec-file for offline runs)")
		}
		client, err := snowflake.Open(dsn, log)
		if err != nil {
			return err
		}
		defer client.Close()
		specs, defs = client, client
	}

	gen := pipeline.NewGenerator(specs, defs, log)
	res, err := gen.GenerateGrantScript(cmd.Context(), req)
	if err != nil {
		return err
	}

	out := outputPath
	if out == "" {
		out = fmt.Sprintf("%s_permissions_%s.sql", req.Name, time.Now().Format("20060102_150405"))
	}
	if err := os.WriteFile(out, []byte(res.Script), 0o644); err != nil {
		return fmt.Errorf("writing script: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), tui.RenderSummary(tui.DefaultStyles(), req, res))
	fmt.Fprintf(cmd.OutOrStdout(), "\nScript written to %s\n", out)

	if derr := res.Diags.Err(); derr != nil && verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "partial coverage:\n%v\n", derr)
	}
	return nil
}
