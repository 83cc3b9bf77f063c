package config

import "testing"

func TestParseConfig(t *testing.T) {
	data := []byte(`
agent:
  database: SNOWFLAKE_INTELLIGENCE
  schema: AGENTS
  name: SUBCONTRACTOR_AI
warehouse: ANALYTICS_WH
role: CUSTOM_ROLE
output: out.sql
`)
	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("ParseConfig() error: %v", err)
	}
	if cfg.Agent.Database != "SNOWFLAKE_INTELLIGENCE" || cfg.Agent.Schema != "AGENTS" || cfg.Agent.Name != "SUBCONTRACTOR_AI" {
		t.Errorf("agent = %+v", cfg.Agent)
	}
	if cfg.Warehouse != "ANALYTICS_WH" {
		t.Errorf("warehouse = %q", cfg.Warehouse)
	}
	if cfg.Role != "CUSTOM_ROLE" {
		t.Errorf("role = %q", cfg.Role)
	}
}

func TestParseConfig_Malformed(t *testing.T) {
	if _, err := ParseConfig([]byte("agent: [")); err == nil {
		t.Fatal("expected parse error")
	}
}
