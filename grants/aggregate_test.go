package grants

import (
	"reflect"
	"testing"

	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/resolve"
	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/semantic"
)

func TestAggregate_DatasetQueryWithBaseTable(t *testing.T) {
	// One dataset-query tool over DB1.SCH1.VIEW1 whose definition lists
	// base table DB2.SCH2.TBL1.
	set := Aggregate(Input{
		AgentDatabase: "AGENTDB",
		AgentSchema:   "AGENTS",
		Locators: []resolve.Locator{
			{
				Kind:     resolve.KindSemanticView,
				Database: "DB1", Schema: "SCH1", Object: "VIEW1",
				Path: "DB1.SCH1.VIEW1",
			},
		},
		Tables: []semantic.TableRef{
			{Database: "DB2", Schema: "SCH2", Table: "TBL1"},
		},
	})

	wantDBs := []string{"AGENTDB", "DB1", "DB2"}
	if !reflect.DeepEqual(set.Databases, wantDBs) {
		t.Errorf("databases = %v, want %v", set.Databases, wantDBs)
	}
	wantSchemas := []string{"AGENTDB.AGENTS", "DB1.SCH1", "DB2.SCH2"}
	if !reflect.DeepEqual(set.Schemas, wantSchemas) {
		t.Errorf("schemas = %v, want %v", set.Schemas, wantSchemas)
	}
	if !reflect.DeepEqual(set.SemanticViews, []string{"DB1.SCH1.VIEW1"}) {
		t.Errorf("views = %v", set.SemanticViews)
	}
	if !reflect.DeepEqual(set.Tables, []string{"DB2.SCH2.TBL1"}) {
		t.Errorf("tables = %v", set.Tables)
	}
}

func TestAggregate_DiscoveredServiceAddsLocation(t *testing.T) {
	// A service found only by document scanning contributes its own
	// database and schema grants.
	set := Aggregate(Input{
		AgentDatabase: "AGENTDB",
		AgentSchema:   "AGENTS",
		Services:      []string{"DB3.SCH3.SVC1"},
	})
	if !reflect.DeepEqual(set.SearchServices, []string{"DB3.SCH3.SVC1"}) {
		t.Errorf("services = %v", set.SearchServices)
	}
	if !contains(set.Databases, "DB3") {
		t.Errorf("databases = %v, want DB3 included", set.Databases)
	}
	if !contains(set.Schemas, "DB3.SCH3") {
		t.Errorf("schemas = %v, want DB3.SCH3 included", set.Schemas)
	}
}

func TestAggregate_ServiceNamedBothWaysAppearsOnce(t *testing.T) {
	set := Aggregate(Input{
		AgentDatabase: "D",
		AgentSchema:   "S",
		Locators: []resolve.Locator{
			{
				Kind:     resolve.KindSearchService,
				Database: "DB3", Schema: "SCH3", Object: "SVC1",
				Path: "DB3.SCH3.SVC1",
			},
		},
		Services: []string{"DB3.SCH3.SVC1"},
	})
	if len(set.SearchServices) != 1 {
		t.Errorf("services = %v, want exactly one", set.SearchServices)
	}
}

func TestAggregate_IncompleteLocatorsContributeLocationOnly(t *testing.T) {
	set := Aggregate(Input{
		AgentDatabase: "D",
		AgentSchema:   "S",
		Locators: []resolve.Locator{
			{
				Kind:     resolve.KindSemanticView,
				Database: "DB1", Schema: "SCH1",
				Path: "DB1.SCH1", // no object: incomplete
			},
			{Kind: resolve.KindUnresolved},
		},
	})
	if len(set.SemanticViews) != 0 {
		t.Errorf("views = %v, want none for incomplete locator", set.SemanticViews)
	}
	if !contains(set.Databases, "DB1") || !contains(set.Schemas, "DB1.SCH1") {
		t.Errorf("location grants missing: dbs=%v schemas=%v", set.Databases, set.Schemas)
	}
}

func TestAggregate_MalformedStageEmitsNoStageGrant(t *testing.T) {
	set := Aggregate(Input{
		AgentDatabase: "D",
		AgentSchema:   "S",
		Locators: []resolve.Locator{
			{Kind: resolve.KindSemanticModelFile, Path: "model.yaml", Malformed: true},
		},
	})
	if len(set.Stages) != 0 {
		t.Errorf("stages = %v, want none for malformed path", set.Stages)
	}
}

func TestAggregate_StageGrant(t *testing.T) {
	set := Aggregate(Input{
		AgentDatabase: "D",
		AgentSchema:   "S",
		Locators: []resolve.Locator{
			{
				Kind:     resolve.KindSemanticModelFile,
				Database: "DB1", Schema: "SCH1",
				Path:  "@DB1.SCH1.STG1/model.yaml",
				Stage: resolve.StagePath{Database: "DB1", Schema: "SCH1", Stage: "STG1", File: "model.yaml"},
			},
		},
	})
	if !reflect.DeepEqual(set.Stages, []string{"DB1.SCH1.STG1"}) {
		t.Errorf("stages = %v", set.Stages)
	}
	if !contains(set.Databases, "DB1") || !contains(set.Schemas, "DB1.SCH1") {
		t.Errorf("stage location grants missing: dbs=%v schemas=%v", set.Databases, set.Schemas)
	}
}

func TestAggregate_SupersetInvariant(t *testing.T) {
	in := Input{
		AgentDatabase: "AGENTDB",
		AgentSchema:   "AGENTS",
		Locators: []resolve.Locator{
			{Kind: resolve.KindSemanticView, Database: "DB1", Schema: "SCH1", Object: "V", Path: "DB1.SCH1.V"},
			{Kind: resolve.KindProcedure, Database: "DB5", Schema: "SCH5", Signature: "DB5.SCH5.P()"},
		},
		Tables: []semantic.TableRef{
			{Database: "DB2", Schema: "SCH2", Table: "T1"},
			{Database: "DB6", Schema: "SCH6", Table: "T2"},
		},
	}
	set := Aggregate(in)

	for _, loc := range in.Locators {
		if !contains(set.Databases, loc.Database) {
			t.Errorf("database set missing locator db %q: %v", loc.Database, set.Databases)
		}
	}
	for _, tbl := range in.Tables {
		if !contains(set.Databases, tbl.Database) {
			t.Errorf("database set missing table db %q: %v", tbl.Database, set.Databases)
		}
	}
}

func TestAggregate_WarehousesNotDeduplicated(t *testing.T) {
	// Two tools sharing a warehouse produce two annotated entries,
	// ordered by warehouse then tool.
	set := Aggregate(Input{
		AgentDatabase: "D",
		AgentSchema:   "S",
		Warehouses: []WarehouseGrant{
			{Tool: "t2", Warehouse: "WH1"},
			{Tool: "t1", Warehouse: "WH1"},
		},
	})
	want := []WarehouseGrant{
		{Tool: "t1", Warehouse: "WH1"},
		{Tool: "t2", Warehouse: "WH1"},
	}
	if !reflect.DeepEqual(set.Warehouses, want) {
		t.Errorf("warehouses = %v, want %v", set.Warehouses, want)
	}
}

func TestAggregate_Deterministic(t *testing.T) {
	in := Input{
		AgentDatabase: "D",
		AgentSchema:   "S",
		Tables: []semantic.TableRef{
			{Database: "ZZ", Schema: "S", Table: "T"},
			{Database: "AA", Schema: "S", Table: "T"},
		},
	}
	a := Aggregate(in)
	b := Aggregate(in)
	if !reflect.DeepEqual(a, b) {
		t.Error("aggregation is not deterministic")
	}
	if a.Databases[0] != "AA" {
		t.Errorf("databases not sorted: %v", a.Databases)
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
