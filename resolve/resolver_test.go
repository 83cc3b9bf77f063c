package resolve

import (
	"testing"

	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/agentspec"
)

func TestResolve_SemanticView(t *testing.T) {
	tool := agentspec.ToolDescriptor{
		Name: "sales",
		Kind: agentspec.KindDatasetQuery,
		Resource: agentspec.Resource{
			SemanticView: "DB1.SCH1.SALES_SV",
		},
	}
	loc := Resolve(tool)
	if loc.Kind != KindSemanticView {
		t.Fatalf("kind = %q, want %q", loc.Kind, KindSemanticView)
	}
	if loc.Database != "DB1" || loc.Schema != "SCH1" || loc.Object != "SALES_SV" {
		t.Errorf("location = %s.%s.%s, want DB1.SCH1.SALES_SV", loc.Database, loc.Schema, loc.Object)
	}
	if !loc.Complete() {
		t.Error("expected complete locator")
	}
}

func TestResolve_FieldPriority(t *testing.T) {
	// identifier outranks semantic_view and the rest.
	tool := agentspec.ToolDescriptor{
		Kind: agentspec.KindDatasetQuery,
		Resource: agentspec.Resource{
			Identifier:   "IDB.ISCH.IVIEW",
			SemanticView: "VDB.VSCH.VVIEW",
			Name:         "NDB.NSCH.NNAME",
		},
	}
	loc := Resolve(tool)
	if loc.Path != "IDB.ISCH.IVIEW" {
		t.Errorf("path = %q, want identifier to win", loc.Path)
	}
}

func TestResolve_DescriptionFallback(t *testing.T) {
	// A single-segment path falls back to the prose-derived pair.
	tool := agentspec.ToolDescriptor{
		Kind:        agentspec.KindDatasetQuery,
		Description: "Sales data. Database: DB9 Schema: SCH9",
		Resource: agentspec.Resource{
			SemanticView: "SALES_SV",
		},
	}
	loc := Resolve(tool)
	if loc.Database != "DB9" || loc.Schema != "SCH9" {
		t.Errorf("location = %s.%s, want DB9.SCH9", loc.Database, loc.Schema)
	}
	if loc.Object != "" {
		t.Errorf("object = %q, want empty for short path", loc.Object)
	}
	if loc.Complete() {
		t.Error("short path must yield an incomplete locator")
	}
}

func TestResolve_PathWinsOverDescription(t *testing.T) {
	// When the path is qualified, its segments locate the object even
	// if the description names a different (possibly stale) pair.
	tool := agentspec.ToolDescriptor{
		Kind:        agentspec.KindDatasetQuery,
		Description: "Database: OLD_DB Schema: OLD_SCH",
		Resource: agentspec.Resource{
			SemanticView: "NEW_DB.NEW_SCH.SV",
		},
	}
	loc := Resolve(tool)
	if loc.Database != "NEW_DB" || loc.Schema != "NEW_SCH" {
		t.Errorf("location = %s.%s, want NEW_DB.NEW_SCH", loc.Database, loc.Schema)
	}
}

func TestResolve_SemanticModelFile(t *testing.T) {
	tool := agentspec.ToolDescriptor{
		Kind: agentspec.KindDatasetQuery,
		Resource: agentspec.Resource{
			SemanticModelFile: "@DB1.SCH1.STG1/models/revenue.yaml",
		},
	}
	loc := Resolve(tool)
	if loc.Kind != KindSemanticModelFile {
		t.Fatalf("kind = %q, want %q", loc.Kind, KindSemanticModelFile)
	}
	if loc.Malformed {
		t.Fatal("unexpected malformed flag")
	}
	if got := loc.Stage.Qualified(); got != "DB1.SCH1.STG1" {
		t.Errorf("stage = %q, want DB1.SCH1.STG1", got)
	}
	if loc.Stage.File != "models/revenue.yaml" {
		t.Errorf("file = %q", loc.Stage.File)
	}
	if loc.Database != "DB1" || loc.Schema != "SCH1" {
		t.Errorf("location = %s.%s, want DB1.SCH1", loc.Database, loc.Schema)
	}
}

func TestResolve_SemanticModelFileMalformed(t *testing.T) {
	// No leading @: the file is still analyzable, but no stage grant
	// can be derived.
	tool := agentspec.ToolDescriptor{
		Kind: agentspec.KindDatasetQuery,
		Resource: agentspec.Resource{
			SemanticModelFile: "model.yaml",
		},
	}
	loc := Resolve(tool)
	if loc.Kind != KindSemanticModelFile {
		t.Fatalf("kind = %q, want %q", loc.Kind, KindSemanticModelFile)
	}
	if !loc.Malformed {
		t.Error("expected malformed stage path")
	}
	if loc.Complete() {
		t.Error("malformed model-file locator must be incomplete")
	}
	if loc.Path != "model.yaml" {
		t.Errorf("path = %q, want raw reference preserved", loc.Path)
	}
}

func TestResolve_SearchService(t *testing.T) {
	// An explicit search_service field wins over the generic path.
	tool := agentspec.ToolDescriptor{
		Kind: agentspec.KindSearchIndex,
		Resource: agentspec.Resource{
			Identifier:    "GEN_DB.GEN_SCH.GEN_OBJ",
			SearchService: "DB2.SCH2.DOC_SVC",
		},
	}
	loc := Resolve(tool)
	if loc.Kind != KindSearchService {
		t.Fatalf("kind = %q, want %q", loc.Kind, KindSearchService)
	}
	if loc.Path != "DB2.SCH2.DOC_SVC" {
		t.Errorf("path = %q, want explicit search_service to win", loc.Path)
	}
	if loc.Object != "DOC_SVC" {
		t.Errorf("object = %q, want DOC_SVC", loc.Object)
	}
}

func TestResolve_ProcedureSignature(t *testing.T) {
	tool := agentspec.ToolDescriptor{
		Kind:        agentspec.KindProcedure,
		Description: "Refunds. Database: DB1 Schema: SCH1",
		Resource: agentspec.Resource{
			Name: "MYPROC(NUMBER, VARCHAR)",
		},
	}
	loc := Resolve(tool)
	if loc.Kind != KindProcedure {
		t.Fatalf("kind = %q, want %q", loc.Kind, KindProcedure)
	}
	if loc.Signature != "DB1.SCH1.MYPROC(NUMBER, VARCHAR)" {
		t.Errorf("signature = %q", loc.Signature)
	}
}

func TestResolve_ProcedureRawPath(t *testing.T) {
	// Without a type-annotated name the raw qualified path is the
	// signature, verbatim.
	tool := agentspec.ToolDescriptor{
		Kind: agentspec.KindProcedure,
		Resource: agentspec.Resource{
			Identifier: "DB3.SCH3.REFUND_PROC",
		},
	}
	loc := Resolve(tool)
	if loc.Signature != "DB3.SCH3.REFUND_PROC" {
		t.Errorf("signature = %q", loc.Signature)
	}
}

func TestResolve_Unresolved(t *testing.T) {
	tests := []struct {
		name string
		tool agentspec.ToolDescriptor
	}{
		{"unknown kind", agentspec.ToolDescriptor{Kind: agentspec.KindUnknown}},
		{"dataset query without resources", agentspec.ToolDescriptor{Kind: agentspec.KindDatasetQuery}},
		{"search without resources", agentspec.ToolDescriptor{Kind: agentspec.KindSearchIndex}},
		{"procedure without resources", agentspec.ToolDescriptor{Kind: agentspec.KindProcedure}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := Resolve(tt.tool)
			if loc.Kind != KindUnresolved {
				t.Errorf("kind = %q, want %q", loc.Kind, KindUnresolved)
			}
			if loc.Complete() {
				t.Error("unresolved locator must not be complete")
			}
		})
	}
}
