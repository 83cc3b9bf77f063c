package grants

import (
	"sort"

	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/resolve"
	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/semantic"
	"github.com/sfc-gh-amelatti/cortex-agents-role-tool-CART/util"
)

// Input carries everything the aggregator folds into a GrantSet.
type Input struct {
	AgentDatabase string
	AgentSchema   string

	// Locators are the resolved targets of every tool, in tool order.
	Locators []resolve.Locator

	// Tables and Services are the union of discoveries across all
	// processed dataset definitions. Services also includes services
	// named directly by tool resource mappings, via Locators.
	Tables   []semantic.TableRef
	Services []string

	// Warehouses holds one entry per tool that declared one.
	Warehouses []WarehouseGrant
}

// Aggregate is a pure function from discovered resources to a GrantSet.
// Database and schema grants are a strict superset of what the tool
// specification alone implies: every database/schema appearing in a
// resolved locator, a discovered table, or the agent's own home
// location is included. Object-level grants require a complete locator.
func Aggregate(in Input) GrantSet {
	databases := map[string]struct{}{}
	schemas := map[string]struct{}{}
	views := map[string]struct{}{}
	tables := map[string]struct{}{}
	services := map[string]struct{}{}
	procedures := map[string]struct{}{}
	stages := map[string]struct{}{}

	addLocation := func(db, schema string) {
		if db == "" || schema == "" {
			return
		}
		databases[db] = struct{}{}
		schemas[util.QualifySchema(db, schema)] = struct{}{}
	}

	addLocation(in.AgentDatabase, in.AgentSchema)

	for _, loc := range in.Locators {
		switch loc.Kind {
		case resolve.KindSemanticView:
			addLocation(loc.Database, loc.Schema)
			if loc.Complete() {
				views[loc.Path] = struct{}{}
			}
		case resolve.KindSearchService:
			addLocation(loc.Database, loc.Schema)
			if loc.Complete() {
				services[loc.Path] = struct{}{}
			}
		case resolve.KindProcedure:
			addLocation(loc.Database, loc.Schema)
			if loc.Complete() {
				procedures[loc.Signature] = struct{}{}
			}
		case resolve.KindSemanticModelFile:
			if !loc.Malformed {
				addLocation(loc.Stage.Database, loc.Stage.Schema)
				stages[loc.Stage.Qualified()] = struct{}{}
			}
		}
	}

	for _, t := range in.Tables {
		addLocation(t.Database, t.Schema)
		tables[t.Qualified()] = struct{}{}
	}

	// Services discovered via document scanning union with services
	// named directly by resource mappings; a service named both ways
	// appears exactly once.
	for _, s := range in.Services {
		services[s] = struct{}{}
		db := util.Segment(s, 0)
		schema := util.Segment(s, 1)
		addLocation(db, schema)
	}

	warehouses := append([]WarehouseGrant(nil), in.Warehouses...)
	sort.Slice(warehouses, func(i, j int) bool {
		if warehouses[i].Warehouse != warehouses[j].Warehouse {
			return warehouses[i].Warehouse < warehouses[j].Warehouse
		}
		return warehouses[i].Tool < warehouses[j].Tool
	})

	return GrantSet{
		Databases:      sortedSet(databases),
		Schemas:        sortedSet(schemas),
		SemanticViews:  sortedSet(views),
		Tables:         sortedSet(tables),
		SearchServices: sortedSet(services),
		Procedures:     sortedSet(procedures),
		Stages:         sortedSet(stages),
		Warehouses:     warehouses,
	}
}

func sortedSet(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for v := range m {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
