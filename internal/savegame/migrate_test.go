package savegame

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/rubberband/internal/config"
)

func mustParse(t *testing.T, s string) Record {
	t.Helper()
	r, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	return r
}

func counts(t *testing.T, r Record, key, family string) []any {
	t.Helper()
	m, ok := r.Object(key)
	if !ok {
		t.Fatalf("%s missing or not an object", key)
	}
	arr, ok := m[family].([]any)
	if !ok {
		t.Fatalf("%s.%s missing", key, family)
	}
	return arr
}

func TestMigrationOrder(t *testing.T) {
	var names []string
	for _, m := range Migrations() {
		names = append(names, m.Name)
	}
	want := []string{
		"rename-entities",
		"production-line-keys",
		"extruder-typo",
		"fold-named-collections",
		"nano-allocation",
		"nanobot-factory-slot",
	}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Migrations() = %v, want %v", names, want)
	}
}

func TestRenameEntities(t *testing.T) {
	r := mustParse(t, `{"entities":{"bander":[3]},"purchasedEntities":{"bander":[2]}}`)
	if !renameEntities(r, nil) {
		t.Fatal("expected a change")
	}
	if _, ok := r["entities"]; ok {
		t.Error("entities should be removed")
	}
	if got := counts(t, r, "producers", "bander")[0]; got != 3.0 {
		t.Errorf("producers.bander[0] = %v, want 3", got)
	}
	if got := counts(t, r, "purchasedProducers", "bander")[0]; got != 2.0 {
		t.Errorf("purchasedProducers.bander[0] = %v, want 2", got)
	}

	if renameEntities(r, nil) {
		t.Error("second run should be a no-op")
	}
}

func TestRenameEntitiesKeepsCurrentField(t *testing.T) {
	r := mustParse(t, `{"entities":{"bander":[9]},"producers":{"bander":[1]}}`)
	renameEntities(r, nil)
	if got := counts(t, r, "producers", "bander")[0]; got != 1.0 {
		t.Errorf("current producers overwritten: %v", got)
	}
}

func TestProductionLineKeys(t *testing.T) {
	cat := config.Default()

	t.Run("line count", func(t *testing.T) {
		r := mustParse(t, `{"machineProductionLineCount":4}`)
		if !productionLineKeys(r, cat) {
			t.Fatal("expected a change")
		}
		lines, _ := r.Object("machineProductionLines")
		if lines["MEGA-Bander Line"] != 4.0 {
			t.Errorf("lines = %v, want MEGA-Bander Line: 4", lines)
		}
		if r.Has("machineProductionLineCount") {
			t.Error("counter should be removed")
		}
	})

	t.Run("old line name", func(t *testing.T) {
		r := mustParse(t, `{"machineProductionLines":{"Bander 100 Line":2}}`)
		productionLineKeys(r, cat)
		lines, _ := r.Object("machineProductionLines")
		if lines["MEGA-Bander Line"] != 2.0 || lines["Bander 100 Line"] != nil {
			t.Errorf("lines = %v", lines)
		}
	})

	t.Run("machine-name keys", func(t *testing.T) {
		r := mustParse(t, `{"machineProductionLines":{"Quantum Bander":5}}`)
		productionLineKeys(r, cat)
		lines, _ := r.Object("machineProductionLines")
		if lines["Quantum Bander Line"] != 5.0 {
			t.Errorf("lines = %v, want Quantum Bander Line: 5", lines)
		}
	})
}

func TestExtruderTypo(t *testing.T) {
	r := mustParse(t, `{"plantations":{"Black Hole Extrudor":1,"Rubbertree Plantation":2}}`)
	if !extruderTypo(r, nil) {
		t.Fatal("expected a change")
	}
	p, _ := r.Object("plantations")
	if p["Black Hole Extruder"] != 1.0 || p["Rubbertree Plantation"] != 2.0 {
		t.Errorf("plantations = %v", p)
	}
	if extruderTypo(r, nil) {
		t.Error("second run should be a no-op")
	}
}

func TestFoldNamedCollections(t *testing.T) {
	cat := config.Default()
	r := mustParse(t, `{
		"machines": {"Bander": 3, "MAX-Bander": 1, "Unknown Gizmo": 7},
		"plantations": {"Rubbertree Plantation": 2},
		"machineProductionLines": {"MEGA-Bander Line": 1}
	}`)

	if !foldNamedCollections(r, cat) {
		t.Fatal("expected a change")
	}
	for _, key := range []string{"machines", "plantations", "machineProductionLines"} {
		if _, ok := r[key]; ok {
			t.Errorf("%s should be removed", key)
		}
	}

	for _, key := range []string{"producers", "purchasedProducers"} {
		bander := counts(t, r, key, "bander")
		if len(bander) != 5 || bander[0] != 3.0 || bander[1] != 1.0 {
			t.Errorf("%s.bander = %v", key, bander)
		}
		if got := counts(t, r, key, "rubber_sources")[0]; got != 2.0 {
			t.Errorf("%s.rubber_sources[0] = %v, want 2", key, got)
		}
		if got := counts(t, r, key, "bander_line")[0]; got != 1.0 {
			t.Errorf("%s.bander_line[0] = %v, want 1", key, got)
		}
	}
}

func TestFoldLeavesMissingPurchasedAlone(t *testing.T) {
	r := mustParse(t, `{"producers":{"bander":[4,0]}}`)
	if foldNamedCollections(r, config.Default()) {
		t.Error("record without named collections reported a change")
	}
	if r.Has("purchasedProducers") {
		t.Errorf("purchasedProducers = %v, want it absent", r["purchasedProducers"])
	}
}

func TestConsolidateNanoAllocation(t *testing.T) {
	r := mustParse(t, `{"nanoAllocRubber":0.1,"nanoAllocBander":0.2,"nanoAllocLines":0.3,"nanoAllocNanobots":0.4}`)
	if !consolidateNanoAllocation(r, nil) {
		t.Fatal("expected a change")
	}
	alloc, ok := r.Object("nanoAllocation")
	if !ok {
		t.Fatal("nanoAllocation missing")
	}
	want := map[string]any{"rubber_machines": 0.1, "bander_machines": 0.2, "production_lines": 0.3, "nanobots": 0.4}
	if !reflect.DeepEqual(alloc, want) {
		t.Errorf("nanoAllocation = %v, want %v", alloc, want)
	}
	if r.Has("nanoAllocRubber") {
		t.Error("legacy keys should be removed")
	}
}

func TestConsolidateKeepsCurrentAllocation(t *testing.T) {
	r := mustParse(t, `{"nanoAllocRubber":0.9,"nanoAllocation":{"rubber_machines":0.5}}`)
	consolidateNanoAllocation(r, nil)
	alloc, _ := r.Object("nanoAllocation")
	if alloc["rubber_machines"] != 0.5 {
		t.Errorf("current allocation overwritten: %v", alloc)
	}
}

func TestNanobotFactorySlot(t *testing.T) {
	cat := config.Default()

	r := mustParse(t, `{"producers":{"nanoswarm":[3]},"purchasedProducers":{"nanoswarm":[3]}}`)
	if !nanobotFactorySlot(r, cat) {
		t.Fatal("expected a change")
	}
	if n, _ := r.Number("nanobotFactoryCount"); n != 3 {
		t.Errorf("nanobotFactoryCount = %v, want 3", n)
	}
	if got := counts(t, r, "producers", "nanoswarm")[0]; got != 0.0 {
		t.Errorf("owned slot = %v, want 0", got)
	}
	if got := counts(t, r, "purchasedProducers", "nanoswarm")[0]; got != 0.0 {
		t.Errorf("purchased slot = %v, want 0", got)
	}

	current := mustParse(t, `{"producers":{"nanoswarm":[3]},"nanobotFactoryCount":1}`)
	if nanobotFactorySlot(current, cat) {
		t.Error("records with a factory counter must be left alone")
	}
	if got := counts(t, current, "producers", "nanoswarm")[0]; got != 3.0 {
		t.Errorf("swarm count changed to %v", got)
	}
}

func TestMigrateCurrentRecordIsNoop(t *testing.T) {
	r := mustParse(t, `{"money":10,"producers":{"bander":[1,0,0,0,0]},"purchasedProducers":{"bander":[1,0,0,0,0]},"nanobotFactoryCount":0,"nanoAllocation":{"nanobots":0.25}}`)
	if applied := Migrate(r, config.Default()); len(applied) != 0 {
		t.Errorf("Migrate() applied %v to a current record", applied)
	}
}

func TestMigrateOldestLayout(t *testing.T) {
	r := mustParse(t, `{
		"money": 500,
		"machines": {"Bander": 2},
		"machineProductionLineCount": 1,
		"plantations": {"Black Hole Extrudor": 1}
	}`)
	applied := Migrate(r, config.Default())
	if len(applied) < 3 {
		t.Errorf("Migrate() applied only %v", applied)
	}
	if got := counts(t, r, "producers", "rubber_sources")[2]; got != 1.0 {
		t.Errorf("extruder count = %v, want 1", got)
	}
	if got := counts(t, r, "producers", "bander_line")[0]; got != 1.0 {
		t.Errorf("MEGA line count = %v, want 1", got)
	}
	if err := Validate(r); err != nil {
		t.Errorf("migrated record fails validation: %v", err)
	}
}
