package savegame

import (
	"strings"

	"github.com/vovakirdan/rubberband/internal/catalog"
)

// Migration is one historical save layout change. Apply rewrites the
// record in place and reports whether anything changed. Steps must be
// safe to run on records that are already current.
type Migration struct {
	Name  string
	Apply func(r Record, cat *catalog.Catalog) bool
}

// Migrations returns the layout changes in the order they must run.
func Migrations() []Migration {
	return []Migration{
		{Name: "rename-entities", Apply: renameEntities},
		{Name: "production-line-keys", Apply: productionLineKeys},
		{Name: "extruder-typo", Apply: extruderTypo},
		{Name: "fold-named-collections", Apply: foldNamedCollections},
		{Name: "nano-allocation", Apply: consolidateNanoAllocation},
		{Name: "nanobot-factory-slot", Apply: nanobotFactorySlot},
	}
}

// Migrate runs every migration over r and returns the names of the ones
// that changed it.
func Migrate(r Record, cat *catalog.Catalog) []string {
	var applied []string
	for _, m := range Migrations() {
		if m.Apply(r, cat) {
			applied = append(applied, m.Name)
		}
	}
	return applied
}

// Legacy keys.
const (
	keyEntities           = "entities"
	keyPurchasedEntities  = "purchasedEntities"
	keyMachines           = "machines"
	keyPlantations        = "plantations"
	keyLines              = "machineProductionLines"
	keyLineCount          = "machineProductionLineCount"
	keyNanoAllocRubber    = "nanoAllocRubber"
	keyNanoAllocBander    = "nanoAllocBander"
	keyNanoAllocLines     = "nanoAllocLines"
	keyNanoAllocNanobots  = "nanoAllocNanobots"
	keyProducers          = "producers"
	keyPurchasedProducers = "purchasedProducers"
	keyNanoAllocation     = "nanoAllocation"
	keyFactoryCount       = "nanobotFactoryCount"
)

const (
	megaLineName     = "MEGA-Bander Line"
	oldMegaLineName  = "Bander 100 Line"
	misspeltExtruder = "Extrudor"
	extruderSpelling = "Extruder"
)

func renameEntities(r Record, _ *catalog.Catalog) bool {
	changed := false
	for oldKey, newKey := range map[string]string{
		keyEntities:          keyProducers,
		keyPurchasedEntities: keyPurchasedProducers,
	} {
		v, ok := r[oldKey]
		if !ok {
			continue
		}
		if !r.Has(newKey) {
			r[newKey] = v
		}
		delete(r, oldKey)
		changed = true
	}
	return changed
}

// productionLineKeys brings the line collection to line-name keys: the
// single-line counter, the old name of the first bander line, and keys
// that named the built machine instead of the line.
func productionLineKeys(r Record, cat *catalog.Catalog) bool {
	changed := false
	if n, ok := r.Number(keyLineCount); ok {
		lines := ensureObject(r, keyLines)
		if count, _ := lines[oldMegaLineName].(float64); count == 0 && n != 0 {
			lines[oldMegaLineName] = n
		}
		delete(r, keyLineCount)
		changed = true
	} else if _, ok := r[keyLineCount]; ok {
		delete(r, keyLineCount)
		changed = true
	}

	lines, ok := r.Object(keyLines)
	if !ok {
		return changed
	}
	if renameKey(lines, oldMegaLineName, megaLineName) {
		changed = true
	}

	for _, f := range cat.Families {
		for _, t := range f.Tiers {
			out := t.Production.Output
			if out.Resource != catalog.ResourceProducer {
				continue
			}
			_, built, ok := cat.Tier(out.FamilyID, out.TierIndex)
			if !ok {
				continue
			}
			if renameKey(lines, built.Name, t.Name) {
				changed = true
			}
		}
	}
	return changed
}

func extruderTypo(r Record, _ *catalog.Catalog) bool {
	changed := false
	for _, key := range []string{keyMachines, keyPlantations, keyLines} {
		coll, ok := r.Object(key)
		if !ok {
			continue
		}
		for name := range coll {
			if strings.Contains(name, misspeltExtruder) {
				if renameKey(coll, name, strings.ReplaceAll(name, misspeltExtruder, extruderSpelling)) {
					changed = true
				}
			}
		}
	}
	return changed
}

// foldNamedCollections moves counts kept in name-keyed maps into the
// per-family arrays. Legacy counts were all bought by hand, so they land
// in both owned and purchased. A missing purchased map is left for the
// zero-filled backfill.
func foldNamedCollections(r Record, cat *catalog.Catalog) bool {
	changed := false
	for _, key := range []string{keyMachines, keyPlantations, keyLines} {
		v, present := r[key]
		if !present {
			continue
		}
		delete(r, key)
		changed = true

		coll, ok := v.(map[string]any)
		if !ok {
			continue
		}
		for name, raw := range coll {
			count, ok := raw.(float64)
			if !ok || count <= 0 {
				continue
			}
			ref, ok := cat.TierByName(name)
			if !ok {
				continue
			}
			f, _ := cat.FamilyByID(ref.FamilyID)
			for _, target := range []string{keyProducers, keyPurchasedProducers} {
				arr := ensureCounts(ensureObject(r, target), f.ID, len(f.Tiers))
				prev, _ := arr[ref.Index].(float64)
				arr[ref.Index] = prev + count
			}
		}
	}
	return changed
}

func consolidateNanoAllocation(r Record, _ *catalog.Catalog) bool {
	legacy := map[string]string{
		keyNanoAllocRubber:   "rubber_machines",
		keyNanoAllocBander:   "bander_machines",
		keyNanoAllocLines:    "production_lines",
		keyNanoAllocNanobots: "nanobots",
	}

	changed := false
	current := r.Has(keyNanoAllocation)
	for oldKey, field := range legacy {
		v, ok := r[oldKey]
		if !ok {
			continue
		}
		delete(r, oldKey)
		changed = true
		if current {
			continue
		}
		if n, ok := v.(float64); ok {
			ensureObject(r, keyNanoAllocation)[field] = n
		}
	}
	return changed
}

// nanobotFactorySlot handles saves from before the factory had its own
// counter, when it was stored as the first tier of the swarm family.
func nanobotFactorySlot(r Record, cat *catalog.Catalog) bool {
	if r.Has(keyFactoryCount) {
		return false
	}
	family := cat.Constants.NanoSwarmFamily
	owned, ok := r.Object(keyProducers)
	if !ok {
		return false
	}
	arr, ok := owned[family].([]any)
	if !ok || len(arr) == 0 {
		return false
	}
	n, _ := arr[0].(float64)
	if n <= 0 {
		return false
	}

	r[keyFactoryCount] = n
	arr[0] = 0.0
	if purchased, ok := r.Object(keyPurchasedProducers); ok {
		if parr, ok := purchased[family].([]any); ok && len(parr) > 0 {
			parr[0] = 0.0
		}
	}
	return true
}

func renameKey(m map[string]any, from, to string) bool {
	v, ok := m[from]
	if !ok || from == to {
		return false
	}
	if _, taken := m[to]; !taken {
		m[to] = v
	}
	delete(m, from)
	return true
}

func ensureObject(r Record, key string) map[string]any {
	if m, ok := r.Object(key); ok {
		return m
	}
	m := map[string]any{}
	r[key] = m
	return m
}

// ensureCounts returns the count array for family, padded to size.
func ensureCounts(m map[string]any, family string, size int) []any {
	arr, _ := m[family].([]any)
	for len(arr) < size {
		arr = append(arr, 0.0)
	}
	m[family] = arr
	return arr
}
