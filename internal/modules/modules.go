// Package modules declares the module export table collaborator (§6):
// Modules.get_exports(qualifier) -> [Identifier]?. It is process-wide,
// read-mostly, and frozen after an external populate step (§5); this
// package only ships the interface and an in-memory Table implementation
// for tests and the cmd/pyscope harness. Grounded on the teacher's
// internal/modules.Loader, which plays the analogous "resolve a qualifier
// to what it exports" role for its own (very different) module system.
package modules

// Exports resolves a module qualifier (e.g. "pkg.sub") to the set of
// identifiers it exports, or reports that the module hasn't been indexed
// yet by returning ok=false. A real implementation backs this with a
// shared-memory table populated by the hosting system outside the core.
type Exports interface {
	GetExports(qualifier string) (names []string, ok bool)
}

// Table is an in-memory Exports, populated once and read thereafter —
// the "frozen after populate" discipline §5 describes for the real table.
type Table struct {
	byQualifier map[string][]string
}

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{byQualifier: map[string][]string{}}
}

// Populate records the export list for qualifier. Calling Populate after
// the table has started being read concurrently is the caller's
// responsibility to avoid (§5: writes happen in external setup only).
func (t *Table) Populate(qualifier string, names []string) {
	t.byQualifier[qualifier] = names
}

func (t *Table) GetExports(qualifier string) ([]string, bool) {
	names, ok := t.byQualifier[qualifier]
	return names, ok
}
