package manifest

import (
	"sort"

	"github.com/temirov/depdoc/internal/shared"
)

// Inventory is the name to scope view of a manifest.
type Inventory struct {
	Label       shared.ManifestLabel
	Names       []string
	ScopeByName map[string]shared.Scope
}

// scopeAssignments accumulates scopes while manifest tables are processed in order.
type scopeAssignments map[string]shared.Scope

// assignIfAbsent records scope unless the name already has one.
func (assignments scopeAssignments) assignIfAbsent(name string, scope shared.Scope) {
	if _, assigned := assignments[name]; assigned {
		return
	}
	assignments[name] = scope
}

// assignProdOverriding lets prod replace any earlier scope; other scopes keep the first assignment.
func (assignments scopeAssignments) assignProdOverriding(name string, scope shared.Scope) {
	if scope == shared.ScopeProd {
		assignments[name] = scope
		return
	}
	assignments.assignIfAbsent(name, scope)
}

func (assignments scopeAssignments) inventory(label shared.ManifestLabel) Inventory {
	names := make([]string, 0, len(assignments))
	for name := range assignments {
		names = append(names, name)
	}
	sort.Strings(names)

	scopeByName := make(map[string]shared.Scope, len(assignments))
	for name, scope := range assignments {
		scopeByName[name] = scope
	}

	return Inventory{
		Label:       label,
		Names:       names,
		ScopeByName: scopeByName,
	}
}
