package reconcile

import (
	"github.com/temirov/depdoc/internal/depdoc"
	"github.com/temirov/depdoc/internal/manifest"
)

// Diff computes the three-way comparison between a manifest inventory and the
// documentation. missing follows the manifest's sorted order; extra and scope
// mismatches follow the documentation's sorted order.
func Diff(inventory manifest.Inventory, documentation depdoc.Documentation) Verdict {
	documentedNames := make(map[string]struct{}, len(documentation.Names))
	for _, name := range documentation.Names {
		documentedNames[name] = struct{}{}
	}

	missing := []string{}
	for _, name := range inventory.Names {
		if _, documented := documentedNames[name]; !documented {
			missing = append(missing, name)
		}
	}

	extra := []string{}
	scopeMismatches := []ScopeMismatch{}
	for _, name := range documentation.Names {
		manifestScope, declared := inventory.ScopeByName[name]
		if !declared {
			extra = append(extra, name)
			continue
		}
		documentedScope := documentation.Scopes[name]
		if manifestScope != documentedScope {
			scopeMismatches = append(scopeMismatches, ScopeMismatch{
				Name:          name,
				ManifestScope: manifestScope,
				DepDocScope:   documentedScope,
			})
		}
	}

	return Verdict{
		OK:              len(missing) == 0 && len(extra) == 0 && len(scopeMismatches) == 0,
		Label:           inventory.Label,
		Missing:         missing,
		Extra:           extra,
		ScopeMismatches: scopeMismatches,
	}
}
