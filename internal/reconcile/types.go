package reconcile

import "github.com/temirov/depdoc/internal/shared"

// ScopeMismatch records a name documented with a scope different from the manifest's.
type ScopeMismatch struct {
	Name          string       `json:"name" yaml:"name"`
	ManifestScope shared.Scope `json:"manifestScope" yaml:"manifestScope"`
	DepDocScope   shared.Scope `json:"depDocScope" yaml:"depDocScope"`
}

// Verdict is the outcome of one reconciliation run.
type Verdict struct {
	OK              bool                 `json:"ok" yaml:"ok"`
	Label           shared.ManifestLabel `json:"label" yaml:"label"`
	Missing         []string             `json:"missing" yaml:"missing"`
	Extra           []string             `json:"extra" yaml:"extra"`
	ScopeMismatches []ScopeMismatch      `json:"scopeMismatches" yaml:"scopeMismatches"`
	Errors          []string             `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// HasErrors reports whether the run failed before a diff could be computed.
func (verdict Verdict) HasErrors() bool {
	return len(verdict.Errors) > 0
}

func failedVerdict(label shared.ManifestLabel, failure error) Verdict {
	return Verdict{
		OK:              false,
		Label:           label,
		Missing:         []string{},
		Extra:           []string{},
		ScopeMismatches: []ScopeMismatch{},
		Errors:          []string{failure.Error()},
	}
}
