// Package spec defines the specification model shared by the debate roles:
// the proposal and consensus shapes, the auditor critique, and the pure
// validation of a candidate consensus specification.
package spec

import "strings"

// Flexibility values allowed on a task.
const (
	FlexibilityFixed    = "fixed"
	FlexibilityFlexible = "flexible"
)

// Task is one unit of work in a project specification. Every task in a
// consensus specification must carry a physical target path and a
// human/machine-checkable verification string.
type Task struct {
	ID                   string   `json:"id"`
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	TechnicalRequirement string   `json:"technical_requirement,omitempty"`
	TargetPath           string   `json:"target_path"`
	Verification         string   `json:"verification"`
	Flexibility          string   `json:"flexibility,omitempty"`
	Dependencies         []string `json:"dependencies,omitempty"`
}

// ProjectSpec is the project specification produced by the debate: project
// metadata plus an ordered task list.
type ProjectSpec struct {
	ProjectName          string `json:"project_name"`
	Description          string `json:"description"`
	Version              string `json:"version,omitempty"`
	ArchitectureProposal string `json:"architecture_proposal,omitempty"`
	Tasks                []Task `json:"tasks"`
	CreatedAt            string `json:"created_at,omitempty"`
}

// Weakness is one technical weakness called out by the auditor.
type Weakness struct {
	Summary string `json:"summary"`
	Detail  string `json:"detail,omitempty"`
}

// Critique is the auditor's structured verdict on a proposal. A critique with
// fewer than three distinct weaknesses is a validation failure, not a soft
// warning.
type Critique struct {
	Weaknesses   []Weakness `json:"weaknesses"`
	Remediations []string   `json:"remediations"`
}

// MinWeaknesses is the number of distinct weaknesses a critique must carry.
const MinWeaknesses = 3

// DistinctWeaknesses counts weaknesses with distinct summaries. Distinctness
// is exact equality of the normalized summary text: trimmed, case-folded,
// inner whitespace collapsed.
func (c Critique) DistinctWeaknesses() int {
	seen := make(map[string]struct{}, len(c.Weaknesses))
	for _, w := range c.Weaknesses {
		key := strings.Join(strings.Fields(strings.ToLower(w.Summary)), " ")
		if key == "" {
			continue
		}
		seen[key] = struct{}{}
	}
	return len(seen)
}
