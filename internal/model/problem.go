package model

// Severity ranks how painful a problem is.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}

// IsValid checks whether the severity is a known value.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// Problem is a documented pain point owned by one stakeholder.
type Problem struct {
	ID            int64    `json:"id"`
	ProjectID     int64    `json:"project_id"`
	StakeholderID int64    `json:"stakeholder_id"`
	Description   string   `json:"description,omitempty"`
	Severity      Severity `json:"severity"`

	// Relational data -- populated by queries.
	OutcomeIDs []int64 `json:"outcome_ids,omitempty"`
	Tags       []Tag   `json:"tags,omitempty"`
}
