package model

// Priority ranks how important an outcome is.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// String returns the string representation of the priority.
func (p Priority) String() string {
	return string(p)
}

// IsValid checks whether the priority is a known value.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Outcome is a desired result owned by one stakeholder. Outcomes are linked
// many-to-many to the problems they address.
type Outcome struct {
	ID            int64    `json:"id"`
	ProjectID     int64    `json:"project_id"`
	StakeholderID int64    `json:"stakeholder_id"`
	Description   string   `json:"description,omitempty"`
	Priority      Priority `json:"priority"`

	// Relational data -- populated by queries.
	Metrics []*SuccessMetric `json:"metrics,omitempty"`
	Tags    []Tag            `json:"tags,omitempty"`
}

// SuccessMetric is a quantitative measure owned by exactly one outcome.
type SuccessMetric struct {
	ID           int64  `json:"id"`
	OutcomeID    int64  `json:"outcome_id"`
	Description  string `json:"description,omitempty"`
	TargetValue  string `json:"target_value,omitempty"`
	CurrentValue string `json:"current_value,omitempty"`
	Unit         string `json:"unit,omitempty"`
}
