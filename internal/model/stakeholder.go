package model

// StakeholderType classifies a stakeholder.
// Well-known constants are provided below, but types are extensible.
type StakeholderType string

const (
	StakeholderCustomer StakeholderType = "customer"
	StakeholderUser     StakeholderType = "user"
	StakeholderPartner  StakeholderType = "partner"
	StakeholderInternal StakeholderType = "internal"
	StakeholderInvestor StakeholderType = "investor"
)

// String returns the string representation of the stakeholder type.
func (t StakeholderType) String() string {
	return string(t)
}

// IsValid reports whether the stakeholder type is a non-empty string.
func (t StakeholderType) IsValid() bool {
	return t != ""
}

// Stakeholder is a person or organization relevant to product discovery.
// Most relationships in a project hang off a stakeholder.
type Stakeholder struct {
	ID           int64           `json:"id"`
	ProjectID    int64           `json:"project_id"`
	Name         string          `json:"name"`
	Type         StakeholderType `json:"type"`
	Email        string          `json:"email,omitempty"`
	Organization string          `json:"organization,omitempty"`

	// Relational data -- populated by queries, not stored in the stakeholders table.
	ProblemIDs   []int64 `json:"problem_ids,omitempty"`
	InterviewIDs []int64 `json:"interview_ids,omitempty"`
	Tags         []Tag   `json:"tags,omitempty"`
}
