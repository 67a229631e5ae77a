package model

import "time"

// InterviewType categorizes a discovery session.
// Interview types are extensible; the constants are the ones the UI offers.
type InterviewType string

const (
	InterviewDiscovery  InterviewType = "discovery"
	InterviewFeedback   InterviewType = "feedback"
	InterviewValidation InterviewType = "validation"
	InterviewUsability  InterviewType = "usability"
)

// String returns the string representation of the interview type.
func (t InterviewType) String() string {
	return string(t)
}

// Interview is a discovery or feedback session held with one stakeholder.
type Interview struct {
	ID            int64         `json:"id"`
	ProjectID     int64         `json:"project_id"`
	StakeholderID int64         `json:"stakeholder_id"`
	Date          time.Time     `json:"date"`
	Interviewer   string        `json:"interviewer,omitempty"`
	Type          InterviewType `json:"type"`
}
