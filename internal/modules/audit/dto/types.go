package dto

import "time"

type ListInput struct {
	Type   string
	CrewID string
	Limit  int
}

type CountInput struct {
	Type   string
	CrewID string
	Since  time.Time
}

type RecordOutput struct {
	ID         string        `json:"id"`
	Type       string        `json:"type"`
	Timestamp  time.Time     `json:"timestamp"`
	Details    string        `json:"details"`
	Duration   time.Duration `json:"duration,omitempty"`
	CrewID     string        `json:"crew_id,omitempty"`
	ReasonCode string        `json:"reason_code,omitempty"`
}
