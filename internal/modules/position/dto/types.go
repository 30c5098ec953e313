package dto

import "time"

type FixOutput struct {
	Status     string    `json:"status"`
	Label      string    `json:"label"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Message    string    `json:"message,omitempty"`
	ResolvedAt time.Time `json:"resolved_at"`
}
