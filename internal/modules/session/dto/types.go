package dto

import "time"

type StartOutput struct {
	SessionID string    `json:"session_id"`
	StartedAt time.Time `json:"started_at"`
}

type SettlementOutput struct {
	SessionID       string    `json:"session_id"`
	StartedAt       time.Time `json:"started_at"`
	EndedAt         time.Time `json:"ended_at"`
	DurationSeconds int64     `json:"duration_seconds"`
	Earnings        float64   `json:"earnings"`
	ItemsCaught     int       `json:"items_caught"`
	Overtime        bool      `json:"overtime"`
}

type StatusOutput struct {
	Open           bool      `json:"open"`
	SessionID      string    `json:"session_id,omitempty"`
	StartedAt      time.Time `json:"started_at,omitempty"`
	ElapsedSeconds int64     `json:"elapsed_seconds"`
	ShiftSeconds   int64     `json:"shift_seconds"`
	Overtime       bool      `json:"overtime"`
	ItemsCaught    int       `json:"items_caught"`
	Earnings       float64   `json:"earnings"`
}

type SignInput struct {
	SessionID  string
	Efficiency float64
}

type SessionOutput struct {
	ID          string     `json:"id"`
	StartedAt   time.Time  `json:"started_at"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
	ItemsCaught int        `json:"items_caught"`
	Earnings    float64    `json:"earnings"`
	SignedAt    *time.Time `json:"signed_at,omitempty"`
	Efficiency  *float64   `json:"efficiency,omitempty"`
}

type CatchOutput struct {
	SessionID   string `json:"session_id"`
	ItemsCaught int    `json:"items_caught"`
}

type LogbookOutput struct {
	SessionID string `json:"session_id"`
	Markdown  string `json:"markdown"`
}
