package dto

import "time"

type PresenceOutput struct {
	Visible        bool      `json:"visible"`
	LastActivity   time.Time `json:"last_activity"`
	TabAwayPending bool      `json:"tab_away_pending"`
}
