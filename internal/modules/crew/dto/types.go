package dto

import "time"

type MemberOutput struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	Kind          string    `json:"kind"`
	Status        string    `json:"status"`
	LastHeartbeat time.Time `json:"last_heartbeat"`
	ActiveFlare   string    `json:"active_flare,omitempty"`
}

type TransitionOutput struct {
	Member  MemberOutput `json:"member"`
	Changed bool         `json:"changed"`
}
