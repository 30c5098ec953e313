package dto

type CheckInput struct {
	TargetID string
}

type CheckOutput struct {
	TargetID string `json:"target_id,omitempty"`
	InWindow int    `json:"in_window"`
	Advised  bool   `json:"advised"`
}
