package models

// LeaderboardEntry is the derived ranking projection for one quest. It is
// computed from participant_progress at query time, never stored.
type LeaderboardEntry struct {
	Rank           int     `json:"rank"`
	Wallet         string  `json:"wallet"`
	Username       string  `json:"username,omitempty"`
	TotalPoints    int     `json:"totalPoints"`
	CompletedTasks int     `json:"completedTasks"`
	CurrentStage   string  `json:"currentStage"`
	RewardAmount   float64 `json:"rewardAmount"`
}
