package dto

type ProgressResponse struct {
	DSAScore         int    `json:"dsa_score"`
	DevScore         int    `json:"dev_score"`
	TotalScore       int    `json:"total_score"`
	Streak           int    `json:"streak"`
	LastActivityDate string `json:"last_activity_date,omitempty"`
}

// UpdateProgressRequest sets absolute scores; absent fields are unchanged.
type UpdateProgressRequest struct {
	DSAScore *int `json:"dsa_score"`
	DevScore *int `json:"dev_score"`
}

type IncrementProgressRequest struct {
	Field  string `json:"field"`
	Amount int    `json:"amount"`
}

type WeeklyDay struct {
	Date    string `json:"date"`
	DSA     int    `json:"dsa"`
	Dev     int    `json:"dev"`
	General int    `json:"general"`
	Total   int    `json:"total"`
}

type WeeklyProgressResponse struct {
	Days []WeeklyDay `json:"days"`
}
