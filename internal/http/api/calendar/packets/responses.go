package packets

// RESPONSES FOR /api/v1/*

type HealthResponse struct {
	Status string `json:"status"`
	Years  []int  `json:"years"`
}

type YearsResponse struct {
	Years []int `json:"years"`
}

// summary of one loaded year
type YearSummary struct {
	Year          int    `json:"year"`
	SHA1          string `json:"sha1"`
	WeekStart     string `json:"week_start"`
	Days          int    `json:"days"`
	Weeks         int    `json:"weeks"`
	SkippedMonths []int  `json:"skipped_months"`
}
