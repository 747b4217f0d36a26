package packets

// body for logging in
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// body for POST /api/admin/regenerate; year 0 means the configured year
type RegenerateRequest struct {
	Year int `json:"year"`
}
