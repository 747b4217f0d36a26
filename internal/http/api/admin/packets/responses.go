package packets

import "github.com/Nixie-Tech-LLC/athan/internal/model"

type LoginResponse struct {
	Token string `json:"token"`
}

type RunsResponse struct {
	Runs []model.GenerationRun `json:"runs"`
}
