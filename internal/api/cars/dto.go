package cars

import (
	"car-sharing-app/internal/domain/cars"
)

type UpsertCarRequest struct {
	Model     string  `json:"model" binding:"required"`
	Brand     string  `json:"brand" binding:"required"`
	Type      string  `json:"type" binding:"required"`
	Inventory int     `json:"inventory"`
	DailyFee  float64 `json:"daily_fee"`
}

func (r UpsertCarRequest) validate() string {
	if !cars.Type(r.Type).Valid() {
		return "Unknown car type"
	}
	if r.Inventory < 0 {
		return "Inventory cannot be negative"
	}
	if r.DailyFee < 0 {
		return "Daily fee cannot be negative"
	}
	return ""
}
