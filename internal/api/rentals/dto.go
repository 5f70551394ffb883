package rentals

import (
	"time"

	"car-sharing-app/internal/domain/rentals"
)

const dateLayout = "2006-01-02"

type CreateRentalRequest struct {
	CarID      uint    `json:"car_id" binding:"required"`
	UserID     uint    `json:"user_id" binding:"required"`
	RentalDate string  `json:"rental_date" binding:"required"`
	ReturnDate *string `json:"return_date"`
}

type RentalResponse struct {
	ID               uint    `json:"id"`
	RentalDate       string  `json:"rental_date"`
	ReturnDate       *string `json:"return_date,omitempty"`
	ActualReturnDate *string `json:"actual_return_date,omitempty"`
	CarID            uint    `json:"car_id"`
	UserID           uint    `json:"user_id"`
}

func toResponse(r *rentals.Rental) RentalResponse {
	return RentalResponse{
		ID:               r.ID,
		RentalDate:       r.RentalDate.Format(dateLayout),
		ReturnDate:       formatDate(r.ReturnDate),
		ActualReturnDate: formatDate(r.ActualReturnDate),
		CarID:            r.CarID,
		UserID:           r.UserID,
	}
}

func toResponses(rows []rentals.Rental) []RentalResponse {
	out := make([]RentalResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toResponse(&rows[i]))
	}
	return out
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
