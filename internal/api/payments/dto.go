package payments

import (
	"car-sharing-app/internal/domain/payments"
)

type CreatePaymentRequest struct {
	RentalID uint     `json:"rental_id" binding:"required"`
	Type     string   `json:"type" binding:"required,oneof=PAYMENT FINE"`
	Amount   *float64 `json:"amount"`
}

type PaymentResponse struct {
	ID          uint    `json:"id"`
	Status      string  `json:"status"`
	Type        string  `json:"type"`
	RentalID    uint    `json:"rental_id"`
	SessionID   string  `json:"session_id"`
	SessionURL  string  `json:"session_url"`
	AmountToPay float64 `json:"amount_to_pay"`
}

func toResponse(p *payments.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		Status:      string(p.Status),
		Type:        string(p.Type),
		RentalID:    p.RentalID,
		SessionID:   p.SessionID,
		SessionURL:  p.SessionURL,
		AmountToPay: p.AmountToPay,
	}
}

func toResponses(rows []payments.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toResponse(&rows[i]))
	}
	return out
}
