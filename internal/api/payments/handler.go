package payments

import (
	"errors"
	"net/http"
	"strconv"

	"car-sharing-app/internal/api/paging"
	"car-sharing-app/internal/domain/payments"
	"car-sharing-app/internal/domain/rentals"
	"car-sharing-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *payments.Service
}

func NewHandler(svc *payments.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Create(c *gin.Context) {
	var input CreatePaymentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.svc.CreateSession(c.Request.Context(), payments.CreateInput{
		RentalID: input.RentalID,
		Type:     payments.Type(input.Type),
		Amount:   input.Amount,
	})
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(payment))
}

// ListByUser lists a user's payments across all their rentals.
// Customers see their own; managers may query any user via user_id.
func (h *Handler) ListByUser(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}
	if role, _ := c.Get("role"); role == string(users.RoleManager) {
		if q := c.Query("user_id"); q != "" {
			id, err := strconv.ParseUint(q, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id"})
				return
			}
			userID = uint(id)
		}
	}
	page, size := paging.Parse(c)

	rows, total, err := h.svc.ListByUser(c.Request.Context(), userID, page, size)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, paging.Envelope(toResponses(rows), page, size, total))
}

// HandleSuccess is the gateway's success redirect target.
func (h *Handler) HandleSuccess(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing session_id"})
		return
	}

	payment, err := h.svc.HandleSuccess(c.Request.Context(), sessionID)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(payment))
}

// HandleCancel acknowledges a cancel redirect without touching state.
func (h *Handler) HandleCancel(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing session_id"})
		return
	}

	msg, err := h.svc.HandleCancel(c.Request.Context(), sessionID)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

func renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, payments.ErrNotFound), errors.Is(err, rentals.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, payments.ErrInvalidAmount),
		errors.Is(err, payments.ErrMissingReturnDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, payments.ErrRentalCompleted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, payments.ErrGateway):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment gateway unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
