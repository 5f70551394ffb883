package rentals

import (
	"errors"
	"net/http"
	"strconv"

	"car-sharing-app/internal/api/paging"
	"car-sharing-app/internal/domain/cars"
	"car-sharing-app/internal/domain/rentals"
	"car-sharing-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *rentals.Service
}

func NewHandler(svc *rentals.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Create(c *gin.Context) {
	var input CreateRentalRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rentalDate, err := parseDate(input.RentalDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rental_date, expected YYYY-MM-DD"})
		return
	}
	in := rentals.CreateInput{
		CarID:      input.CarID,
		UserID:     input.UserID,
		RentalDate: rentalDate,
	}
	if input.ReturnDate != nil {
		d, err := parseDate(*input.ReturnDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid return_date, expected YYYY-MM-DD"})
			return
		}
		in.ReturnDate = &d
	}

	rental, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(rental))
}

func (h *Handler) ListByUser(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	isActive, err := strconv.ParseBool(c.DefaultQuery("is_active", "true"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid is_active"})
		return
	}
	page, size := paging.Parse(c)

	rows, total, err := h.svc.ListByUserAndStatus(c.Request.Context(), userID, isActive, page, size)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, paging.Envelope(toResponses(rows), page, size, total))
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rental id"})
		return
	}

	rental, err := h.svc.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(rental))
}

// Return closes the rental and restores the car's inventory.
func (h *Handler) Return(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rental id"})
		return
	}

	rental, err := h.svc.Close(c.Request.Context(), uint(id))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(rental))
}

func renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, rentals.ErrNotFound),
		errors.Is(err, cars.ErrNotFound),
		errors.Is(err, users.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, rentals.ErrFutureDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, cars.ErrNoInventory),
		errors.Is(err, rentals.ErrAlreadyReturned):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
