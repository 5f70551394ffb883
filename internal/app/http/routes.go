package routes

import (
	authapi "car-sharing-app/internal/api/auth"
	carsapi "car-sharing-app/internal/api/cars"
	paymentsapi "car-sharing-app/internal/api/payments"
	rentalsapi "car-sharing-app/internal/api/rentals"
	usersapi "car-sharing-app/internal/api/users"
	"car-sharing-app/internal/app/http/middleware"
	"car-sharing-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, rentalsH *rentalsapi.Handler, paymentsH *paymentsapi.Handler) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Stripe redirects land here unauthenticated, keyed by session_id.
	r.GET("/payments/success", paymentsH.HandleSuccess)
	r.GET("/payments/cancel", paymentsH.HandleCancel)

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())
	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)

	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())

	auth.GET("/users/me", usersapi.GetCurrentUser)
	auth.PUT("/users/me", usersapi.UpdateCurrentUser)

	auth.GET("/cars", carsapi.ListCars)
	auth.GET("/cars/:id", carsapi.GetCarByID)

	customer := auth.Group("/")
	customer.Use(middleware.RequireRole(string(users.RoleCustomer)))
	customer.POST("/rentals", rentalsH.Create)
	customer.POST("/rentals/:id/return", rentalsH.Return)

	auth.GET("/rentals", rentalsH.ListByUser)
	auth.GET("/payments", paymentsH.ListByUser)
	auth.POST("/payments", paymentsH.Create)

	manager := r.Group("/")
	manager.Use(middleware.AuthMiddleware(), middleware.RequireRole(string(users.RoleManager)))
	manager.POST("/cars", carsapi.CreateCar)
	manager.PUT("/cars/:id", carsapi.UpdateCar)
	manager.DELETE("/cars/:id", carsapi.DeleteCar)
	manager.GET("/rentals/:id", rentalsH.GetByID)
	manager.PUT("/users/:id/role", usersapi.UpdateRole)
}
