package cars

import (
	"net/http"

	"car-sharing-app/database"
	"car-sharing-app/internal/api/paging"
	"car-sharing-app/internal/domain/cars"

	"github.com/gin-gonic/gin"
)

func CreateCar(c *gin.Context) {
	var input UpsertCarRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := input.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	car := cars.Car{
		Model:     input.Model,
		Brand:     input.Brand,
		Type:      cars.Type(input.Type),
		Inventory: input.Inventory,
		DailyFee:  input.DailyFee,
	}
	if err := database.DB.Create(&car).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create car"})
		return
	}
	c.JSON(http.StatusCreated, car)
}

func GetCarByID(c *gin.Context) {
	var car cars.Car
	if err := database.DB.First(&car, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
		return
	}
	c.JSON(http.StatusOK, car)
}

func ListCars(c *gin.Context) {
	page, size := paging.Parse(c)

	var total int64
	if err := database.DB.Model(&cars.Car{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cars"})
		return
	}

	var rows []cars.Car
	if err := database.DB.Order("id").Offset(page * size).Limit(size).Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cars"})
		return
	}
	c.JSON(http.StatusOK, paging.Envelope(rows, page, size, total))
}

func UpdateCar(c *gin.Context) {
	var input UpsertCarRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := input.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	var car cars.Car
	if err := database.DB.First(&car, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
		return
	}

	car.Model = input.Model
	car.Brand = input.Brand
	car.Type = cars.Type(input.Type)
	car.Inventory = input.Inventory
	car.DailyFee = input.DailyFee

	if err := database.DB.Save(&car).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update car"})
		return
	}
	c.JSON(http.StatusOK, car)
}

// DeleteCar soft-deletes; the row stays for historical rentals.
func DeleteCar(c *gin.Context) {
	var car cars.Car
	if err := database.DB.First(&car, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Car not found"})
		return
	}
	if err := database.DB.Delete(&car).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete car"})
		return
	}
	c.Status(http.StatusNoContent)
}
