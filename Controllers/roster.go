package Controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Meghanadh2306/physio-website/Models"

	"github.com/gin-gonic/gin"
)

func GetDoctors(c *gin.Context) {
	doctors, err := Models.FindDoctors()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch doctors"})
		return
	}
	c.JSON(http.StatusOK, doctors)
}

func AddDoctor(c *gin.Context) {
	var input struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name required"})
		return
	}

	doctor, err := Models.AddDoctor(input.Name)
	if err != nil {
		if errors.Is(err, Models.ErrDoctorExists) {
			c.JSON(http.StatusConflict, gin.H{"message": "Doctor already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add doctor"})
		return
	}
	c.JSON(http.StatusOK, doctor)
}

func DeleteDoctor(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid doctor id"})
		return
	}
	if err := Models.DeleteDoctor(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete doctor"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Doctor deleted"})
}

func GetTreatments(c *gin.Context) {
	treatments, err := Models.FindTreatments()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch treatments"})
		return
	}
	c.JSON(http.StatusOK, treatments)
}

func AddTreatment(c *gin.Context) {
	var input struct {
		Name        string  `json:"name"`
		PricePerDay float64 `json:"pricePerDay"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name required"})
		return
	}

	treatment, err := Models.AddTreatment(input.Name, input.PricePerDay)
	if err != nil {
		if errors.Is(err, Models.ErrTreatmentExists) {
			c.JSON(http.StatusConflict, gin.H{"message": "Treatment already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add treatment"})
		return
	}
	c.JSON(http.StatusOK, treatment)
}

func UpdateTreatment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid treatment id"})
		return
	}

	var input struct {
		PricePerDay float64 `json:"pricePerDay"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	if err := Models.UpdateTreatmentPrice(uint(id), input.PricePerDay); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update treatment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Treatment updated"})
}

func DeleteTreatment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid treatment id"})
		return
	}
	if err := Models.DeleteTreatment(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete treatment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Treatment deleted"})
}
