package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/waraseoni/vtech-workshop-api/config"
	"github.com/waraseoni/vtech-workshop-api/models"
	"github.com/waraseoni/vtech-workshop-api/utils"

	"github.com/gin-gonic/gin"
)

type ExpenseInput struct {
	Title    string    `json:"title" binding:"required"`
	Category string    `json:"category"`
	Amount   float64   `json:"amount" binding:"required,gt=0"`
	SpentAt  time.Time `json:"spent_at"`
}

func CreateExpense(c *gin.Context) {
	uid, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var in ExpenseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	spentAt := in.SpentAt
	if spentAt.IsZero() {
		spentAt = time.Now().UTC()
	}

	exp := models.Expense{
		Title:     in.Title,
		Category:  in.Category,
		Amount:    in.Amount,
		SpentAt:   spentAt,
		AddedByID: uid,
	}
	if err := config.DB.Create(&exp).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create expense", "error": err.Error()})
		return
	}
	utils.Success(c, "Expense recorded", exp)
}

func GetAllExpenses(c *gin.Context) {
	q := config.DB.Order("spent_at DESC, id DESC")
	if from := getDatePtr(c, "date_from"); from != nil {
		q = q.Where("spent_at >= ?", from.Truncate(24*time.Hour))
	}
	if to := getDatePtr(c, "date_to"); to != nil {
		q = q.Where("spent_at < ?", to.Truncate(24*time.Hour).Add(24*time.Hour))
	}

	var rows []models.Expense
	if err := q.Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch expenses", "error": err.Error()})
		return
	}
	utils.Success(c, "Expenses fetched", rows)
}

func DeleteExpense(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}

	var exp models.Expense
	if err := config.DB.First(&exp, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Expense not found"})
		return
	}
	if err := config.DB.Delete(&exp).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Delete failed", "error": err.Error()})
		return
	}
	utils.Success(c, "Expense deleted", nil)
}
