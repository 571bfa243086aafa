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

type LoanInput struct {
	Lender    string  `json:"lender" binding:"required"`
	Principal float64 `json:"principal" binding:"required,gt=0"`
	Note      string  `json:"note"`
}

func CreateLoan(c *gin.Context) {
	var in LoanInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	loan := models.Loan{
		Lender:    in.Lender,
		Principal: in.Principal,
		Note:      in.Note,
	}
	if err := config.DB.Create(&loan).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create loan", "error": err.Error()})
		return
	}
	utils.Success(c, "Loan recorded", loan)
}

func GetAllLoans(c *gin.Context) {
	var loans []models.Loan
	if err := config.DB.Preload("Payments").Order("id DESC").Find(&loans).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch loans", "error": err.Error()})
		return
	}
	utils.Success(c, "Loans fetched", loans)
}

type LoanPaymentInput struct {
	AmountPaid float64   `json:"amount_paid" binding:"required,gt=0"`
	PaidAt     time.Time `json:"paid_at"`
	Note       string    `json:"note"`
}

func RecordLoanPayment(c *gin.Context) {
	loanID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid id"})
		return
	}

	var in LoanPaymentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	var loan models.Loan
	if err := config.DB.First(&loan, uint(loanID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Loan not found"})
		return
	}

	paidAt := in.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now().UTC()
	}

	pay := models.LoanPayment{
		LoanID:     loan.ID,
		AmountPaid: in.AmountPaid,
		PaidAt:     paidAt,
		Note:       in.Note,
	}
	if err := config.DB.Create(&pay).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to record loan payment", "error": err.Error()})
		return
	}
	utils.Success(c, "Loan payment recorded", pay)
}
